package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/advocate-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC     *ucAppointment.CreateAppointment
	rescheduleUC *ucAppointment.RescheduleAppointment
	checkUC      *ucAppointment.CheckAvailability
	cancelUC     *ucAppointment.CancelAppointment
	completeUC   *ucAppointment.CompleteAppointment
	deleteUC     *ucAppointment.DeleteAppointment
	listByDateUC *ucAppointment.ListAppointmentsByDate
	listMonthUC  *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	checkUC *ucAppointment.CheckAvailability,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listMonthUC *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:     createUC,
		rescheduleUC: rescheduleUC,
		checkUC:      checkUC,
		cancelUC:     cancelUC,
		completeUC:   completeUC,
		deleteUC:     deleteUC,
		listByDateUC: listByDateUC,
		listMonthUC:  listMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	CaseID    *uint  `json:"case_id"`
	Date      string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"` // HH:MM
	EndTime   string `json:"end_time" binding:"required"`   // HH:MM
	Title     string `json:"title"`
	Notes     string `json:"notes"`
}

type SlotRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`

	// ExcludeAppointmentID is only read by /check.
	ExcludeAppointmentID uint `json:"exclude_appointment_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		AdvocateID: advocateID(c),
		ClientID:   req.ClientID,
		CaseID:     req.CaseID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Title:      req.Title,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// CHECK (no write)
// ======================================================

func (h *AppointmentHandler) Check(c *gin.Context) {
	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.checkUC.Execute(c.Request.Context(), ucAppointment.CheckAvailabilityInput{
		AdvocateID:           advocateID(c),
		Date:                 req.Date,
		StartTime:            req.StartTime,
		EndTime:              req.EndTime,
		ExcludeAppointmentID: req.ExcludeAppointmentID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ids := res.ConflictingIDs
	if ids == nil {
		ids = []uint{}
	}
	c.JSON(http.StatusOK, gin.H{
		"available":       !res.HasConflict(),
		"conflicting_ids": ids,
	})
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		AdvocateID:    advocateID(c),
		AppointmentID: id,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	date, err := wallclock.ParseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Invalid date.")
		return
	}

	items, err := h.listByDateUC.Execute(c.Request.Context(), advocateID(c), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	if c.Query("year") == "" || c.Query("month") == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Query parameters year and month are required.")
		return
	}

	year := queryInt(c, "year", 0)
	month := queryInt(c, "month", 0)

	items, err := h.listMonthUC.Execute(c.Request.Context(), advocateID(c), year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": items,
	})
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancelUC.Execute(c.Request.Context(), advocateID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.completeUC.Execute(c.Request.Context(), advocateID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), advocateID(c), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
