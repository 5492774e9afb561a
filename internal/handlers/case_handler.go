package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/advocate-scheduler/internal/audit"
	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
)

type CaseHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCaseHandler(db *gorm.DB, audit *audit.Dispatcher) *CaseHandler {
	return &CaseHandler{db: db, audit: audit}
}

type CreateCaseRequest struct {
	ClientID   uint   `json:"client_id" binding:"required"`
	CaseNumber string `json:"case_number" binding:"required,max=50"`
	Title      string `json:"title" binding:"required,max=200"`
	Status     string `json:"status" binding:"omitempty,oneof=open on_hold closed"`
}

// ======================================================
// LIST CASES
// ======================================================
func (h *CaseHandler) List(c *gin.Context) {
	advocate := advocateID(c)

	q := h.db.WithContext(c.Request.Context()).
		Preload("Client").
		Where("advocate_id = ?", advocate)

	if raw := c.Query("client_id"); raw != "" {
		clientID := queryInt(c, "client_id", 0)
		if clientID <= 0 {
			httperr.Respond(c, httperr.ErrBusiness("invalid_filter"))
			return
		}
		q = q.Where("client_id = ?", clientID)
	}

	if status := c.Query("status"); status != "" {
		if !models.IsCaseStatus(status) {
			httperr.Respond(c, httperr.ErrBusiness("invalid_filter"))
			return
		}
		q = q.Where("status = ?", status)
	}

	var cases []models.Case
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Find(&cases).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, cases)
}

// ======================================================
// CREATE CASE
// ======================================================
func (h *CaseHandler) Create(c *gin.Context) {
	advocate := advocateID(c)
	ctx := c.Request.Context()

	var req CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	caseNumber := strings.TrimSpace(req.CaseNumber)
	title := strings.TrimSpace(req.Title)
	if caseNumber == "" || title == "" {
		httperr.BadRequest(c, "invalid_request", "Case number and title are required.")
		return
	}

	var client models.Client
	err := h.db.WithContext(ctx).
		Where("id = ? AND advocate_id = ?", req.ClientID, advocate).
		First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Respond(c, httperr.ErrBusiness("client_not_found"))
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	status := req.Status
	if status == "" {
		status = models.CaseStatusOpen
	}

	cs := models.Case{
		AdvocateID: advocate,
		ClientID:   client.ID,
		CaseNumber: caseNumber,
		Title:      title,
		Status:     status,
	}

	if err := h.db.WithContext(ctx).Omit("Client").Create(&cs).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Respond(c, httperr.ErrBusiness("case_number_taken"))
			return
		}
		httperr.Respond(c, err)
		return
	}
	cs.Client = client

	h.audit.Dispatch(audit.Event{
		AdvocateID: advocate,
		UserID:     &advocate,
		Action:     "case_created",
		Entity:     "case",
		EntityID:   &cs.ID,
		Metadata: map[string]any{
			"client_id":   client.ID,
			"case_number": cs.CaseNumber,
		},
	})

	c.JSON(http.StatusCreated, cs)
}
