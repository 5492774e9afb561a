package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/httpresp"
	ucBilling "github.com/BruksfildServices01/advocate-scheduler/internal/usecase/billing"
)

type BillingHandler struct {
	createUC  *ucBilling.CreateInvoice
	paymentUC *ucBilling.RecordPayment
	getUC     *ucBilling.GetInvoice
	listUC    *ucBilling.ListInvoices
}

func NewBillingHandler(
	createUC *ucBilling.CreateInvoice,
	paymentUC *ucBilling.RecordPayment,
	getUC *ucBilling.GetInvoice,
	listUC *ucBilling.ListInvoices,
) *BillingHandler {
	return &BillingHandler{
		createUC:  createUC,
		paymentUC: paymentUC,
		getUC:     getUC,
		listUC:    listUC,
	}
}

// --------- Requests ---------

// Amounts accept JSON numbers or strings ("150.00").
type InvoiceItemRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

type CreateInvoiceRequest struct {
	ClientID      uint                 `json:"client_id" binding:"required"`
	CaseID        *uint                `json:"case_id"`
	InvoiceNumber string               `json:"invoice_number"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	Items         []InvoiceItemRequest `json:"items" binding:"dive"`
	BillingDate   string               `json:"billing_date"`
	DueDate       string               `json:"due_date" binding:"required"`
	Description   string               `json:"description"`
}

type RecordPaymentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	PaymentDate   string          `json:"payment_date"`
	Notes         string          `json:"notes"`
}

// --------- Handlers ---------

func (h *BillingHandler) CreateInvoice(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	items := make([]ucBilling.InvoiceItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ucBilling.InvoiceItemInput{
			Description: it.Description,
			Amount:      it.Amount,
		})
	}

	inv, err := h.createUC.Execute(c.Request.Context(), ucBilling.CreateInvoiceInput{
		AdvocateID:    advocateID(c),
		ClientID:      req.ClientID,
		CaseID:        req.CaseID,
		InvoiceNumber: req.InvoiceNumber,
		Amount:        req.TotalAmount,
		Items:         items,
		BillingDate:   req.BillingDate,
		DueDate:       req.DueDate,
		Description:   req.Description,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, inv)
}

func (h *BillingHandler) ListInvoices(c *gin.Context) {
	page, err := h.listUC.Execute(c.Request.Context(), ucBilling.ListInvoicesInput{
		AdvocateID: advocateID(c),
		ClientID:   uint(queryInt(c, "client_id", 0)),
		Status:     c.Query("status"),
		DueFrom:    c.Query("due_from"),
		DueTo:      c.Query("due_to"),
		SortBy:     c.Query("sort"),
		Order:      c.Query("order"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", ucBilling.DefaultPageLimit),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, page.Items, page.Total, page.Page, page.Limit)
}

func (h *BillingHandler) GetInvoice(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	inv, err := h.getUC.Execute(c.Request.Context(), advocateID(c), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, inv)
}

func (h *BillingHandler) RecordPayment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	advocate := advocateID(c)
	receipt, err := h.paymentUC.Execute(c.Request.Context(), ucBilling.RecordPaymentInput{
		AdvocateID:  advocate,
		InvoiceID:   id,
		UserID:      advocate,
		Amount:      req.Amount,
		Method:      req.PaymentMethod,
		PaymentDate: req.PaymentDate,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, receipt)
}
