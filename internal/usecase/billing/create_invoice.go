package billing

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/advocate-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/timezone"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

var (
	errInvalidDate    = httperr.ErrBusiness("invalid_date_or_time")
	errInvalidDueDate = httperr.ErrBusiness("invalid_due_date")
)

// ======================================================
// INPUT
// ======================================================

type InvoiceItemInput struct {
	Description string
	Amount      decimal.Decimal
}

type CreateInvoiceInput struct {
	AdvocateID uint
	ClientID   uint
	CaseID     *uint

	// InvoiceNumber is generated when empty.
	InvoiceNumber string

	// Amount is ignored when Items are given; the total is their sum.
	Amount decimal.Decimal
	Items  []InvoiceItemInput

	// BillingDate defaults to today.
	BillingDate string
	DueDate     string

	Description string
}

// ======================================================
// USE CASE
// ======================================================

type CreateInvoice struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock *timezone.Clock
}

func NewCreateInvoice(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock *timezone.Clock,
) *CreateInvoice {
	return &CreateInvoice{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *CreateInvoice) Execute(
	ctx context.Context,
	in CreateInvoiceInput,
) (*models.Invoice, error) {

	// --------------------------------------------------
	// 1. Amounts
	// --------------------------------------------------
	total := in.Amount
	var items []models.InvoiceItem
	if len(in.Items) > 0 {
		total = decimal.Zero
		for _, it := range in.Items {
			if !validAmount(it.Amount) {
				return nil, domain.ErrInvalidAmount
			}
			total = total.Add(it.Amount)
			items = append(items, models.InvoiceItem{
				Description: strings.TrimSpace(it.Description),
				Amount:      it.Amount,
			})
		}
	}
	if !validAmount(total) {
		return nil, domain.ErrInvalidAmount
	}

	// --------------------------------------------------
	// 2. Dates
	// --------------------------------------------------
	billingDate := uc.clock.Today()
	if in.BillingDate != "" {
		d, err := wallclock.ParseDate(in.BillingDate)
		if err != nil {
			return nil, errInvalidDate
		}
		billingDate = d
	}

	dueDate, err := wallclock.ParseDate(in.DueDate)
	if err != nil {
		return nil, errInvalidDate
	}
	if dueDate.Before(billingDate) {
		return nil, errInvalidDueDate
	}

	// --------------------------------------------------
	// 3. Ownership
	// --------------------------------------------------
	if _, err := uc.repo.GetClient(ctx, in.AdvocateID, in.ClientID); err != nil {
		return nil, err
	}
	if in.CaseID != nil {
		if _, err := uc.repo.GetCase(ctx, in.AdvocateID, *in.CaseID); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 4. Persist
	// --------------------------------------------------
	number := strings.TrimSpace(in.InvoiceNumber)
	if number == "" {
		number = NewInvoiceNumber(billingDate)
	}

	inv := &models.Invoice{
		AdvocateID:    in.AdvocateID,
		ClientID:      in.ClientID,
		CaseID:        in.CaseID,
		InvoiceNumber: number,
		TotalAmount:   total,
		BillingDate:   billingDate,
		DueDate:       dueDate,
		Description:   in.Description,
		Items:         items,
	}
	inv.Status = string(domain.ComputeState(*inv, nil, uc.clock.Today()).Status)

	if err := uc.repo.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AdvocateID: in.AdvocateID,
		UserID:     &in.AdvocateID,
		Action:     "invoice_created",
		Entity:     "invoice",
		EntityID:   &inv.ID,
		Metadata: map[string]any{
			"invoice_number": inv.InvoiceNumber,
			"total_amount":   inv.TotalAmount.StringFixed(domain.Scale),
		},
	})

	return inv, nil
}

// NewInvoiceNumber returns INV-YYYYMMDD-XXXXXX with a random suffix.
func NewInvoiceNumber(billingDate wallclock.Date) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return "INV-" + strings.ReplaceAll(billingDate.String(), "-", "") + "-" + suffix
}

func validAmount(a decimal.Decimal) bool {
	return a.IsPositive() && a.Equal(a.Round(domain.Scale))
}
