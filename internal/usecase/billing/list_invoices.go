package billing

import (
	"context"

	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/advocate-scheduler/internal/dto"
	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/timezone"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

var sortFields = map[string]bool{
	"due_date":       true,
	"billing_date":   true,
	"total_amount":   true,
	"created_at":     true,
	"invoice_number": true,
}

type ListInvoicesInput struct {
	AdvocateID uint
	ClientID   uint

	Status  string
	DueFrom string
	DueTo   string

	SortBy string
	Order  string

	Page  int
	Limit int
}

type InvoicePage struct {
	Items []dto.InvoiceDTO
	Total int64
	Page  int
	Limit int
}

type ListInvoices struct {
	repo  domain.Repository
	clock *timezone.Clock
}

func NewListInvoices(
	repo domain.Repository,
	clock *timezone.Clock,
) *ListInvoices {
	return &ListInvoices{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ListInvoices) Execute(
	ctx context.Context,
	in ListInvoicesInput,
) (*InvoicePage, error) {

	f := domain.InvoiceFilter{
		AdvocateID: in.AdvocateID,
		ClientID:   in.ClientID,
		Today:      uc.clock.Today(),
		SortBy:     in.SortBy,
		SortDesc:   in.Order == "desc",
		Page:       in.Page,
		Limit:      in.Limit,
	}

	// --------------------------------------------------
	// Filters
	// --------------------------------------------------
	if in.Status != "" {
		st, ok := domain.ParseInvoiceStatus(in.Status)
		if !ok {
			return nil, httperr.ErrBusinessWith("invalid_filter", map[string]any{"status": in.Status})
		}
		f.Status = st
	}

	var err error
	if f.DueFrom, err = optionalDate(in.DueFrom); err != nil {
		return nil, err
	}
	if f.DueTo, err = optionalDate(in.DueTo); err != nil {
		return nil, err
	}

	if f.SortBy == "" {
		f.SortBy = "due_date"
	}
	if !sortFields[f.SortBy] {
		return nil, httperr.ErrBusinessWith("invalid_filter", map[string]any{"sort": in.SortBy})
	}
	if in.Order != "" && in.Order != "asc" && in.Order != "desc" {
		return nil, httperr.ErrBusinessWith("invalid_filter", map[string]any{"order": in.Order})
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}

	// --------------------------------------------------
	// Query
	// --------------------------------------------------
	invoices, total, err := uc.repo.ListInvoices(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(invoices))
	for _, inv := range invoices {
		ids = append(ids, inv.ID)
	}

	var payments []models.Payment
	if len(ids) > 0 {
		payments, err = uc.repo.ListPayments(ctx, ids...)
		if err != nil {
			return nil, err
		}
	}

	byInvoice := make(map[uint][]models.Payment, len(ids))
	for _, p := range payments {
		byInvoice[p.InvoiceID] = append(byInvoice[p.InvoiceID], p)
	}

	items := make([]dto.InvoiceDTO, 0, len(invoices))
	for _, inv := range invoices {
		st := domain.ComputeState(inv, byInvoice[inv.ID], f.Today)
		// Listed rows show the computed status; the cache is refreshed on
		// the next single read or payment.
		inv.Status = string(st.Status)
		items = append(items, dto.InvoiceDTO{Invoice: inv, Ledger: st})
	}

	return &InvoicePage{
		Items: items,
		Total: total,
		Page:  f.Page,
		Limit: f.Limit,
	}, nil
}

func optionalDate(s string) (wallclock.Date, error) {
	if s == "" {
		return wallclock.Date{}, nil
	}
	d, err := wallclock.ParseDate(s)
	if err != nil {
		return wallclock.Date{}, errInvalidDate
	}
	return d, nil
}
