package billing

import (
	"context"

	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

type InvoiceFilter struct {
	AdvocateID uint
	ClientID   uint
	Status     InvoiceStatus
	DueFrom    wallclock.Date
	DueTo      wallclock.Date

	// Today resolves pending rows whose due date has passed as overdue.
	Today wallclock.Date

	SortBy   string
	SortDesc bool

	// Page and Limit are taken as given. Limit 0 returns every match.
	Page  int
	Limit int
}

type Repository interface {
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	GetClient(
		ctx context.Context,
		advocateID uint,
		clientID uint,
	) (*models.Client, error)

	GetCase(
		ctx context.Context,
		advocateID uint,
		caseID uint,
	) (*models.Case, error)

	CreateInvoice(
		ctx context.Context,
		inv *models.Invoice,
	) error

	GetInvoiceForAdvocate(
		ctx context.Context,
		invoiceID uint,
		advocateID uint,
	) (*models.Invoice, error)

	// LockInvoice loads the invoice with a row lock held until the
	// surrounding transaction ends.
	LockInvoice(
		ctx context.Context,
		invoiceID uint,
		advocateID uint,
	) (*models.Invoice, error)

	UpdateInvoiceStatus(
		ctx context.Context,
		inv *models.Invoice,
	) error

	ListInvoices(
		ctx context.Context,
		filter InvoiceFilter,
	) ([]models.Invoice, int64, error)

	ListPayments(
		ctx context.Context,
		invoiceIDs ...uint,
	) ([]models.Payment, error)

	CreatePayment(
		ctx context.Context,
		p *models.Payment,
	) error
}
