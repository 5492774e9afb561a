package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/advocate-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
)

var invoiceSortColumns = map[string]string{
	"due_date":       "due_date",
	"billing_date":   "billing_date",
	"total_amount":   "total_amount",
	"created_at":     "created_at",
	"invoice_number": "invoice_number",
}

type BillingGormRepository struct {
	db *gorm.DB
}

func NewBillingGormRepository(db *gorm.DB) *BillingGormRepository {
	return &BillingGormRepository{db: db}
}

func (r *BillingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx billing.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BillingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Client / Case
// --------------------------------------------------

func (r *BillingGormRepository) GetClient(
	ctx context.Context,
	advocateID uint,
	clientID uint,
) (*models.Client, error) {
	return findClient(ctx, r.db, advocateID, clientID)
}

func (r *BillingGormRepository) GetCase(
	ctx context.Context,
	advocateID uint,
	caseID uint,
) (*models.Case, error) {
	return findCase(ctx, r.db, advocateID, caseID)
}

// --------------------------------------------------
// Invoice
// --------------------------------------------------

func (r *BillingGormRepository) CreateInvoice(
	ctx context.Context,
	inv *models.Invoice,
) error {
	err := r.db.WithContext(ctx).Omit("Client").Create(inv).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness("invoice_number_taken")
	}
	return err
}

func (r *BillingGormRepository) GetInvoiceForAdvocate(
	ctx context.Context,
	invoiceID uint,
	advocateID uint,
) (*models.Invoice, error) {
	return r.findInvoice(r.db.WithContext(ctx).Preload("Client").Preload("Items"), invoiceID, advocateID)
}

func (r *BillingGormRepository) LockInvoice(
	ctx context.Context,
	invoiceID uint,
	advocateID uint,
) (*models.Invoice, error) {
	return r.findInvoice(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		invoiceID,
		advocateID,
	)
}

func (r *BillingGormRepository) findInvoice(q *gorm.DB, invoiceID, advocateID uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := q.
		Where("id = ? AND advocate_id = ?", invoiceID, advocateID).
		First(&inv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("invoice_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *BillingGormRepository) UpdateInvoiceStatus(
	ctx context.Context,
	inv *models.Invoice,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Invoice{ID: inv.ID}).
		Select("status", "payment_method", "payment_date").
		Updates(map[string]any{
			"status":         inv.Status,
			"payment_method": inv.PaymentMethod,
			"payment_date":   inv.PaymentDate,
		}).Error
}

func (r *BillingGormRepository) ListInvoices(
	ctx context.Context,
	f billing.InvoiceFilter,
) ([]models.Invoice, int64, error) {

	// --------------------------------------------------
	// Query base (always scoped to the advocate)
	// --------------------------------------------------

	q := r.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("advocate_id = ?", f.AdvocateID)

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if f.ClientID != 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}

	switch f.Status {
	case billing.StatusPaid:
		q = q.Where("status = ?", string(billing.StatusPaid))
	case billing.StatusOverdue:
		q = q.Where(
			"(status = ? OR (status = ? AND due_date < ?))",
			string(billing.StatusOverdue), string(billing.StatusPending), f.Today,
		)
	case billing.StatusPending:
		q = q.Where("status = ? AND due_date >= ?", string(billing.StatusPending), f.Today)
	}

	if !f.DueFrom.IsZero() {
		q = q.Where("due_date >= ?", f.DueFrom)
	}
	if !f.DueTo.IsZero() {
		q = q.Where("due_date <= ?", f.DueTo)
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// --------------------------------------------------
	// Sort + page
	// --------------------------------------------------

	col, ok := invoiceSortColumns[f.SortBy]
	if !ok {
		col = "due_date"
	}

	q = q.
		Preload("Client").
		Order(clause.OrderByColumn{Column: clause.Column{Name: col}, Desc: f.SortDesc}).
		Order("id ASC")

	// page bounds are the caller's; a zero limit returns every row
	if f.Limit > 0 {
		page := max(f.Page, 1)
		q = q.Limit(f.Limit).Offset((page - 1) * f.Limit)
	}

	var invoices []models.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *BillingGormRepository) ListPayments(
	ctx context.Context,
	invoiceIDs ...uint,
) ([]models.Payment, error) {

	if len(invoiceIDs) == 0 {
		return nil, nil
	}

	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Where("invoice_id IN ?", invoiceIDs).
		Order("payment_date ASC").
		Order("id ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *BillingGormRepository) CreatePayment(
	ctx context.Context,
	p *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Compile-time check
var _ billing.Repository = (*BillingGormRepository)(nil)
