package billing

import (
	"context"

	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/advocate-scheduler/internal/dto"
	"github.com/BruksfildServices01/advocate-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/timezone"
)

type GetInvoice struct {
	repo   domain.Repository
	locker lock.Locker
	clock  *timezone.Clock
}

func NewGetInvoice(
	repo domain.Repository,
	locker lock.Locker,
	clock *timezone.Clock,
) *GetInvoice {
	return &GetInvoice{
		repo:   repo,
		locker: locker,
		clock:  clock,
	}
}

func (uc *GetInvoice) Execute(
	ctx context.Context,
	advocateID uint,
	invoiceID uint,
) (*dto.InvoiceDTO, error) {

	inv, err := uc.repo.GetInvoiceForAdvocate(ctx, invoiceID, advocateID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.repo.ListPayments(ctx, inv.ID)
	if err != nil {
		return nil, err
	}

	today := uc.clock.Today()
	st := domain.ComputeState(*inv, payments, today)

	if inv.Status != string(st.Status) {
		// The cached status drifted (typically pending -> overdue). Refresh
		// it under the invoice lock so a concurrent payment is not undone.
		if inv, payments, err = uc.refresh(ctx, advocateID, invoiceID); err != nil {
			return nil, err
		}
		st = domain.ComputeState(*inv, payments, today)
	}

	return &dto.InvoiceDTO{
		Invoice:  *inv,
		Ledger:   st,
		Payments: payments,
	}, nil
}

func (uc *GetInvoice) refresh(
	ctx context.Context,
	advocateID uint,
	invoiceID uint,
) (*models.Invoice, []models.Payment, error) {

	unlock, err := uc.locker.Lock(ctx, lock.InvoiceKey(invoiceID))
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	var (
		inv      *models.Invoice
		payments []models.Payment
	)
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		locked, err := tx.LockInvoice(ctx, invoiceID, advocateID)
		if err != nil {
			return err
		}

		payments, err = tx.ListPayments(ctx, locked.ID)
		if err != nil {
			return err
		}

		if !domain.Sync(locked, domain.ComputeState(*locked, payments, uc.clock.Today())) {
			return nil
		}
		return tx.UpdateInvoiceStatus(ctx, locked)
	})
	if err != nil {
		return nil, nil, err
	}

	// Reload outside the transaction for the client and items.
	inv, err = uc.repo.GetInvoiceForAdvocate(ctx, invoiceID, advocateID)
	if err != nil {
		return nil, nil, err
	}
	return inv, payments, nil
}
