package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/advocate-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/advocate-scheduler/internal/dto"
	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/advocate-scheduler/internal/monitoring"
	"github.com/BruksfildServices01/advocate-scheduler/internal/timezone"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

type RecordPaymentInput struct {
	AdvocateID uint
	InvoiceID  uint

	// UserID is who recorded the payment.
	UserID uint

	Amount      decimal.Decimal
	Method      string
	PaymentDate string
	Notes       string
}

type RecordPayment struct {
	repo   domain.Repository
	locker lock.Locker
	audit  *audit.Dispatcher
	clock  *timezone.Clock
}

func NewRecordPayment(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
	clock *timezone.Clock,
) *RecordPayment {
	return &RecordPayment{
		repo:   repo,
		locker: locker,
		audit:  audit,
		clock:  clock,
	}
}

func (uc *RecordPayment) Execute(
	ctx context.Context,
	in RecordPaymentInput,
) (*dto.PaymentReceiptDTO, error) {

	var date wallclock.Date
	if in.PaymentDate != "" {
		d, err := wallclock.ParseDate(in.PaymentDate)
		if err != nil {
			return nil, errInvalidDate
		}
		date = d
	}

	unlock, err := uc.locker.Lock(ctx, lock.InvoiceKey(in.InvoiceID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	var applied domain.AppliedPayment
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		inv, err := tx.LockInvoice(ctx, in.InvoiceID, in.AdvocateID)
		if err != nil {
			return err
		}

		existing, err := tx.ListPayments(ctx, inv.ID)
		if err != nil {
			return err
		}

		applied, err = domain.RecordPayment(*inv, existing, domain.PaymentCandidate{
			Amount:       in.Amount,
			Method:       in.Method,
			PaymentDate:  date,
			Notes:        in.Notes,
			RecordedByID: in.UserID,
		}, uc.clock.Today())
		if err != nil {
			return err
		}

		applied.Payment.Reference = uuid.NewString()
		if err := tx.CreatePayment(ctx, &applied.Payment); err != nil {
			return err
		}

		domain.Apply(inv, applied)
		return tx.UpdateInvoiceStatus(ctx, inv)
	})
	if err != nil {
		uc.rejected(in, err)
		return nil, err
	}

	monitoring.PaymentsRecorded.Inc()
	uc.audit.Dispatch(audit.Event{
		AdvocateID: in.AdvocateID,
		UserID:     &in.UserID,
		Action:     "payment_recorded",
		Entity:     "invoice",
		EntityID:   &in.InvoiceID,
		Metadata: map[string]any{
			"payment_id": applied.Payment.ID,
			"amount":     applied.Payment.Amount.StringFixed(domain.Scale),
			"method":     applied.Payment.PaymentMethod,
			"balance":    applied.State.Balance.StringFixed(domain.Scale),
			"status":     applied.State.Status,
		},
	})

	return &dto.PaymentReceiptDTO{
		Payment: applied.Payment,
		Ledger:  applied.State,
		Settled: applied.MarkPaid,
	}, nil
}

func (uc *RecordPayment) rejected(in RecordPaymentInput, err error) {
	be, ok := httperr.AsBusiness(err)
	if !ok {
		monitoring.PaymentsRejected.WithLabelValues("error").Inc()
		return
	}

	monitoring.PaymentsRejected.WithLabelValues(be.Code).Inc()

	if be.Code == "invoice_not_found" {
		return
	}
	uc.audit.Dispatch(audit.Event{
		AdvocateID: in.AdvocateID,
		UserID:     &in.UserID,
		Action:     "payment_rejected",
		Entity:     "invoice",
		EntityID:   &in.InvoiceID,
		Metadata: map[string]any{
			"reason": be.Code,
			"amount": in.Amount.String(),
			"method": in.Method,
		},
	})
}
