package billing

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

// Amounts are kept at currency scale.
const Scale = 2

var (
	ErrInvalidAmount  = httperr.ErrBusiness("invalid_amount")
	ErrInvalidMethod  = httperr.ErrBusiness("invalid_method")
	ErrExceedsBalance = httperr.ErrBusiness("exceeds_balance")
)

type LedgerState struct {
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Balance       decimal.Decimal `json:"balance"`
	Status        InvoiceStatus   `json:"status"`
	PartiallyPaid bool            `json:"partially_paid"`
}

type PaymentCandidate struct {
	Amount       decimal.Decimal
	Method       string
	PaymentDate  wallclock.Date
	Notes        string
	RecordedByID uint
}

// AppliedPayment is what the caller persists: the new payment row, the
// resulting ledger state, and whether the invoice is now settled.
type AppliedPayment struct {
	Payment  models.Payment
	State    LedgerState
	MarkPaid bool
}

// ComputeState derives the financial state of inv from its payments as of
// today. Payments that belong to another invoice are ignored.
func ComputeState(inv models.Invoice, payments []models.Payment, today wallclock.Date) LedgerState {
	paid := decimal.Zero
	for _, p := range payments {
		if inv.ID != 0 && p.InvoiceID != inv.ID {
			continue
		}
		paid = paid.Add(p.Amount)
	}
	return stateFor(inv, paid, today)
}

func stateFor(inv models.Invoice, paid decimal.Decimal, today wallclock.Date) LedgerState {
	total := inv.TotalAmount.Round(Scale)
	paid = paid.Round(Scale)

	balance := total.Sub(paid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	st := LedgerState{
		AmountPaid: paid,
		Balance:    balance,
	}

	switch {
	case paid.GreaterThanOrEqual(total):
		st.Status = StatusPaid
	case !inv.DueDate.IsZero() && inv.DueDate.Before(today):
		st.Status = StatusOverdue
	default:
		st.Status = StatusPending
	}
	st.PartiallyPaid = st.Status != StatusPaid && paid.IsPositive()

	return st
}

// RecordPayment validates cand against the balance left by existing and
// returns the payment to persist. It performs no I/O; the caller must hold
// the invoice lock between loading existing and writing the result.
func RecordPayment(
	inv models.Invoice,
	existing []models.Payment,
	cand PaymentCandidate,
	today wallclock.Date,
) (AppliedPayment, error) {

	if !cand.Amount.IsPositive() || !cand.Amount.Equal(cand.Amount.Round(Scale)) {
		return AppliedPayment{}, ErrInvalidAmount
	}

	method, ok := ParseMethod(cand.Method)
	if !ok {
		return AppliedPayment{}, ErrInvalidMethod
	}

	before := ComputeState(inv, existing, today)
	if cand.Amount.GreaterThan(before.Balance) {
		return AppliedPayment{}, httperr.ErrBusinessWith("exceeds_balance", map[string]any{
			"balance": before.Balance.StringFixed(Scale),
		})
	}

	date := cand.PaymentDate
	if date.IsZero() {
		date = today
	}

	payment := models.Payment{
		InvoiceID:     inv.ID,
		Amount:        cand.Amount,
		PaymentDate:   date,
		PaymentMethod: string(method),
		Notes:         cand.Notes,
		RecordedByID:  cand.RecordedByID,
	}

	after := stateFor(inv, before.AmountPaid.Add(cand.Amount), today)

	return AppliedPayment{
		Payment:  payment,
		State:    after,
		MarkPaid: after.Status == StatusPaid,
	}, nil
}

// Apply writes the outcome of a recorded payment onto the invoice row.
func Apply(inv *models.Invoice, ap AppliedPayment) {
	inv.Status = string(ap.State.Status)
	if ap.MarkPaid {
		method := ap.Payment.PaymentMethod
		date := ap.Payment.PaymentDate
		inv.PaymentMethod = &method
		inv.PaymentDate = &date
	}
}

// Sync refreshes the cached status on inv and reports whether it changed.
func Sync(inv *models.Invoice, st LedgerState) bool {
	if inv.Status == string(st.Status) {
		return false
	}
	inv.Status = string(st.Status)
	return true
}
