package billing_test

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/advocate-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

var today = wallclock.Date{Year: 2024, Month: 5, Day: 10}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func invoice(total string, due wallclock.Date) models.Invoice {
	return models.Invoice{
		ID:          1,
		TotalAmount: dec(total),
		BillingDate: today.AddDays(-30),
		DueDate:     due,
		Status:      string(billing.StatusPending),
	}
}

func payment(amount string) models.Payment {
	return models.Payment{InvoiceID: 1, Amount: dec(amount), PaymentMethod: "cash"}
}

func TestComputeStateNoPayments(t *testing.T) {
	st := billing.ComputeState(invoice("500.00", today.AddDays(5)), nil, today)

	assert.True(t, st.AmountPaid.IsZero())
	assert.Equal(t, "500.00", st.Balance.StringFixed(2))
	assert.Equal(t, billing.StatusPending, st.Status)
	assert.False(t, st.PartiallyPaid)
}

func TestComputeStateOverdue(t *testing.T) {
	inv := invoice("500.00", today.AddDays(-1))
	st := billing.ComputeState(inv, []models.Payment{payment("380.00")}, today)

	assert.Equal(t, "120.00", st.Balance.StringFixed(2))
	assert.Equal(t, billing.StatusOverdue, st.Status)
	assert.True(t, st.PartiallyPaid)
}

func TestComputeStateDueTodayIsNotOverdue(t *testing.T) {
	st := billing.ComputeState(invoice("100.00", today), nil, today)
	assert.Equal(t, billing.StatusPending, st.Status)
}

func TestComputeStatePaidEvenWhenPastDue(t *testing.T) {
	inv := invoice("100.00", today.AddDays(-10))
	st := billing.ComputeState(inv, []models.Payment{payment("60.00"), payment("40.00")}, today)

	assert.Equal(t, billing.StatusPaid, st.Status)
	assert.True(t, st.Balance.IsZero())
	assert.False(t, st.PartiallyPaid)
}

func TestComputeStateClampsOverpayment(t *testing.T) {
	st := billing.ComputeState(invoice("100.00", today), []models.Payment{payment("150.00")}, today)

	assert.True(t, st.Balance.IsZero())
	assert.Equal(t, "150.00", st.AmountPaid.StringFixed(2))
	assert.Equal(t, billing.StatusPaid, st.Status)
}

func TestComputeStateIgnoresOtherInvoices(t *testing.T) {
	other := payment("90.00")
	other.InvoiceID = 2

	st := billing.ComputeState(invoice("100.00", today), []models.Payment{other, payment("10.00")}, today)
	assert.Equal(t, "90.00", st.Balance.StringFixed(2))
}

func TestComputeStateOrderIndependent(t *testing.T) {
	amounts := []string{"0.10", "0.20", "33.33", "12.01", "1.99", "0.37", "50.00"}
	payments := make([]models.Payment, 0, len(amounts))
	for _, a := range amounts {
		payments = append(payments, payment(a))
	}
	inv := invoice("200.00", today)
	want := billing.ComputeState(inv, payments, today)
	assert.Equal(t, "98.00", want.AmountPaid.StringFixed(2))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.Payment(nil), payments...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := billing.ComputeState(inv, shuffled, today)
		assert.True(t, want.AmountPaid.Equal(got.AmountPaid))
		assert.True(t, want.Balance.Equal(got.Balance))
	}
}

func TestRecordPaymentFullSettlement(t *testing.T) {
	inv := invoice("500.00", today.AddDays(5))

	applied, err := billing.RecordPayment(inv, nil, billing.PaymentCandidate{
		Amount:       dec("500.00"),
		Method:       "bank_transfer",
		RecordedByID: 3,
	}, today)
	require.NoError(t, err)

	assert.True(t, applied.MarkPaid)
	assert.Equal(t, billing.StatusPaid, applied.State.Status)
	assert.Equal(t, "500.00", applied.State.AmountPaid.StringFixed(2))
	assert.True(t, applied.State.Balance.IsZero())
	assert.Equal(t, today, applied.Payment.PaymentDate)
	assert.Equal(t, "bank_transfer", applied.Payment.PaymentMethod)
	assert.Equal(t, uint(1), applied.Payment.InvoiceID)
	assert.Equal(t, uint(3), applied.Payment.RecordedByID)

	billing.Apply(&inv, applied)
	assert.Equal(t, "paid", inv.Status)
	require.NotNil(t, inv.PaymentMethod)
	assert.Equal(t, "bank_transfer", *inv.PaymentMethod)
	require.NotNil(t, inv.PaymentDate)
	assert.Equal(t, today, *inv.PaymentDate)
}

func TestRecordPaymentPartialDecreasesBalance(t *testing.T) {
	inv := invoice("500.00", today.AddDays(5))
	existing := []models.Payment{payment("100.00")}

	before := billing.ComputeState(inv, existing, today)
	applied, err := billing.RecordPayment(inv, existing, billing.PaymentCandidate{
		Amount: dec("150.25"),
		Method: "check",
	}, today)
	require.NoError(t, err)

	assert.False(t, applied.MarkPaid)
	assert.True(t, before.Balance.Sub(dec("150.25")).Equal(applied.State.Balance))
	assert.Equal(t, billing.StatusPending, applied.State.Status)
	assert.True(t, applied.State.PartiallyPaid)

	billing.Apply(&inv, applied)
	assert.Nil(t, inv.PaymentMethod)
	assert.Nil(t, inv.PaymentDate)
}

func TestRecordPaymentRejectsWhenSettled(t *testing.T) {
	inv := invoice("500.00", today.AddDays(5))

	_, err := billing.RecordPayment(inv, []models.Payment{payment("500.00")}, billing.PaymentCandidate{
		Amount: dec("0.01"),
		Method: "cash",
	}, today)

	assert.ErrorIs(t, err, billing.ErrExceedsBalance)
	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "0.00", be.Details["balance"])
}

func TestRecordPaymentRejectsOverpayment(t *testing.T) {
	inv := invoice("45.00", today)

	_, err := billing.RecordPayment(inv, nil, billing.PaymentCandidate{
		Amount: dec("45.01"),
		Method: "cash",
	}, today)

	be, ok := httperr.AsBusiness(err)
	require.True(t, ok)
	assert.Equal(t, "exceeds_balance", be.Code)
	assert.Equal(t, "45.00", be.Details["balance"])
}

func TestRecordPaymentValidation(t *testing.T) {
	inv := invoice("100.00", today)

	tests := []struct {
		name   string
		amount string
		method string
		want   error
	}{
		{"zero amount", "0", "cash", billing.ErrInvalidAmount},
		{"negative amount", "-5.00", "cash", billing.ErrInvalidAmount},
		{"sub-cent amount", "10.001", "cash", billing.ErrInvalidAmount},
		{"unknown method", "10.00", "bitcoin", billing.ErrInvalidMethod},
		{"method is case sensitive", "10.00", "Cash", billing.ErrInvalidMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := billing.RecordPayment(inv, nil, billing.PaymentCandidate{
				Amount: dec(tt.amount),
				Method: tt.method,
			}, today)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRecordPaymentKeepsGivenDate(t *testing.T) {
	inv := invoice("100.00", today)
	paidOn := today.AddDays(-2)

	applied, err := billing.RecordPayment(inv, nil, billing.PaymentCandidate{
		Amount:      dec("20.00"),
		Method:      "paypal",
		PaymentDate: paidOn,
	}, today)
	require.NoError(t, err)
	assert.Equal(t, paidOn, applied.Payment.PaymentDate)
}

func TestSync(t *testing.T) {
	inv := invoice("100.00", today.AddDays(-1))

	st := billing.ComputeState(inv, nil, today)
	assert.True(t, billing.Sync(&inv, st))
	assert.Equal(t, "overdue", inv.Status)
	assert.False(t, billing.Sync(&inv, st))
}

func TestParseMethod(t *testing.T) {
	for _, m := range billing.Methods {
		got, ok := billing.ParseMethod(string(m))
		assert.True(t, ok)
		assert.Equal(t, m, got)
	}
	_, ok := billing.ParseMethod("")
	assert.False(t, ok)
}
