package billing_test

import (
	"context"
	"sort"
	"sync"

	"github.com/BruksfildServices01/advocate-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
)

// fakeRepo stores invoices and payments in memory. Like a database without
// row locks, it does not serialize read-check-write sequences.
type fakeRepo struct {
	mu sync.Mutex

	nextID   uint
	invoices map[uint]models.Invoice
	payments []models.Payment
	clients  map[uint]models.Client

	statusWrites int
	lastFilter   domain.InvoiceFilter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		invoices: map[uint]models.Invoice{},
		clients:  map[uint]models.Client{},
	}
}

func (f *fakeRepo) seedInvoice(inv models.Invoice) models.Invoice {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	inv.ID = f.nextID
	if inv.Status == "" {
		inv.Status = string(domain.StatusPending)
	}
	f.invoices[inv.ID] = inv
	return inv
}

func (f *fakeRepo) invoice(id uint) models.Invoice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invoices[id]
}

func (f *fakeRepo) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) GetClient(_ context.Context, advocateID, clientID uint) (*models.Client, error) {
	c, ok := f.clients[clientID]
	if !ok || c.AdvocateID != advocateID {
		return nil, httperr.ErrBusiness("client_not_found")
	}
	return &c, nil
}

func (f *fakeRepo) GetCase(context.Context, uint, uint) (*models.Case, error) {
	return nil, httperr.ErrBusiness("case_not_found")
}

func (f *fakeRepo) CreateInvoice(_ context.Context, inv *models.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, other := range f.invoices {
		if other.InvoiceNumber == inv.InvoiceNumber {
			return httperr.ErrBusiness("invoice_number_taken")
		}
	}
	f.nextID++
	inv.ID = f.nextID
	f.invoices[inv.ID] = *inv
	return nil
}

func (f *fakeRepo) GetInvoiceForAdvocate(_ context.Context, invoiceID, advocateID uint) (*models.Invoice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inv, ok := f.invoices[invoiceID]
	if !ok || inv.AdvocateID != advocateID {
		return nil, httperr.ErrBusiness("invoice_not_found")
	}
	return &inv, nil
}

func (f *fakeRepo) LockInvoice(ctx context.Context, invoiceID, advocateID uint) (*models.Invoice, error) {
	return f.GetInvoiceForAdvocate(ctx, invoiceID, advocateID)
}

func (f *fakeRepo) UpdateInvoiceStatus(_ context.Context, inv *models.Invoice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := f.invoices[inv.ID]
	stored.Status = inv.Status
	stored.PaymentMethod = inv.PaymentMethod
	stored.PaymentDate = inv.PaymentDate
	f.invoices[inv.ID] = stored
	f.statusWrites++
	return nil
}

func (f *fakeRepo) ListInvoices(_ context.Context, filter domain.InvoiceFilter) ([]models.Invoice, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastFilter = filter
	var out []models.Invoice
	for _, inv := range f.invoices {
		if inv.AdvocateID == filter.AdvocateID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeRepo) ListPayments(_ context.Context, invoiceIDs ...uint) ([]models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	want := map[uint]bool{}
	for _, id := range invoiceIDs {
		want[id] = true
	}
	var out []models.Payment
	for _, p := range f.payments {
		if want[p.InvoiceID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreatePayment(_ context.Context, p *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.ID = f.nextID
	f.payments = append(f.payments, *p)
	return nil
}

type memSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *memSink) Log(ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func (s *memSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}
