package appointment_test

import (
	"context"
	"sort"
	"sync"

	"github.com/BruksfildServices01/advocate-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

// fakeRepo keeps appointments in memory. Its mutex only guards the map; it
// does not serialize read-check-write sequences, so races between callers
// are visible to the use cases under test.
type fakeRepo struct {
	mu sync.Mutex

	nextID       uint
	appointments map[uint]models.Appointment
	clients      map[uint]models.Client
	cases        map[uint]models.Case
	advocates    map[uint]bool

	creates int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		appointments: map[uint]models.Appointment{},
		clients:      map[uint]models.Client{},
		cases:        map[uint]models.Case{},
		advocates:    map[uint]bool{},
	}
}

func (f *fakeRepo) addAdvocate(id uint) { f.advocates[id] = true }

func (f *fakeRepo) addClient(c models.Client) { f.clients[c.ID] = c }

func (f *fakeRepo) addCase(c models.Case) { f.cases[c.ID] = c }

func (f *fakeRepo) seed(ap models.Appointment) models.Appointment {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	ap.ID = f.nextID
	f.appointments[ap.ID] = ap
	return ap
}

func (f *fakeRepo) get(id uint) (models.Appointment, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ap, ok := f.appointments[id]
	return ap, ok
}

func (f *fakeRepo) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	return fn(f)
}

func (f *fakeRepo) LockAdvocate(_ context.Context, advocateID uint) error {
	if !f.advocates[advocateID] {
		return httperr.ErrBusiness("advocate_not_found")
	}
	return nil
}

func (f *fakeRepo) GetClient(_ context.Context, advocateID, clientID uint) (*models.Client, error) {
	c, ok := f.clients[clientID]
	if !ok || c.AdvocateID != advocateID {
		return nil, httperr.ErrBusiness("client_not_found")
	}
	return &c, nil
}

func (f *fakeRepo) GetCase(_ context.Context, advocateID, caseID uint) (*models.Case, error) {
	c, ok := f.cases[caseID]
	if !ok || c.AdvocateID != advocateID {
		return nil, httperr.ErrBusiness("case_not_found")
	}
	return &c, nil
}

func (f *fakeRepo) ListAppointmentsOnDate(_ context.Context, advocateID uint, date wallclock.Date) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.AdvocateID == advocateID && ap.Date == date {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	f.creates++
	ap.ID = f.nextID
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) GetAppointmentForAdvocate(_ context.Context, appointmentID, advocateID uint) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ap, ok := f.appointments[appointmentID]
	if !ok || ap.AdvocateID != advocateID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return &ap, nil
}

func (f *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) DeleteAppointment(_ context.Context, ap *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.appointments, ap.ID)
	return nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(_ context.Context, advocateID uint, from, to wallclock.Date) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.AdvocateID != advocateID || ap.Date.Before(from) || !ap.Date.Before(to) {
			continue
		}
		ap.Client = f.clients[ap.ClientID]
		if ap.CaseID != nil {
			if c, ok := f.cases[*ap.CaseID]; ok {
				ap.Case = &c
			}
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

type memSink struct {
	mu     sync.Mutex
	events []string
}

func (s *memSink) Log(ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev.Action)
	return nil
}

func (s *memSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}
