package appointment

import (
	"context"

	"github.com/BruksfildServices01/advocate-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/timezone"
)

// CompleteAppointment frees nothing on the calendar, so it does not need
// the advocate lock.
type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock *timezone.Clock
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock *timezone.Clock,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	advocateID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForAdvocate(ctx, appointmentID, advocateID)
	if err != nil {
		return nil, err
	}

	if err := domain.Complete(ap, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AdvocateID: advocateID,
		UserID:     &advocateID,
		Action:     "appointment_completed",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
