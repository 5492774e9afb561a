package appointment

import (
	"context"

	"github.com/BruksfildServices01/advocate-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/advocate-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/timezone"
)

type CancelAppointment struct {
	guard calendarGuard
	audit *audit.Dispatcher
	clock *timezone.Clock
}

func NewCancelAppointment(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
	clock *timezone.Clock,
) *CancelAppointment {
	return &CancelAppointment{
		guard: calendarGuard{repo: repo, locker: locker},
		audit: audit,
		clock: clock,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	advocateID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap *models.Appointment
	err := uc.guard.run(ctx, advocateID, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentForAdvocate(ctx, appointmentID, advocateID)
		if err != nil {
			return err
		}

		if err := domain.Cancel(ap, uc.clock.Now()); err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AdvocateID: advocateID,
		UserID:     &advocateID,
		Action:     "appointment_cancelled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
