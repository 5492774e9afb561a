package appointment

import (
	"context"

	"github.com/BruksfildServices01/advocate-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/advocate-scheduler/internal/infra/lock"
)

type DeleteAppointment struct {
	guard calendarGuard
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		guard: calendarGuard{repo: repo, locker: locker},
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	advocateID uint,
	appointmentID uint,
) error {

	err := uc.guard.run(ctx, advocateID, func(tx domain.Repository) error {
		ap, err := tx.GetAppointmentForAdvocate(ctx, appointmentID, advocateID)
		if err != nil {
			return err
		}
		return tx.DeleteAppointment(ctx, ap)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		AdvocateID: advocateID,
		UserID:     &advocateID,
		Action:     "appointment_deleted",
		Entity:     "appointment",
		EntityID:   &appointmentID,
	})

	return nil
}
