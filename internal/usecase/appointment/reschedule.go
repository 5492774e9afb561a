package appointment

import (
	"context"

	"github.com/BruksfildServices01/advocate-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/advocate-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/monitoring"
)

type RescheduleAppointmentInput struct {
	AdvocateID    uint
	AppointmentID uint

	Date      string
	StartTime string
	EndTime   string
}

type RescheduleAppointment struct {
	guard calendarGuard
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		guard: calendarGuard{repo: repo, locker: locker},
		audit: audit,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	date, iv, err := parseSlot(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	var (
		ap       *models.Appointment
		from     string
		conflict domain.ConflictResult
	)

	err = uc.guard.run(ctx, in.AdvocateID, func(tx domain.Repository) error {
		var err error
		ap, err = tx.GetAppointmentForAdvocate(ctx, in.AppointmentID, in.AdvocateID)
		if err != nil {
			return err
		}
		if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
			return err
		}
		from = ap.Date.String() + " " + ap.Interval().String()

		existing, err := tx.ListAppointmentsOnDate(ctx, in.AdvocateID, date)
		if err != nil {
			return err
		}

		conflict, err = domain.CheckConflict(domain.ConflictQuery{
			AdvocateID: in.AdvocateID,
			Date:       date,
			Start:      iv.Start,
			End:        iv.End,
			ExcludeID:  ap.ID,
		}, existing)
		if err != nil {
			return err
		}
		if conflict.HasConflict() {
			return conflict.Err()
		}

		if err := domain.Reschedule(ap, date, iv); err != nil {
			return err
		}
		return tx.UpdateAppointment(ctx, ap)
	})

	if conflict.HasConflict() {
		monitoring.AppointmentConflicts.Inc()
		uc.audit.Dispatch(audit.Event{
			AdvocateID: in.AdvocateID,
			UserID:     &in.AdvocateID,
			Action:     "appointment_conflict",
			Entity:     "appointment",
			EntityID:   &in.AppointmentID,
			Metadata: map[string]any{
				"date":            date.String(),
				"interval":        iv.String(),
				"conflicting_ids": conflict.ConflictingIDs,
			},
		})
	}
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AdvocateID: in.AdvocateID,
		UserID:     &in.AdvocateID,
		Action:     "appointment_rescheduled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"from": from,
			"to":   date.String() + " " + iv.String(),
		},
	})

	return ap, nil
}
