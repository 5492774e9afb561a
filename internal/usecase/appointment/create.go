package appointment

import (
	"context"

	"github.com/BruksfildServices01/advocate-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/advocate-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/monitoring"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	AdvocateID uint
	ClientID   uint
	CaseID     *uint

	Date      string
	StartTime string
	EndTime   string

	Title string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	guard calendarGuard
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		guard: calendarGuard{repo: repo, locker: locker},
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Slot
	// --------------------------------------------------
	date, iv, err := parseSlot(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Client / case ownership
	// --------------------------------------------------
	if _, err := uc.repo.GetClient(ctx, in.AdvocateID, in.ClientID); err != nil {
		return nil, err
	}
	if in.CaseID != nil {
		if _, err := uc.repo.GetCase(ctx, in.AdvocateID, *in.CaseID); err != nil {
			return nil, err
		}
	}

	ap := &models.Appointment{
		AdvocateID: in.AdvocateID,
		ClientID:   in.ClientID,
		CaseID:     in.CaseID,
		Date:       date,
		StartTime:  iv.Start,
		EndTime:    iv.End,
		Title:      in.Title,
		Notes:      in.Notes,
		Status:     string(domain.InitialStatus()),
	}

	// --------------------------------------------------
	// 3. Conflict check + insert, serialized per advocate
	// --------------------------------------------------
	var conflict domain.ConflictResult
	err = uc.guard.run(ctx, in.AdvocateID, func(tx domain.Repository) error {
		existing, err := tx.ListAppointmentsOnDate(ctx, in.AdvocateID, date)
		if err != nil {
			return err
		}

		conflict, err = domain.CheckConflict(domain.ConflictQuery{
			AdvocateID: in.AdvocateID,
			Date:       date,
			Start:      iv.Start,
			End:        iv.End,
		}, existing)
		if err != nil {
			return err
		}
		if conflict.HasConflict() {
			return conflict.Err()
		}

		return tx.CreateAppointment(ctx, ap)
	})

	if conflict.HasConflict() {
		monitoring.AppointmentConflicts.Inc()
		uc.audit.Dispatch(audit.Event{
			AdvocateID: in.AdvocateID,
			UserID:     &in.AdvocateID,
			Action:     "appointment_conflict",
			Entity:     "appointment",
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

	// --------------------------------------------------
	// 4. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		AdvocateID: in.AdvocateID,
		UserID:     &in.AdvocateID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}
