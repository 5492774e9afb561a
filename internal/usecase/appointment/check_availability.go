package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/appointment"
)

type CheckAvailabilityInput struct {
	AdvocateID uint

	Date      string
	StartTime string
	EndTime   string

	// ExcludeAppointmentID previews a reschedule of that appointment.
	ExcludeAppointmentID uint
}

// CheckAvailability answers "would this slot conflict?" without taking any
// lock. The answer may be stale by the time the caller books.
type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in CheckAvailabilityInput,
) (domain.ConflictResult, error) {

	date, iv, err := parseSlot(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return domain.ConflictResult{}, err
	}

	existing, err := uc.repo.ListAppointmentsOnDate(ctx, in.AdvocateID, date)
	if err != nil {
		return domain.ConflictResult{}, err
	}

	return domain.CheckConflict(domain.ConflictQuery{
		AdvocateID: in.AdvocateID,
		Date:       date,
		Start:      iv.Start,
		End:        iv.End,
		ExcludeID:  in.ExcludeAppointmentID,
	}, existing)
}
