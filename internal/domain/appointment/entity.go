package appointment

import (
	"time"

	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Reschedule moves the appointment to a new slot. The conflict check is the
// caller's job; this only validates the transition and the interval.
func Reschedule(ap *models.Appointment, date wallclock.Date, iv wallclock.Interval) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}
	if !iv.Valid() {
		return ErrInvalidInterval
	}

	if ap.Date == date && ap.StartTime == iv.Start && ap.EndTime == iv.End {
		return nil
	}

	ap.Date = date
	ap.StartTime = iv.Start
	ap.EndTime = iv.End
	ap.Status = string(StatusRescheduled)
	return nil
}
