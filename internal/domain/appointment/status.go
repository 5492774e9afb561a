package appointment

import "github.com/BruksfildServices01/advocate-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusRescheduled:
		return st, true
	}
	return "", false
}

// Active appointments hold their slot on the advocate's calendar.
func (s Status) Active() bool {
	return s == StatusScheduled || s == StatusRescheduled
}

// ===============================
// Validations
// ===============================

// CanCancel defines whether an appointment can be cancelled
func CanCancel(current Status) error {
	if !current.Active() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete defines whether an appointment can be completed
func CanComplete(current Status) error {
	if !current.Active() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanReschedule(current Status) error {
	if !current.Active() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
