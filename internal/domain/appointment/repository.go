package appointment

import (
	"context"

	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

type Repository interface {
	// -------- Transaction --------

	// Transaction runs fn against a repository bound to a single database
	// transaction. fn's error rolls it back.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// LockAdvocate takes a row lock on the advocate for the rest of the
	// transaction, serializing calendar writes for that advocate.
	LockAdvocate(
		ctx context.Context,
		advocateID uint,
	) error

	// -------- Client / Case --------
	GetClient(
		ctx context.Context,
		advocateID uint,
		clientID uint,
	) (*models.Client, error)

	GetCase(
		ctx context.Context,
		advocateID uint,
		caseID uint,
	) (*models.Case, error)

	// -------- Appointment (create / conflict) --------
	ListAppointmentsOnDate(
		ctx context.Context,
		advocateID uint,
		date wallclock.Date,
	) ([]models.Appointment, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForAdvocate(
		ctx context.Context,
		appointmentID uint,
		advocateID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------

	// ListAppointmentsForPeriod returns appointments with from <= date < to.
	ListAppointmentsForPeriod(
		ctx context.Context,
		advocateID uint,
		from wallclock.Date,
		to wallclock.Date,
	) ([]models.Appointment, error)
}
