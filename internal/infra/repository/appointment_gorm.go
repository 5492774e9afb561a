package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

func (r *AppointmentGormRepository) LockAdvocate(
	ctx context.Context,
	advocateID uint,
) error {

	var user models.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ? AND role = ?", advocateID, models.RoleAdvocate).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("advocate_not_found")
	}
	return err
}

// --------------------------------------------------
// Client / Case
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	advocateID uint,
	clientID uint,
) (*models.Client, error) {
	return findClient(ctx, r.db, advocateID, clientID)
}

func (r *AppointmentGormRepository) GetCase(
	ctx context.Context,
	advocateID uint,
	caseID uint,
) (*models.Case, error) {
	return findCase(ctx, r.db, advocateID, caseID)
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsOnDate(
	ctx context.Context,
	advocateID uint,
	date wallclock.Date,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"advocate_id = ? AND appointment_date = ? AND status <> ?",
			advocateID, date, string(domain.StatusCancelled),
		).
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

func (r *AppointmentGormRepository) GetAppointmentForAdvocate(
	ctx context.Context,
	appointmentID uint,
	advocateID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Where("id = ? AND advocate_id = ?", appointmentID, advocateID).
		First(&ap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	if err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, ap.ID).Error
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	advocateID uint,
	from wallclock.Date,
	to wallclock.Date,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	// dates are stored as YYYY-MM-DD, so string order is calendar order
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Case").
		Where(
			"advocate_id = ? AND appointment_date >= ? AND appointment_date < ?",
			advocateID,
			from,
			to,
		).
		Order("appointment_date ASC").
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// shared lookups
// --------------------------------------------------

func findClient(ctx context.Context, db *gorm.DB, advocateID, clientID uint) (*models.Client, error) {
	var client models.Client
	err := db.WithContext(ctx).
		Where("id = ? AND advocate_id = ?", clientID, advocateID).
		First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("client_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func findCase(ctx context.Context, db *gorm.DB, advocateID, caseID uint) (*models.Case, error) {
	var c models.Case
	err := db.WithContext(ctx).
		Where("id = ? AND advocate_id = ?", caseID, advocateID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrBusiness("case_not_found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
