package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/advocate-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/advocate-scheduler/internal/dto"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	advocateID uint,
	date wallclock.Date,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		advocateID,
		date,
		date.AddDays(1),
	)
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments), nil
}

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	advocateID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 || year < 1 {
		return nil, errInvalidDateOrTime
	}

	start := wallclock.Date{Year: year, Month: time.Month(month), Day: 1}
	end := wallclock.DateOf(start.In(time.UTC).AddDate(0, 1, 0))

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		advocateID,
		start,
		end,
	)
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments), nil
}

func toListDTO(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		item := dto.AppointmentListDTO{
			ID:         ap.ID,
			Date:       ap.Date,
			StartTime:  ap.StartTime,
			EndTime:    ap.EndTime,
			Title:      ap.Title,
			Status:     ap.Status,
			ClientName: ap.Client.Name,
		}
		if ap.Case != nil {
			item.CaseTitle = ap.Case.Title
		}
		out = append(out, item)
	}
	return out
}
