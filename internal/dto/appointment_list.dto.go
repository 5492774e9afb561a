package dto

import "github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"

type AppointmentListDTO struct {
	ID         uint            `json:"id"`
	Date       wallclock.Date  `json:"date"`
	StartTime  wallclock.Clock `json:"start_time"`
	EndTime    wallclock.Clock `json:"end_time"`
	Title      string          `json:"title"`
	Status     string          `json:"status"`
	ClientName string          `json:"client_name"`
	CaseTitle  string          `json:"case_title,omitempty"`
}
