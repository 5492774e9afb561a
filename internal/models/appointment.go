package models

import (
	"time"

	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AdvocateID uint `gorm:"not null;index:idx_appointment_advocate_date" json:"advocate_id"`
	Advocate   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	ClientID uint   `gorm:"not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	CaseID *uint `json:"case_id"`
	Case   *Case `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"case,omitempty"`

	Date      wallclock.Date  `gorm:"column:appointment_date;type:varchar(10);not null;index:idx_appointment_advocate_date" json:"date"`
	StartTime wallclock.Clock `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   wallclock.Clock `gorm:"type:varchar(5);not null" json:"end_time"`

	Title  string `gorm:"size:150" json:"title"`
	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a Appointment) Interval() wallclock.Interval {
	return wallclock.Interval{Start: a.StartTime, End: a.EndTime}
}
