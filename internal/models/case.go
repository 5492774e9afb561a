package models

import "time"

const (
	CaseStatusOpen   = "open"
	CaseStatusOnHold = "on_hold"
	CaseStatusClosed = "closed"
)

func IsCaseStatus(s string) bool {
	switch s {
	case CaseStatusOpen, CaseStatusOnHold, CaseStatusClosed:
		return true
	}
	return false
}

type Case struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AdvocateID uint   `gorm:"not null;uniqueIndex:idx_case_advocate_number" json:"advocate_id"`
	ClientID   uint   `gorm:"not null;index" json:"client_id"`
	Client     Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	CaseNumber string `gorm:"size:50;not null;uniqueIndex:idx_case_advocate_number" json:"case_number"`
	Title      string `gorm:"size:200;not null" json:"title"`
	Status     string `gorm:"size:20;default:'open'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
