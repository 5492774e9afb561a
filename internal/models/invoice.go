package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

type Invoice struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AdvocateID uint `gorm:"not null;index" json:"advocate_id"`

	ClientID uint   `gorm:"not null;index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	CaseID *uint `json:"case_id"`

	InvoiceNumber string          `gorm:"size:50;uniqueIndex;not null" json:"invoice_number"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	BillingDate   wallclock.Date  `gorm:"type:varchar(10);not null" json:"billing_date"`
	DueDate       wallclock.Date  `gorm:"type:varchar(10);not null;index" json:"due_date"`
	Description   string          `gorm:"type:text" json:"description"`

	// Status caches the ledger-derived state: pending, paid, overdue.
	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	PaymentMethod *string         `gorm:"size:20" json:"payment_method"`
	PaymentDate   *wallclock.Date `gorm:"type:varchar(10)" json:"payment_date"`

	Items []InvoiceItem `gorm:"constraint:OnDelete:CASCADE;" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InvoiceItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"not null;index" json:"invoice_id"`

	Description string          `gorm:"size:255;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`

	CreatedAt time.Time `json:"created_at"`
}
