package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/advocate-scheduler/internal/wallclock"
)

// Payment rows are append-only.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	InvoiceID uint `gorm:"not null;index" json:"invoice_id"`

	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentDate   wallclock.Date  `gorm:"type:varchar(10);not null" json:"payment_date"`
	PaymentMethod string          `gorm:"size:20;not null" json:"payment_method"`
	Notes         string          `gorm:"type:text" json:"notes"`
	Reference     string          `gorm:"size:36;uniqueIndex" json:"reference"`

	RecordedByID uint `gorm:"not null" json:"recorded_by_id"`

	CreatedAt time.Time `json:"created_at"`
}
