package dto

import (
	"github.com/BruksfildServices01/advocate-scheduler/internal/domain/billing"
	"github.com/BruksfildServices01/advocate-scheduler/internal/models"
)

// InvoiceDTO pairs the stored invoice with its ledger state as of the
// practice's current day.
type InvoiceDTO struct {
	models.Invoice
	Ledger   billing.LedgerState `json:"ledger"`
	Payments []models.Payment    `json:"payments,omitempty"`
}

type PaymentReceiptDTO struct {
	Payment models.Payment      `json:"payment"`
	Ledger  billing.LedgerState `json:"ledger"`
	Settled bool                `json:"settled"`
}
