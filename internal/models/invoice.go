package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the billing record created atomically with its
// appointment. Exactly one per appointment.
type Invoice struct {
	BaseModel
	AppointmentID string          `gorm:"size:36;uniqueIndex" json:"appointmentId"`
	InvoiceDate   time.Time       `gorm:"type:date" json:"invoiceDate"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`

	// Relations
	Details []PaymentDetail `gorm:"foreignKey:InvoiceID" json:"details,omitempty"`
}

// PaymentDetail is an itemized payment line under an invoice.
type PaymentDetail struct {
	BaseModel
	InvoiceID       string          `gorm:"size:36;index" json:"invoiceId"`
	PaymentMethodID string          `gorm:"size:36" json:"paymentMethodId"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	PaidAt          time.Time       `json:"paidAt"`
	Note            string          `gorm:"size:255" json:"note"`

	PaymentMethod PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"paymentMethod,omitempty"`
}
