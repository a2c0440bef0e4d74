package services

import (
	"errors"

	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// BillingService reads invoices with enough nesting to identify the
// payer (the adult patient, or the guardian of a minor).
type BillingService struct {
	db *gorm.DB
}

// NewBillingService creates a BillingService.
func NewBillingService(db *gorm.DB) *BillingService {
	return &BillingService{db: db}
}

// InvoiceView joins an invoice to its appointment context.
type InvoiceView struct {
	models.Invoice
	Appointment models.Appointment `json:"appointment"`
}

func (s *BillingService) load(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Details.PaymentMethod")
}

// List returns all invoices, newest first, with payment details and
// appointment context.
func (s *BillingService) List() ([]InvoiceView, error) {
	var invoices []models.Invoice
	if err := s.load(s.db).Order("created_at desc").Find(&invoices).Error; err != nil {
		return nil, ErrInternal(err)
	}
	return s.attachAppointments(invoices)
}

// Get returns one invoice by id.
func (s *BillingService) Get(id string) (*InvoiceView, error) {
	var invoice models.Invoice
	if err := s.load(s.db).First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("invoice not found")
		}
		return nil, ErrInternal(err)
	}
	views, err := s.attachAppointments([]models.Invoice{invoice})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *BillingService) attachAppointments(invoices []models.Invoice) ([]InvoiceView, error) {
	views := make([]InvoiceView, 0, len(invoices))
	for _, invoice := range invoices {
		var appointment models.Appointment
		err := s.db.
			Preload("Patient.AdultProfile").
			Preload("Patient.MinorProfile.Guardian").
			Preload("Clinician").
			Preload("AppointmentType").
			First(&appointment, "id = ?", invoice.AppointmentID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternal(err)
		}
		views = append(views, InvoiceView{Invoice: invoice, Appointment: appointment})
	}
	return views, nil
}
