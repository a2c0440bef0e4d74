package services

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// AppointmentService owns booking, editing and cancellation, including
// slot conflict detection and the atomic appointment+invoice+payment
// write.
type AppointmentService struct {
	db  *gorm.DB
	loc *time.Location
	log zerolog.Logger
}

// NewAppointmentService creates an AppointmentService. loc is the
// clinic's wall-clock timezone, used for payment timestamps.
func NewAppointmentService(db *gorm.DB, loc *time.Location, log zerolog.Logger) *AppointmentService {
	return &AppointmentService{db: db, loc: loc, log: log.With().Str("service", "appointments").Logger()}
}

// AddressInput is the visit-location snapshot supplied with a booking.
type AddressInput struct {
	Country      string `json:"country"`
	State        string `json:"state" binding:"required"`
	City         string `json:"city" binding:"required"`
	Neighborhood string `json:"neighborhood" binding:"required"`
	Street       string `json:"street" binding:"required"`
}

func (a AddressInput) toModel() models.Address {
	addr := models.Address{
		Country:      a.Country,
		State:        a.State,
		City:         a.City,
		Neighborhood: a.Neighborhood,
		Street:       a.Street,
	}
	if addr.Country == "" {
		addr.Country = "Nicaragua"
	}
	return addr
}

// AppointmentInput is the payload for creating or editing an
// appointment.
type AppointmentInput struct {
	Date              string       `json:"date" binding:"required"`
	Time              string       `json:"time" binding:"required"`
	Reason            string       `json:"reason"`
	AppointmentTypeID string       `json:"appointmentTypeId" binding:"required"`
	PatientID         string       `json:"patientId" binding:"required"`
	ClinicianID       string       `json:"clinicianId" binding:"required"`
	Price             *float64     `json:"price"`
	PaymentMethodID   string       `json:"paymentMethodId" binding:"required"`
	Address           AddressInput `json:"address"`
}

func (in AppointmentInput) price() decimal.Decimal {
	if in.Price == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*in.Price)
}

// assertBookable verifies the referenced patient and clinician exist
// and are both active. Runs before conflict detection on create and is
// re-checked on edit, to catch an actor deactivated since booking.
func (s *AppointmentService) assertBookable(db *gorm.DB, patientID, clinicianID string) (*models.Patient, *models.Clinician, error) {
	var patient models.Patient
	if err := db.First(&patient, "id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound("the selected patient does not exist")
		}
		return nil, nil, ErrInternal(err)
	}
	if patient.Status != models.ActivityActive {
		return nil, nil, ErrInactiveActor("cannot book: patient " + patient.FullName() + " is inactive")
	}

	var clinician models.Clinician
	if err := db.First(&clinician, "id = ?", clinicianID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound("clinician not found")
		}
		return nil, nil, ErrInternal(err)
	}
	if clinician.Status != models.ActivityActive {
		return nil, nil, ErrInactiveActor("unavailable: clinician " + clinician.FullName() + " is marked inactive")
	}

	return &patient, &clinician, nil
}

// errSlotConflict is the one conflict message the booking flow
// surfaces, whether the collision is caught by the pre-check or by the
// unique slot index under concurrency.
func errSlotConflict() *Error {
	return ErrConflict("the clinician already has an appointment at this time")
}

// hasConflict reports whether an active appointment already occupies
// the (clinician, date, hour, minute) slot. Cancelled appointments do
// not occupy their slot. excludeID supports edit-in-place: an
// appointment never conflicts with itself.
func (s *AppointmentService) hasConflict(db *gorm.DB, clinicianID string, date time.Time, hour, minute int, excludeID string) error {
	query := db.Model(&models.Appointment{}).
		Where("clinician_id = ? AND date = ? AND hour = ? AND minute = ?", clinicianID, DateOnly(date), hour, minute).
		Where("status <> ?", models.StatusCancelled)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return ErrInternal(err)
	}
	if count > 0 {
		return errSlotConflict()
	}
	return nil
}

// Create books an appointment: guard, time validation, conflict check,
// then one transaction inserting the address snapshot, the appointment
// (Scheduled), its invoice and one payment detail. All four rows
// commit together or none do.
func (s *AppointmentService) Create(input AppointmentInput) (*models.Appointment, *models.Invoice, error) {
	if _, _, err := s.assertBookable(s.db, input.PatientID, input.ClinicianID); err != nil {
		return nil, nil, err
	}

	date, err := ParseDate(input.Date)
	if err != nil {
		return nil, nil, err
	}
	hour, minute, err := ParseClockTime(input.Time)
	if err != nil {
		return nil, nil, err
	}

	if err := s.hasConflict(s.db, input.ClinicianID, date, hour, minute, ""); err != nil {
		return nil, nil, err
	}

	price := input.price()
	now := time.Now().In(s.loc)

	var appointment models.Appointment
	var invoice models.Invoice
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		address := input.Address.toModel()
		if err := tx.Create(&address).Error; err != nil {
			return err
		}

		slotKey := SlotKeyFor(input.ClinicianID, date, hour, minute)
		appointment = models.Appointment{
			Date:              DateOnly(date),
			Hour:              hour,
			Minute:            minute,
			Reason:            input.Reason,
			Status:            models.StatusScheduled,
			SlotKey:           &slotKey,
			AppointmentTypeID: input.AppointmentTypeID,
			PatientID:         input.PatientID,
			ClinicianID:       input.ClinicianID,
			AddressID:         address.ID,
		}
		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}

		invoice = models.Invoice{
			AppointmentID: appointment.ID,
			InvoiceDate:   DateOnly(date),
			Total:         price,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		detail := models.PaymentDetail{
			InvoiceID:       invoice.ID,
			PaymentMethodID: input.PaymentMethodID,
			Price:           price,
			PaidAt:          now,
			Note:            "payment recorded at booking",
		}
		return tx.Create(&detail).Error
	})
	if txErr != nil {
		// A concurrent booking that won the race surfaces here as a
		// duplicate slot key; report it as the same conflict the
		// pre-check would have raised.
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return nil, nil, errSlotConflict()
		}
		s.log.Error().Err(txErr).Str("clinician", input.ClinicianID).Msg("booking transaction failed")
		return nil, nil, ErrInternal(txErr)
	}

	return &appointment, &invoice, nil
}

// Update edits a scheduled appointment, re-running the guard and the
// conflict check (excluding the appointment's own row), then updates
// the appointment and, when an invoice exists, its total and payment
// details. A missing invoice makes the billing part a no-op.
func (s *AppointmentService) Update(id string, input AppointmentInput) error {
	var existing models.Appointment
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("appointment not found")
		}
		return ErrInternal(err)
	}
	if existing.Status != models.StatusScheduled {
		return ErrConflict("only scheduled appointments can be edited")
	}

	if _, _, err := s.assertBookable(s.db, input.PatientID, input.ClinicianID); err != nil {
		return err
	}

	date, err := ParseDate(input.Date)
	if err != nil {
		return err
	}
	hour, minute, err := ParseClockTime(input.Time)
	if err != nil {
		return err
	}

	if err := s.hasConflict(s.db, input.ClinicianID, date, hour, minute, id); err != nil {
		return err
	}

	price := input.price()

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		slotKey := SlotKeyFor(input.ClinicianID, date, hour, minute)
		updates := map[string]interface{}{
			"date":                DateOnly(date),
			"hour":                hour,
			"minute":              minute,
			"reason":              input.Reason,
			"appointment_type_id": input.AppointmentTypeID,
			"patient_id":          input.PatientID,
			"clinician_id":        input.ClinicianID,
			"slot_key":            slotKey,
		}
		if err := tx.Model(&models.Appointment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}

		var invoice models.Invoice
		err := tx.First(&invoice, "appointment_id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Billing rows may be legitimately absent; not an error.
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&invoice).Updates(map[string]interface{}{
			"invoice_date": DateOnly(date),
			"total":        price,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.PaymentDetail{}).Where("invoice_id = ?", invoice.ID).
			Updates(map[string]interface{}{
				"payment_method_id": input.PaymentMethodID,
				"price":             price,
			}).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			return errSlotConflict()
		}
		s.log.Error().Err(txErr).Str("appointment", id).Msg("appointment update failed")
		return ErrInternal(txErr)
	}
	return nil
}

// Cancel sets the appointment to Cancelled and releases its slot key.
// Cancellation is always legal: no conflict or actor-status re-check
// is performed, because removing a booking must always be possible.
func (s *AppointmentService) Cancel(id string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := s.db.First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("appointment not found")
		}
		return nil, ErrInternal(err)
	}

	if err := s.db.Model(&appointment).Updates(map[string]interface{}{
		"status":   models.StatusCancelled,
		"slot_key": nil,
	}).Error; err != nil {
		s.log.Error().Err(err).Str("appointment", id).Msg("cancellation failed")
		return nil, ErrInternal(err)
	}
	appointment.Status = models.StatusCancelled
	appointment.SlotKey = nil
	return &appointment, nil
}

// NumberedAppointment decorates an appointment with its per-patient
// session ordinal for the listing view. Cancelled appointments carry
// no number.
type NumberedAppointment struct {
	models.Appointment
	SessionNumber *int `json:"sessionNumber"`
}

// List returns all appointments, newest first, with relations
// preloaded and per-patient session numbers assigned in chronological
// order (cancelled rows skipped).
func (s *AppointmentService) List() ([]NumberedAppointment, error) {
	var appointments []models.Appointment
	err := s.db.
		Preload("Patient").Preload("Clinician").Preload("AppointmentType").
		Preload("Address").Preload("Invoice").
		Order("date asc, hour asc, minute asc").
		Find(&appointments).Error
	if err != nil {
		return nil, ErrInternal(err)
	}

	counters := map[string]int{}
	numbered := make([]NumberedAppointment, 0, len(appointments))
	for _, appt := range appointments {
		item := NumberedAppointment{Appointment: appt}
		if appt.Status != models.StatusCancelled {
			counters[appt.PatientID]++
			n := counters[appt.PatientID]
			item.SessionNumber = &n
		}
		numbered = append(numbered, item)
	}

	// Newest first for display.
	for i, j := 0, len(numbered)-1; i < j; i, j = i+1, j-1 {
		numbered[i], numbered[j] = numbered[j], numbered[i]
	}
	return numbered, nil
}

// BookingCatalogs are the reference lists the booking form needs.
type BookingCatalogs struct {
	AppointmentTypes []models.AppointmentType `json:"appointmentTypes"`
	PaymentMethods   []models.PaymentMethod   `json:"paymentMethods"`
}

// Catalogs returns the booking form reference data.
func (s *AppointmentService) Catalogs() (*BookingCatalogs, error) {
	var cats BookingCatalogs
	if err := s.db.Find(&cats.AppointmentTypes).Error; err != nil {
		return nil, ErrInternal(err)
	}
	if err := s.db.Find(&cats.PaymentMethods).Error; err != nil {
		return nil, ErrInternal(err)
	}
	return &cats, nil
}
