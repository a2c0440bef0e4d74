package services

import (
	"errors"
	"regexp"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// Guardian link modes for minor patients.
const (
	GuardianModeExisting = "existing"
	GuardianModeNew      = "new"
)

// nationalIDPattern is the strict cedula format:
// three digits, six digits, four digits plus an uppercase letter.
var nationalIDPattern = regexp.MustCompile(`^\d{3}-\d{6}-\d{4}[A-Z]$`)

// PatientService owns patient records, their adult/minor profiles and
// guardian linkage.
type PatientService struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewPatientService creates a PatientService.
func NewPatientService(db *gorm.DB, log zerolog.Logger) *PatientService {
	return &PatientService{db: db, log: log.With().Str("service", "patients").Logger()}
}

// AdultInput are the adult-only patient fields.
type AdultInput struct {
	NationalID      string `json:"nationalId" binding:"required"`
	Phone           string `json:"phone"`
	OccupationID    string `json:"occupationId" binding:"required"`
	MaritalStatusID string `json:"maritalStatusId" binding:"required"`
}

// NewGuardianInput creates a guardian alongside a minor patient.
type NewGuardianInput struct {
	NationalID      string       `json:"nationalId" binding:"required"`
	FirstName       string       `json:"firstName" binding:"required"`
	LastName        string       `json:"lastName" binding:"required"`
	Phone           string       `json:"phone"`
	RelationshipID  string       `json:"relationshipId" binding:"required"`
	OccupationID    string       `json:"occupationId" binding:"required"`
	MaritalStatusID string       `json:"maritalStatusId" binding:"required"`
	Address         AddressInput `json:"address"`
}

// MinorInput are the minor-only patient fields plus guardian linkage.
type MinorInput struct {
	BirthCertificate string            `json:"birthCertificate"`
	SchoolGrade      string            `json:"schoolGrade"`
	GuardianMode     string            `json:"guardianMode" binding:"required,oneof=existing new"`
	GuardianID       string            `json:"guardianId"`
	NewGuardian      *NewGuardianInput `json:"newGuardian"`
}

// PatientInput is the payload for creating or editing a patient.
type PatientInput struct {
	FirstName   string       `json:"firstName" binding:"required"`
	LastName    string       `json:"lastName" binding:"required"`
	BirthDate   string       `json:"birthDate" binding:"required"`
	Gender      string       `json:"gender"`
	Nationality string       `json:"nationality"`
	Address     AddressInput `json:"address"`
	IsAdult     bool         `json:"isAdult"`
	Adult       *AdultInput  `json:"adult"`
	Minor       *MinorInput  `json:"minor"`
	// Update only
	Status models.ActivityStatus `json:"status"`
}

// validateNationalIDFormat enforces the cedula pattern with a message
// naming whose cedula is wrong.
func validateNationalIDFormat(id, owner string) error {
	if !nationalIDPattern.MatchString(id) {
		return ErrInvalidInput("national ID for " + owner + " (" + id + ") is malformed, expected XXX-XXXXXX-XXXXL")
	}
	return nil
}

// assertPatientNationalIDUnique rejects a cedula already registered to
// another adult patient. excludeID permits saving a record unchanged.
func (s *PatientService) assertPatientNationalIDUnique(id, excludeID string) error {
	query := s.db.Model(&models.AdultProfile{}).Where("national_id = ?", id)
	if excludeID != "" {
		query = query.Where("patient_id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return ErrInternal(err)
	}
	if count > 0 {
		return ErrConflict("national ID " + id + " is already registered to another patient")
	}
	return nil
}

func (s *PatientService) assertGuardianNationalIDUnique(id, excludeID string) error {
	query := s.db.Model(&models.Guardian{}).Where("national_id = ?", id)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return ErrInternal(err)
	}
	if count > 0 {
		return ErrConflict("national ID " + id + " is already registered to another guardian")
	}
	return nil
}

// List returns every patient with profiles and address preloaded.
func (s *PatientService) List() ([]models.Patient, error) {
	var patients []models.Patient
	err := s.db.
		Preload("Address").
		Preload("AdultProfile").
		Preload("MinorProfile.Guardian").
		Find(&patients).Error
	if err != nil {
		return nil, ErrInternal(err)
	}
	return patients, nil
}

// Create registers a patient with their address snapshot and the
// profile matching their age group. Minor patients link an existing
// guardian or create a new one (with the guardian's own address) in
// the same transaction.
func (s *PatientService) Create(input PatientInput) (*models.Patient, error) {
	birthDate, err := ParseDate(input.BirthDate)
	if err != nil {
		return nil, err
	}

	if input.IsAdult && input.Adult != nil {
		if err := validateNationalIDFormat(input.Adult.NationalID, "adult patient"); err != nil {
			return nil, err
		}
		if err := s.assertPatientNationalIDUnique(input.Adult.NationalID, ""); err != nil {
			return nil, err
		}
	}
	if !input.IsAdult && input.Minor != nil && input.Minor.GuardianMode == GuardianModeNew {
		if input.Minor.NewGuardian == nil {
			return nil, ErrInvalidInput("new guardian data is required")
		}
		if err := validateNationalIDFormat(input.Minor.NewGuardian.NationalID, "new guardian"); err != nil {
			return nil, err
		}
		if err := s.assertGuardianNationalIDUnique(input.Minor.NewGuardian.NationalID, ""); err != nil {
			return nil, err
		}
	}

	var patient models.Patient
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		address := input.Address.toModel()
		if err := tx.Create(&address).Error; err != nil {
			return err
		}

		patient = models.Patient{
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			BirthDate:   birthDate,
			Gender:      input.Gender,
			Nationality: input.Nationality,
			AddressID:   address.ID,
			Status:      models.ActivityActive,
		}
		if err := tx.Create(&patient).Error; err != nil {
			return err
		}

		switch {
		case input.IsAdult && input.Adult != nil:
			profile := models.AdultProfile{
				PatientID:       patient.ID,
				NationalID:      input.Adult.NationalID,
				Phone:           input.Adult.Phone,
				OccupationID:    input.Adult.OccupationID,
				MaritalStatusID: input.Adult.MaritalStatusID,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}

		case !input.IsAdult && input.Minor != nil:
			guardianID := input.Minor.GuardianID
			if input.Minor.GuardianMode == GuardianModeNew {
				ng := input.Minor.NewGuardian
				guardianAddress := ng.Address.toModel()
				if err := tx.Create(&guardianAddress).Error; err != nil {
					return err
				}
				guardian := models.Guardian{
					NationalID:      ng.NationalID,
					FirstName:       ng.FirstName,
					LastName:        ng.LastName,
					Phone:           ng.Phone,
					RelationshipID:  ng.RelationshipID,
					OccupationID:    ng.OccupationID,
					MaritalStatusID: ng.MaritalStatusID,
					AddressID:       guardianAddress.ID,
				}
				if err := tx.Create(&guardian).Error; err != nil {
					return err
				}
				guardianID = guardian.ID
			}
			if guardianID == "" {
				return ErrInvalidInput("a guardian is required for a minor patient")
			}
			profile := models.MinorProfile{
				PatientID:        patient.ID,
				BirthCertificate: input.Minor.BirthCertificate,
				SchoolGrade:      input.Minor.SchoolGrade,
				GuardianID:       guardianID,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		var domainErr *Error
		if errors.As(txErr, &domainErr) {
			return nil, domainErr
		}
		s.log.Error().Err(txErr).Msg("patient creation failed")
		return nil, ErrInternal(txErr)
	}
	return &patient, nil
}

// Update edits a patient, their address snapshot and their profile.
func (s *PatientService) Update(id string, input PatientInput) (*models.Patient, error) {
	var existing models.Patient
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("patient not found")
		}
		return nil, ErrInternal(err)
	}

	birthDate, err := ParseDate(input.BirthDate)
	if err != nil {
		return nil, err
	}

	if input.IsAdult && input.Adult != nil {
		if err := validateNationalIDFormat(input.Adult.NationalID, "adult patient"); err != nil {
			return nil, err
		}
		if err := s.assertPatientNationalIDUnique(input.Adult.NationalID, id); err != nil {
			return nil, err
		}
	}

	status := input.Status
	if status == 0 {
		status = existing.Status
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"first_name":  input.FirstName,
			"last_name":   input.LastName,
			"birth_date":  birthDate,
			"gender":      input.Gender,
			"nationality": input.Nationality,
			"status":      status,
		}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Address{}).Where("id = ?", existing.AddressID).
			Updates(map[string]interface{}{
				"state":        input.Address.State,
				"city":         input.Address.City,
				"neighborhood": input.Address.Neighborhood,
				"street":       input.Address.Street,
			}).Error; err != nil {
			return err
		}

		if input.IsAdult && input.Adult != nil {
			return tx.Model(&models.AdultProfile{}).Where("patient_id = ?", id).
				Updates(map[string]interface{}{
					"national_id":       input.Adult.NationalID,
					"phone":             input.Adult.Phone,
					"occupation_id":     input.Adult.OccupationID,
					"marital_status_id": input.Adult.MaritalStatusID,
				}).Error
		}
		if !input.IsAdult && input.Minor != nil {
			updates := map[string]interface{}{
				"birth_certificate": input.Minor.BirthCertificate,
				"school_grade":      input.Minor.SchoolGrade,
			}
			if input.Minor.GuardianID != "" {
				updates["guardian_id"] = input.Minor.GuardianID
			}
			return tx.Model(&models.MinorProfile{}).Where("patient_id = ?", id).
				Updates(updates).Error
		}
		return nil
	})
	if txErr != nil {
		s.log.Error().Err(txErr).Str("patient", id).Msg("patient update failed")
		return nil, ErrInternal(txErr)
	}
	return &existing, nil
}

// PatientRecord is the full clinical record view: the patient, their
// appointments and their session history with real visit dates
// attached.
type PatientRecord struct {
	Patient      *models.Patient      `json:"patient"`
	Appointments []models.Appointment `json:"appointments"`
	Sessions     []DatedSession       `json:"sessions"`
}

// Record assembles a patient's record view.
func (s *PatientService) Record(id string) (*PatientRecord, error) {
	var patient models.Patient
	err := s.db.
		Preload("Address").
		Preload("AdultProfile.Occupation").Preload("AdultProfile.MaritalStatus").
		Preload("MinorProfile.Guardian.Relationship").
		Preload("MinorProfile.Guardian.Occupation").
		Preload("MinorProfile.Guardian.MaritalStatus").
		Preload("MinorProfile.Guardian.Address").
		First(&patient, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("patient not found")
		}
		return nil, ErrInternal(err)
	}

	var appointments []models.Appointment
	err = s.db.Where("patient_id = ?", id).
		Preload("Clinician").Preload("AppointmentType").
		Order("date desc, hour desc, minute desc").
		Find(&appointments).Error
	if err != nil {
		return nil, ErrInternal(err)
	}

	var sessions []models.Session
	err = s.db.Where("patient_id = ?", id).
		Preload("Clinician").
		Order("created_at desc").
		Find(&sessions).Error
	if err != nil {
		return nil, ErrInternal(err)
	}

	return &PatientRecord{
		Patient:      &patient,
		Appointments: appointments,
		Sessions:     attachVisitDates(sessions, appointments),
	}, nil
}

// History returns a patient's sessions with treatments preloaded and
// real visit dates attached.
func (s *PatientService) History(id string) ([]DatedSession, error) {
	var sessions []models.Session
	err := s.db.Where("patient_id = ?", id).
		Preload("Clinician").Preload("CaseFile").
		Preload("Treatments.Pharmacological.AdministrationRoute").
		Preload("Treatments.Therapeutic.TherapyType").
		Order("created_at desc").
		Find(&sessions).Error
	if err != nil {
		return nil, ErrInternal(err)
	}

	var appointments []models.Appointment
	if err := s.db.Where("patient_id = ?", id).Find(&appointments).Error; err != nil {
		return nil, ErrInternal(err)
	}

	return attachVisitDates(sessions, appointments), nil
}

// DatedSession pairs a session with its recovered visit date. Sessions
// only store a time of day; the calendar date lives on the completed
// appointment that produced them.
type DatedSession struct {
	models.Session
	VisitDate *time.Time `json:"visitDate"`
}

// attachVisitDates pairs each session with a completed appointment of
// the same clinician, consuming appointments newest-first so repeated
// visits match one-to-one. Sessions without a match keep a nil date.
func attachVisitDates(sessions []models.Session, appointments []models.Appointment) []DatedSession {
	available := make([]models.Appointment, 0, len(appointments))
	for _, appt := range appointments {
		if appt.Status == models.StatusCompleted {
			available = append(available, appt)
		}
	}
	sort.Slice(available, func(i, j int) bool {
		return available[i].Date.After(available[j].Date)
	})

	dated := make([]DatedSession, 0, len(sessions))
	for _, session := range sessions {
		item := DatedSession{Session: session}
		for i, appt := range available {
			if appt.ClinicianID == session.ClinicianID {
				visit := CombineDateTime(appt.Date, appt.Hour, appt.Minute)
				item.VisitDate = &visit
				available = append(available[:i], available[i+1:]...)
				break
			}
		}
		dated = append(dated, item)
	}
	return dated
}
