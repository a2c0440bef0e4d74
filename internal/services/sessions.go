package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// SessionService records clinical session notes and closes the
// originating appointment in one transaction.
type SessionService struct {
	db  *gorm.DB
	loc *time.Location
	log zerolog.Logger
}

// NewSessionService creates a SessionService. loc is the clinic's
// wall-clock timezone, used for the session end time.
func NewSessionService(db *gorm.DB, loc *time.Location, log zerolog.Logger) *SessionService {
	return &SessionService{db: db, loc: loc, log: log.With().Str("service", "sessions").Logger()}
}

// Treatment entry kinds.
const (
	TreatmentPharmacological = "pharmacological"
	TreatmentTherapeutic     = "therapeutic"
)

// TreatmentInput is one prescribed treatment supplied with a session
// closure. Kind selects which child fields are required.
type TreatmentInput struct {
	Kind      string `json:"kind"`
	Frequency string `json:"frequency"`
	// Pharmacological
	Medication            string `json:"medication"`
	Dose                  string `json:"dose"`
	AdministrationRouteID string `json:"administrationRouteId"`
	// Therapeutic
	TherapyTypeID string `json:"therapyTypeId"`
	Objective     string `json:"objective"`
}

// valid reports whether the entry carries the fields its kind
// requires.
func (t TreatmentInput) valid() bool {
	switch t.Kind {
	case TreatmentPharmacological:
		return t.Medication != "" && t.Dose != "" && t.AdministrationRouteID != ""
	case TreatmentTherapeutic:
		return t.TherapyTypeID != "" && t.Objective != ""
	default:
		return false
	}
}

// CloseSessionInput is the payload for recording a session and closing
// its appointment.
type CloseSessionInput struct {
	AppointmentID  string           `json:"appointmentId" binding:"required"`
	PatientID      string           `json:"patientId" binding:"required"`
	ClinicianID    string           `json:"clinicianId" binding:"required"`
	Observations   string           `json:"observations" binding:"required"`
	Diagnosis      string           `json:"diagnosis" binding:"required"`
	Criteria       string           `json:"criteria"`
	EvolutionNotes string           `json:"evolutionNotes"`
	StartTime      string           `json:"startTime" binding:"required"`
	Treatments     []TreatmentInput `json:"treatments"`
	ExplorationIDs []string         `json:"explorationIds"`
}

// ClosedSession is the closure result: the created session plus a
// report of treatment entries that were dropped for missing fields.
type ClosedSession struct {
	Session           *models.Session `json:"session"`
	SkippedTreatments int             `json:"skippedTreatments"`
}

// Close records a clinical session and transitions its appointment to
// Completed, all in one transaction. The patient's case file is
// created on first session and reused afterwards. A failure anywhere
// rolls the whole closure back: a session never exists without its
// appointment marked Completed, and vice versa.
func (s *SessionService) Close(input CloseSessionInput) (*ClosedSession, error) {
	startHour, startMinute, err := ParseClockTime(input.StartTime)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(s.loc)
	criteria := input.Criteria
	if criteria == "" {
		criteria = "DSM-5"
	}
	evolution := input.EvolutionNotes
	if evolution == "" {
		evolution = "Evolución estándar"
	}

	var session models.Session
	skipped := 0
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.First(&appointment, "id = ?", input.AppointmentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound("appointment not found")
			}
			return err
		}
		if appointment.Status != models.StatusScheduled {
			return ErrConflict("appointment is already completed or cancelled")
		}

		// One case file per patient, created on first session.
		var caseFile models.CaseFile
		err := tx.First(&caseFile, "patient_id = ?", input.PatientID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			caseFile = models.CaseFile{
				PatientID:  input.PatientID,
				FileNumber: fmt.Sprintf("EXP-%d", now.UnixMilli()),
				IntakeDate: DateOnly(now),
			}
			if err := tx.Create(&caseFile).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		session = models.Session{
			CaseFileID:     caseFile.ID,
			PatientID:      input.PatientID,
			ClinicianID:    input.ClinicianID,
			StartTime:      fmt.Sprintf("%02d:%02d:00", startHour, startMinute),
			EndTime:        ClockString(now),
			Observations:   input.Observations,
			Diagnosis:      input.Diagnosis,
			Criteria:       criteria,
			EvolutionNotes: evolution,
		}
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		for _, entry := range input.Treatments {
			// Lenient on malformed entries: the session save goes
			// through, the skip is counted and logged.
			if !entry.valid() {
				skipped++
				s.log.Warn().Str("session", session.ID).Str("kind", entry.Kind).
					Msg("treatment entry missing required fields, skipped")
				continue
			}

			frequency := entry.Frequency
			if frequency == "" {
				frequency = "as directed"
			}
			treatment := models.Treatment{
				SessionID: session.ID,
				StartDate: DateOnly(now),
				Frequency: frequency,
			}
			if err := tx.Create(&treatment).Error; err != nil {
				return err
			}

			switch entry.Kind {
			case TreatmentPharmacological:
				child := models.PharmacologicalTreatment{
					TreatmentID:           treatment.ID,
					AdministrationRouteID: entry.AdministrationRouteID,
					Medication:            entry.Medication,
					Dose:                  entry.Dose,
				}
				if err := tx.Create(&child).Error; err != nil {
					return err
				}
			case TreatmentTherapeutic:
				child := models.TherapeuticTreatment{
					TreatmentID:   treatment.ID,
					TherapyTypeID: entry.TherapyTypeID,
					Objective:     entry.Objective,
				}
				if err := tx.Create(&child).Error; err != nil {
					return err
				}
			}
		}

		for _, explorationID := range input.ExplorationIDs {
			link := models.SessionExploration{
				SessionID:         session.ID,
				ExplorationTestID: explorationID,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		return tx.Model(&appointment).Update("status", models.StatusCompleted).Error
	})
	if txErr != nil {
		var domainErr *Error
		if errors.As(txErr, &domainErr) {
			return nil, domainErr
		}
		s.log.Error().Err(txErr).Str("appointment", input.AppointmentID).Msg("session closure failed")
		return nil, ErrInternal(txErr)
	}

	return &ClosedSession{Session: &session, SkippedTreatments: skipped}, nil
}

// FindLatest returns the most recent session for a patient/clinician
// pair, with its case file.
func (s *SessionService) FindLatest(patientID, clinicianID string) (*models.Session, error) {
	var session models.Session
	err := s.db.Preload("CaseFile").
		Where("patient_id = ? AND clinician_id = ?", patientID, clinicianID).
		Order("created_at desc").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("session not found")
		}
		return nil, ErrInternal(err)
	}
	return &session, nil
}
