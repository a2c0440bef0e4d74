package services

import (
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// GuardianService owns guardian records. Guardians are created through
// minor-patient registration; this service lists and edits them.
type GuardianService struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewGuardianService creates a GuardianService.
func NewGuardianService(db *gorm.DB, log zerolog.Logger) *GuardianService {
	return &GuardianService{db: db, log: log.With().Str("service", "guardians").Logger()}
}

// GuardianInput is the payload for editing a guardian.
type GuardianInput struct {
	NationalID      string       `json:"nationalId" binding:"required"`
	FirstName       string       `json:"firstName" binding:"required"`
	LastName        string       `json:"lastName" binding:"required"`
	Phone           string       `json:"phone"`
	RelationshipID  string       `json:"relationshipId" binding:"required"`
	OccupationID    string       `json:"occupationId" binding:"required"`
	MaritalStatusID string       `json:"maritalStatusId" binding:"required"`
	Address         AddressInput `json:"address"`
}

// List returns all guardians ordered by name, with their relations and
// the minors in their care.
func (s *GuardianService) List() ([]models.Guardian, error) {
	var guardians []models.Guardian
	err := s.db.
		Preload("Address").
		Preload("Relationship").Preload("Occupation").Preload("MaritalStatus").
		Preload("Minors").
		Order("first_name asc").
		Find(&guardians).Error
	if err != nil {
		return nil, ErrInternal(err)
	}
	return guardians, nil
}

// Update edits a guardian after validating cedula format and
// uniqueness against every other guardian.
func (s *GuardianService) Update(id string, input GuardianInput) (*models.Guardian, error) {
	if err := validateNationalIDFormat(input.NationalID, "guardian"); err != nil {
		return nil, err
	}

	var duplicate models.Guardian
	err := s.db.Where("national_id = ? AND id <> ?", input.NationalID, id).First(&duplicate).Error
	if err == nil {
		return nil, ErrConflict("national ID " + input.NationalID + " already belongs to guardian " +
			duplicate.FirstName + " " + duplicate.LastName)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInternal(err)
	}

	var existing models.Guardian
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound("guardian not found")
		}
		return nil, ErrInternal(err)
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"national_id":       input.NationalID,
			"first_name":        input.FirstName,
			"last_name":         input.LastName,
			"phone":             input.Phone,
			"relationship_id":   input.RelationshipID,
			"occupation_id":     input.OccupationID,
			"marital_status_id": input.MaritalStatusID,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Address{}).Where("id = ?", existing.AddressID).
			Updates(map[string]interface{}{
				"state":        input.Address.State,
				"city":         input.Address.City,
				"neighborhood": input.Address.Neighborhood,
				"street":       input.Address.Street,
			}).Error
	})
	if txErr != nil {
		s.log.Error().Err(txErr).Str("guardian", id).Msg("guardian update failed")
		return nil, ErrInternal(txErr)
	}
	return &existing, nil
}
