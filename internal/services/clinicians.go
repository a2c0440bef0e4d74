package services

import (
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// ClinicianService owns clinician records, their address snapshots and
// specialty links.
type ClinicianService struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewClinicianService creates a ClinicianService.
func NewClinicianService(db *gorm.DB, log zerolog.Logger) *ClinicianService {
	return &ClinicianService{db: db, log: log.With().Str("service", "clinicians").Logger()}
}

// ClinicianInput is the payload for creating or editing a clinician.
type ClinicianInput struct {
	LicenseCode  string                `json:"licenseCode" binding:"required"`
	FirstName    string                `json:"firstName" binding:"required"`
	LastName     string                `json:"lastName" binding:"required"`
	Phone        string                `json:"phone"`
	Email        string                `json:"email" binding:"omitempty,email"`
	Status       models.ActivityStatus `json:"status"`
	Address      AddressInput          `json:"address"`
	SpecialtyIDs []string              `json:"specialtyIds"`
}

// List returns all clinicians ordered by name, with address and
// specialties preloaded.
func (s *ClinicianService) List() ([]models.Clinician, error) {
	var clinicians []models.Clinician
	err := s.db.
		Preload("Address").
		Preload("Specialties").
		Order("first_name asc").
		Find(&clinicians).Error
	if err != nil {
		return nil, ErrInternal(err)
	}
	return clinicians, nil
}

// Create registers a clinician with their address and specialty links
// in one transaction.
func (s *ClinicianService) Create(input ClinicianInput) (*models.Clinician, error) {
	status := input.Status
	if status == 0 {
		status = models.ActivityActive
	}

	var clinician models.Clinician
	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		address := input.Address.toModel()
		if err := tx.Create(&address).Error; err != nil {
			return err
		}

		clinician = models.Clinician{
			LicenseCode: input.LicenseCode,
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			Phone:       input.Phone,
			Email:       input.Email,
			AddressID:   address.ID,
			Status:      status,
		}
		if err := tx.Create(&clinician).Error; err != nil {
			return err
		}

		for _, specialtyID := range input.SpecialtyIDs {
			link := models.ClinicianSpecialty{ClinicianID: clinician.ID, SpecialtyID: specialtyID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		s.log.Error().Err(txErr).Msg("clinician creation failed")
		return nil, ErrInternal(txErr)
	}
	return &clinician, nil
}

// Update edits a clinician, their address, and re-links specialties by
// delete-and-recreate.
func (s *ClinicianService) Update(id string, input ClinicianInput) error {
	var existing models.Clinician
	if err := s.db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound("clinician not found")
		}
		return ErrInternal(err)
	}

	status := input.Status
	if status == 0 {
		status = existing.Status
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&existing).Updates(map[string]interface{}{
			"license_code": input.LicenseCode,
			"first_name":   input.FirstName,
			"last_name":    input.LastName,
			"phone":        input.Phone,
			"email":        input.Email,
			"status":       status,
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

		if err := tx.Where("clinician_id = ?", id).Delete(&models.ClinicianSpecialty{}).Error; err != nil {
			return err
		}
		for _, specialtyID := range input.SpecialtyIDs {
			link := models.ClinicianSpecialty{ClinicianID: id, SpecialtyID: specialtyID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		s.log.Error().Err(txErr).Str("clinician", id).Msg("clinician update failed")
		return ErrInternal(txErr)
	}
	return nil
}
