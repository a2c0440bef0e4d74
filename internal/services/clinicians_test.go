package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

func newClinicianService(db *gorm.DB) *ClinicianService {
	return NewClinicianService(db, testLogger())
}

func clinicianInput() ClinicianInput {
	return ClinicianInput{
		LicenseCode: "MINSA-042",
		FirstName:   "Julia", LastName: "Vargas",
		Email:   "julia@clinic.test",
		Address: AddressInput{State: "Managua", City: "Managua", Neighborhood: "Central", Street: "Clinic St"},
	}
}

func TestCreateClinicianWithSpecialties(t *testing.T) {
	db := newTestDB(t)
	seedFixtures(t, db)
	svc := newClinicianService(db)

	specialty := models.Specialty{CatalogBase: models.CatalogBase{Name: "Child psychology"}}
	require.NoError(t, db.Create(&specialty).Error)

	input := clinicianInput()
	input.SpecialtyIDs = []string{specialty.ID}
	clinician, err := svc.Create(input)
	require.NoError(t, err)
	assert.Equal(t, models.ActivityActive, clinician.Status)

	var links []models.ClinicianSpecialty
	require.NoError(t, db.Where("clinician_id = ?", clinician.ID).Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, specialty.ID, links[0].SpecialtyID)
}

func TestUpdateClinicianRelinksSpecialties(t *testing.T) {
	db := newTestDB(t)
	seedFixtures(t, db)
	svc := newClinicianService(db)

	first := models.Specialty{CatalogBase: models.CatalogBase{Name: "Child psychology"}}
	second := models.Specialty{CatalogBase: models.CatalogBase{Name: "Family therapy"}}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	input := clinicianInput()
	input.SpecialtyIDs = []string{first.ID}
	clinician, err := svc.Create(input)
	require.NoError(t, err)

	input.SpecialtyIDs = []string{second.ID}
	require.NoError(t, svc.Update(clinician.ID, input))

	var links []models.ClinicianSpecialty
	require.NoError(t, db.Where("clinician_id = ?", clinician.ID).Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, second.ID, links[0].SpecialtyID)
}

func TestUpdateClinicianKeepsStatusWhenOmitted(t *testing.T) {
	db := newTestDB(t)
	f := seedFixtures(t, db)
	svc := newClinicianService(db)

	require.NoError(t, db.Model(&f.Clinician).Update("status", models.ActivityInactive).Error)

	input := clinicianInput()
	input.LicenseCode = f.Clinician.LicenseCode
	require.NoError(t, svc.Update(f.Clinician.ID, input))

	var reloaded models.Clinician
	require.NoError(t, db.First(&reloaded, "id = ?", f.Clinician.ID).Error)
	assert.Equal(t, models.ActivityInactive, reloaded.Status)
}

func TestUpdateClinicianNotFound(t *testing.T) {
	db := newTestDB(t)
	seedFixtures(t, db)
	svc := newClinicianService(db)

	err := svc.Update("missing", clinicianInput())
	require.Error(t, err)
	assert.Equal(t, KindNotFound, kindOf(t, err))
}
