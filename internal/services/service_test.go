package services

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"clinic-app-server/internal/models"
)

// newTestDB opens a fresh in-memory database with foreign keys
// enforced, migrated with the full schema. The pool is pinned to one
// connection so every query sees the same in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrateAll(db))
	return db
}

// fixtures are the reference rows most scenarios need.
type fixtures struct {
	Address         models.Address
	AppointmentType models.AppointmentType
	PaymentMethod   models.PaymentMethod
	Occupation      models.Occupation
	MaritalStatus   models.MaritalStatus
	Relationship    models.Relationship
	Route           models.AdministrationRoute
	TherapyType     models.TherapyType
	Exploration     models.ExplorationTest
	Patient         models.Patient
	Clinician       models.Clinician
}

func seedFixtures(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()
	var f fixtures

	f.Address = models.Address{State: "Managua", City: "Managua", Neighborhood: "Central", Street: "Clinic St"}
	require.NoError(t, db.Create(&f.Address).Error)

	f.AppointmentType = models.AppointmentType{CatalogBase: models.CatalogBase{Name: "First visit"}}
	f.PaymentMethod = models.PaymentMethod{CatalogBase: models.CatalogBase{Name: "Cash"}}
	f.Occupation = models.Occupation{CatalogBase: models.CatalogBase{Name: "Accountant"}}
	f.MaritalStatus = models.MaritalStatus{CatalogBase: models.CatalogBase{Name: "Single"}}
	f.Relationship = models.Relationship{CatalogBase: models.CatalogBase{Name: "Mother"}}
	f.Route = models.AdministrationRoute{CatalogBase: models.CatalogBase{Name: "Oral"}}
	f.TherapyType = models.TherapyType{CatalogBase: models.CatalogBase{Name: "Cognitive"}}
	f.Exploration = models.ExplorationTest{CatalogBase: models.CatalogBase{Name: "Attention test"}}
	for _, row := range []interface{}{
		&f.AppointmentType, &f.PaymentMethod, &f.Occupation, &f.MaritalStatus,
		&f.Relationship, &f.Route, &f.TherapyType, &f.Exploration,
	} {
		require.NoError(t, db.Create(row).Error)
	}

	f.Patient = models.Patient{
		FirstName: "Ana", LastName: "Lopez",
		BirthDate: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
		Gender:    "Female", Nationality: "Nicaraguan",
		AddressID: f.Address.ID, Status: models.ActivityActive,
	}
	require.NoError(t, db.Create(&f.Patient).Error)

	f.Clinician = models.Clinician{
		LicenseCode: "MINSA-001", FirstName: "Carlos", LastName: "Mendez",
		Email: "carlos@clinic.test", AddressID: f.Address.ID, Status: models.ActivityActive,
	}
	require.NoError(t, db.Create(&f.Clinician).Error)

	return f
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// kindOf extracts the domain error kind, failing the test for
// non-domain errors.
func kindOf(t *testing.T, err error) ErrorKind {
	t.Helper()
	var domainErr *Error
	require.True(t, errors.As(err, &domainErr), "expected a domain error, got %v", err)
	return domainErr.Kind
}
