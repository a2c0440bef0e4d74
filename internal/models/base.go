package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// BaseModel contains common columns for all tables
type BaseModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate will set a UUID rather than numeric ID
func (base *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if base.ID == "" {
		base.ID = uuid.New().String()
	}
	return nil
}

// Database connection instance
var DB *gorm.DB

// InitDB initializes database connection
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	var err error

	// TranslateError is required so the booking path can recognize a
	// duplicate slot key as a scheduling conflict.
	DB, err = gorm.Open(mysql.Open(config.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := AutoMigrateAll(DB); err != nil {
		return nil, err
	}

	return DB, nil
}

// AutoMigrateAll migrates every model. Shared by InitDB and the test
// database setup.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&Address{},
		&Occupation{},
		&MaritalStatus{},
		&Relationship{},
		&Specialty{},
		&AppointmentType{},
		&PaymentMethod{},
		&AdministrationRoute{},
		&TherapyType{},
		&ExplorationTest{},
		&Guardian{},
		&Patient{},
		&AdultProfile{},
		&MinorProfile{},
		&Clinician{},
		&ClinicianSpecialty{},
		&Appointment{},
		&Invoice{},
		&PaymentDetail{},
		&CaseFile{},
		&Session{},
		&Treatment{},
		&PharmacologicalTreatment{},
		&TherapeuticTreatment{},
		&SessionExploration{},
	)
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}
