package models

import (
	"time"
)

// ActivityStatus gates whether a patient or clinician may participate
// in new bookings.
type ActivityStatus int

const (
	ActivityActive   ActivityStatus = 1
	ActivityInactive ActivityStatus = 2
)

// Patient represents a person receiving care. Exactly one of
// AdultProfile or MinorProfile is present, depending on age.
type Patient struct {
	BaseModel
	FirstName   string         `gorm:"size:100;not null" json:"firstName"`
	LastName    string         `gorm:"size:100;not null" json:"lastName"`
	BirthDate   time.Time      `json:"birthDate"`
	Gender      string         `gorm:"size:20" json:"gender"`
	Nationality string         `gorm:"size:100" json:"nationality"`
	AddressID   string         `gorm:"size:36" json:"addressId"`
	Status      ActivityStatus `gorm:"default:1" json:"status"`

	// Relations
	Address      Address       `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	AdultProfile *AdultProfile `gorm:"foreignKey:PatientID" json:"adultProfile,omitempty"`
	MinorProfile *MinorProfile `gorm:"foreignKey:PatientID" json:"minorProfile,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
	Sessions     []Session     `gorm:"foreignKey:PatientID" json:"-"`
}

// FullName is used in user-facing guard messages.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// AdultProfile holds the fields only adult patients have.
type AdultProfile struct {
	BaseModel
	PatientID       string `gorm:"size:36;uniqueIndex" json:"patientId"`
	NationalID      string `gorm:"size:20" json:"nationalId"`
	Phone           string `gorm:"size:30" json:"phone"`
	OccupationID    string `gorm:"size:36" json:"occupationId"`
	MaritalStatusID string `gorm:"size:36" json:"maritalStatusId"`

	Occupation    Occupation    `gorm:"foreignKey:OccupationID" json:"occupation,omitempty"`
	MaritalStatus MaritalStatus `gorm:"foreignKey:MaritalStatusID" json:"maritalStatus,omitempty"`
}

// MinorProfile holds the fields only minor patients have, including the
// link to their guardian.
type MinorProfile struct {
	BaseModel
	PatientID        string `gorm:"size:36;uniqueIndex" json:"patientId"`
	BirthCertificate string `gorm:"size:50" json:"birthCertificate"`
	SchoolGrade      string `gorm:"size:50" json:"schoolGrade"`
	GuardianID       string `gorm:"size:36" json:"guardianId"`

	Guardian Guardian `gorm:"foreignKey:GuardianID" json:"guardian,omitempty"`
}
