package models

// Clinician is a treating professional.
type Clinician struct {
	BaseModel
	LicenseCode string         `gorm:"size:50" json:"licenseCode"`
	FirstName   string         `gorm:"size:100;not null" json:"firstName"`
	LastName    string         `gorm:"size:100;not null" json:"lastName"`
	Phone       string         `gorm:"size:30" json:"phone"`
	Email       string         `gorm:"size:255" json:"email"`
	AddressID   string         `gorm:"size:36" json:"addressId"`
	Status      ActivityStatus `gorm:"default:1" json:"status"`

	// Relations
	Address     Address     `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Specialties []Specialty `gorm:"many2many:clinician_specialties;" json:"specialties,omitempty"`
}

// FullName is used in user-facing guard messages.
func (c *Clinician) FullName() string {
	return c.FirstName + " " + c.LastName
}

// ClinicianSpecialty is the join row between clinicians and
// specialties. Declared explicitly so specialty re-links can be done
// with delete-and-recreate inside a transaction.
type ClinicianSpecialty struct {
	ClinicianID string `gorm:"primaryKey;size:36" json:"clinicianId"`
	SpecialtyID string `gorm:"primaryKey;size:36" json:"specialtyId"`
}
