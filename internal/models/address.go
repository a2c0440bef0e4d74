package models

// Address is an owned snapshot row. Every owner (patient, guardian,
// clinician, appointment) gets its own copy rather than a shared
// reference, so editing one record never rewrites another's history.
type Address struct {
	BaseModel
	Country      string `gorm:"size:100;default:'Nicaragua'" json:"country"`
	State        string `gorm:"size:100" json:"state"`
	City         string `gorm:"size:100" json:"city"`
	Neighborhood string `gorm:"size:150" json:"neighborhood"`
	Street       string `gorm:"size:255" json:"street"`
}
