package models

// Guardian is the responsible adult for one or more minor patients.
type Guardian struct {
	BaseModel
	NationalID      string `gorm:"size:20;index" json:"nationalId"`
	FirstName       string `gorm:"size:100;not null" json:"firstName"`
	LastName        string `gorm:"size:100;not null" json:"lastName"`
	Phone           string `gorm:"size:30" json:"phone"`
	RelationshipID  string `gorm:"size:36" json:"relationshipId"`
	OccupationID    string `gorm:"size:36" json:"occupationId"`
	MaritalStatusID string `gorm:"size:36" json:"maritalStatusId"`
	AddressID       string `gorm:"size:36" json:"addressId"`

	// Relations
	Relationship  Relationship   `gorm:"foreignKey:RelationshipID" json:"relationship,omitempty"`
	Occupation    Occupation     `gorm:"foreignKey:OccupationID" json:"occupation,omitempty"`
	MaritalStatus MaritalStatus  `gorm:"foreignKey:MaritalStatusID" json:"maritalStatus,omitempty"`
	Address       Address        `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Minors        []MinorProfile `gorm:"foreignKey:GuardianID" json:"minors,omitempty"`
}
