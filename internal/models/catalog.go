package models

// CatalogBase is the shared shape of all reference-data tables: an id
// and a display name. Catalog rows carry no business logic.
type CatalogBase struct {
	BaseModel
	Name string `gorm:"size:120;not null" json:"name"`
}

// Rename updates the display name. It exists so the generic catalog
// service can mutate any catalog type through one interface.
func (c *CatalogBase) Rename(name string) {
	c.Name = name
}

// AppointmentType classifies an appointment (first visit, follow-up...).
type AppointmentType struct {
	CatalogBase
}

// PaymentMethod is how a payment detail was settled (cash, transfer...).
type PaymentMethod struct {
	CatalogBase
}

// Occupation of an adult patient or a guardian.
type Occupation struct {
	CatalogBase
}

// MaritalStatus of an adult patient or a guardian.
type MaritalStatus struct {
	CatalogBase
}

// Relationship of a guardian to a minor patient (mother, uncle...).
type Relationship struct {
	CatalogBase
}

// Specialty a clinician may hold.
type Specialty struct {
	CatalogBase
}

// AdministrationRoute for a pharmacological treatment (oral, IV...).
type AdministrationRoute struct {
	CatalogBase
}

// TherapyType for a therapeutic treatment.
type TherapyType struct {
	CatalogBase
}

// ExplorationTest is a psychological exploration instrument that can be
// tagged on a session.
type ExplorationTest struct {
	CatalogBase
}
