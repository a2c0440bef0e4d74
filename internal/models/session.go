package models

import (
	"time"
)

// CaseFile is a patient's one persistent clinical record container,
// parent of all their sessions. Created lazily the first time a
// session is recorded for the patient.
type CaseFile struct {
	BaseModel
	PatientID  string    `gorm:"size:36;uniqueIndex" json:"patientId"`
	FileNumber string    `gorm:"size:50" json:"fileNumber"`
	IntakeDate time.Time `gorm:"type:date" json:"intakeDate"`
}

// Session is one completed-consultation clinical note. Sessions are
// append-only: never updated or deleted. Start and end times are
// time-of-day values stored as HH:MM:SS strings.
type Session struct {
	BaseModel
	CaseFileID     string `gorm:"size:36;index" json:"caseFileId"`
	PatientID      string `gorm:"size:36;index" json:"patientId"`
	ClinicianID    string `gorm:"size:36;index" json:"clinicianId"`
	StartTime      string `gorm:"size:8" json:"startTime"`
	EndTime        string `gorm:"size:8" json:"endTime"`
	Observations   string `gorm:"type:text" json:"observations"`
	Diagnosis      string `gorm:"type:text" json:"diagnosis"`
	Criteria       string `gorm:"size:255" json:"criteria"`
	EvolutionNotes string `gorm:"type:text" json:"evolutionNotes"`

	// Relations
	CaseFile     CaseFile          `gorm:"foreignKey:CaseFileID" json:"caseFile,omitempty"`
	Patient      Patient           `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Clinician    Clinician         `gorm:"foreignKey:ClinicianID" json:"clinician,omitempty"`
	Treatments   []Treatment       `gorm:"foreignKey:SessionID" json:"treatments,omitempty"`
	Explorations []ExplorationTest `gorm:"many2many:session_explorations;" json:"explorations,omitempty"`
}

// Treatment is the parent row of a prescribed treatment. Exactly one
// typed child row accompanies it.
type Treatment struct {
	BaseModel
	SessionID string    `gorm:"size:36;index" json:"sessionId"`
	StartDate time.Time `gorm:"type:date" json:"startDate"`
	Frequency string    `gorm:"size:100" json:"frequency"`

	Pharmacological *PharmacologicalTreatment `gorm:"foreignKey:TreatmentID" json:"pharmacological,omitempty"`
	Therapeutic     *TherapeuticTreatment     `gorm:"foreignKey:TreatmentID" json:"therapeutic,omitempty"`
}

// PharmacologicalTreatment is a medication prescription child row.
type PharmacologicalTreatment struct {
	BaseModel
	TreatmentID           string `gorm:"size:36;uniqueIndex" json:"treatmentId"`
	AdministrationRouteID string `gorm:"size:36" json:"administrationRouteId"`
	Medication            string `gorm:"size:150" json:"medication"`
	Dose                  string `gorm:"size:100" json:"dose"`

	AdministrationRoute AdministrationRoute `gorm:"foreignKey:AdministrationRouteID" json:"administrationRoute,omitempty"`
}

// TherapeuticTreatment is a therapy prescription child row.
type TherapeuticTreatment struct {
	BaseModel
	TreatmentID   string `gorm:"size:36;uniqueIndex" json:"treatmentId"`
	TherapyTypeID string `gorm:"size:36" json:"therapyTypeId"`
	Objective     string `gorm:"size:255" json:"objective"`

	TherapyType TherapyType `gorm:"foreignKey:TherapyTypeID" json:"therapyType,omitempty"`
}

// SessionExploration links a session to an exploration test.
type SessionExploration struct {
	SessionID         string `gorm:"primaryKey;size:36" json:"sessionId"`
	ExplorationTestID string `gorm:"primaryKey;size:36" json:"explorationTestId"`
}
