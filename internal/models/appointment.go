package models

import (
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus int

const (
	StatusScheduled AppointmentStatus = 1
	StatusCompleted AppointmentStatus = 2
	StatusCancelled AppointmentStatus = 3
)

// Appointment represents one scheduled clinic visit. Calendar date and
// time-of-day are stored as independently typed fields (date-only
// column plus hour/minute smallints) so slot comparison is a direct
// indexed equality. SlotKey is the store-side double-booking
// constraint: "<clinicianID>|<YYYY-MM-DD>|<HH:MM>" while the
// appointment occupies its slot, NULL once cancelled. Unique indexes
// ignore NULL, so cancelled rows never block a rebooking.
type Appointment struct {
	BaseModel
	Date              time.Time         `gorm:"type:date;index:idx_clinician_slot" json:"date"`
	Hour              int               `gorm:"type:smallint;index:idx_clinician_slot" json:"hour"`
	Minute            int               `gorm:"type:smallint;index:idx_clinician_slot" json:"minute"`
	Reason            string            `gorm:"size:255" json:"reason"`
	Status            AppointmentStatus `gorm:"default:1;index" json:"status"`
	SlotKey           *string           `gorm:"size:80;uniqueIndex" json:"-"`
	AppointmentTypeID string            `gorm:"size:36" json:"appointmentTypeId"`
	PatientID         string            `gorm:"size:36;index" json:"patientId"`
	ClinicianID       string            `gorm:"size:36;index:idx_clinician_slot" json:"clinicianId"`
	AddressID         string            `gorm:"size:36" json:"addressId"`

	// Relations
	AppointmentType AppointmentType `gorm:"foreignKey:AppointmentTypeID" json:"appointmentType,omitempty"`
	Patient         Patient         `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Clinician       Clinician       `gorm:"foreignKey:ClinicianID" json:"clinician,omitempty"`
	Address         Address         `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Invoice         *Invoice        `gorm:"foreignKey:AppointmentID" json:"invoice,omitempty"`
}
