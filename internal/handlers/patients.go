package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/services"
	"clinic-app-server/internal/utils"
)

// PatientHandler handles patient record requests.
type PatientHandler struct {
	Service *services.PatientService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{Service: service}
}

// ListPatients handles fetching all patients.
func (h *PatientHandler) ListPatients(c *gin.Context) {
	patients, err := h.Service.List()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Patients fetched successfully", patients)
}

// CreatePatient handles registering a patient with their adult or
// minor profile.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req services.PatientInput
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, err := h.Service.Create(req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Created(c, "Patient created successfully", patient)
}

// UpdatePatient handles editing a patient record.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var req services.PatientInput
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, err := h.Service.Update(c.Param("id"), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Patient updated successfully", patient)
}

// GetPatientRecord handles fetching a patient's full record view.
func (h *PatientHandler) GetPatientRecord(c *gin.Context) {
	record, err := h.Service.Record(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Patient record fetched successfully", record)
}

// GetPatientHistory handles fetching a patient's session history with
// treatments.
func (h *PatientHandler) GetPatientHistory(c *gin.Context) {
	history, err := h.Service.History(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Patient history fetched successfully", history)
}
