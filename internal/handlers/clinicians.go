package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/services"
	"clinic-app-server/internal/utils"
)

// ClinicianHandler handles clinician requests.
type ClinicianHandler struct {
	Service *services.ClinicianService
}

// NewClinicianHandler creates a new ClinicianHandler.
func NewClinicianHandler(service *services.ClinicianService) *ClinicianHandler {
	return &ClinicianHandler{Service: service}
}

// ListClinicians handles fetching all clinicians.
func (h *ClinicianHandler) ListClinicians(c *gin.Context) {
	clinicians, err := h.Service.List()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Clinicians fetched successfully", clinicians)
}

// CreateClinician handles registering a clinician.
func (h *ClinicianHandler) CreateClinician(c *gin.Context) {
	var req services.ClinicianInput
	if !utils.BindAndValidate(c, &req) {
		return
	}

	clinician, err := h.Service.Create(req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Created(c, "Clinician created successfully", clinician)
}

// UpdateClinician handles editing a clinician and their specialties.
func (h *ClinicianHandler) UpdateClinician(c *gin.Context) {
	var req services.ClinicianInput
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.Service.Update(c.Param("id"), req); err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Clinician updated successfully", nil)
}
