package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/services"
	"clinic-app-server/internal/utils"
)

// GuardianHandler handles guardian requests.
type GuardianHandler struct {
	Service *services.GuardianService
}

// NewGuardianHandler creates a new GuardianHandler.
func NewGuardianHandler(service *services.GuardianService) *GuardianHandler {
	return &GuardianHandler{Service: service}
}

// ListGuardians handles fetching all guardians with their minors.
func (h *GuardianHandler) ListGuardians(c *gin.Context) {
	guardians, err := h.Service.List()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Guardians fetched successfully", guardians)
}

// UpdateGuardian handles editing a guardian record.
func (h *GuardianHandler) UpdateGuardian(c *gin.Context) {
	var req services.GuardianInput
	if !utils.BindAndValidate(c, &req) {
		return
	}

	guardian, err := h.Service.Update(c.Param("id"), req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Guardian updated successfully", guardian)
}
