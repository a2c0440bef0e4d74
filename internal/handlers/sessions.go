package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/services"
	"clinic-app-server/internal/utils"
)

// SessionHandler handles clinical session requests.
type SessionHandler struct {
	Service *services.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{Service: service}
}

// CloseSession handles recording a session note and closing its
// appointment.
func (h *SessionHandler) CloseSession(c *gin.Context) {
	var req services.CloseSessionInput
	if !utils.BindAndValidate(c, &req) {
		return
	}

	closed, err := h.Service.Close(req)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Created(c, "Session recorded successfully", closed)
}

// FindLatestSession handles looking up the most recent session for a
// patient/clinician pair.
func (h *SessionHandler) FindLatestSession(c *gin.Context) {
	patientID := c.Query("patientId")
	clinicianID := c.Query("clinicianId")
	if patientID == "" || clinicianID == "" {
		utils.BadRequest(c, "patientId and clinicianId are required")
		return
	}

	session, err := h.Service.FindLatest(patientID, clinicianID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Session fetched successfully", session)
}
