package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/services"
	"clinic-app-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Service *services.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{Service: service}
}

// ListAppointments handles fetching all appointments with their
// per-patient session numbering.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	appointments, err := h.Service.List()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetBookingCatalogs handles fetching the reference data the booking
// form needs.
func (h *AppointmentHandler) GetBookingCatalogs(c *gin.Context) {
	catalogs, err := h.Service.Catalogs()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Booking catalogs fetched successfully", catalogs)
}

// CreateAppointment handles booking a new appointment. A slot
// collision returns 409; a malformed time or inactive actor 400.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req services.AppointmentInput
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appointment, invoice, err := h.Service.Create(req)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.Created(c, "Appointment created successfully", gin.H{
		"appointment": appointment,
		"invoice":     invoice,
	})
}

// UpdateAppointment handles editing a scheduled appointment and its
// billing rows.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	var req services.AppointmentInput
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := h.Service.Update(c.Param("id"), req); err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Appointment updated successfully", nil)
}

// CancelAppointment handles cancelling an appointment. Never fails on
// business rules: cancelling is always legal.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	appointment, err := h.Service.Cancel(c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Appointment cancelled successfully", appointment)
}
