package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/services"
	"clinic-app-server/internal/utils"
)

// DashboardHandler handles the aggregate read endpoints.
type DashboardHandler struct {
	Service *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{Service: service}
}

// GetStats handles fetching the KPI figures.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.Service.Stats()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Dashboard stats fetched successfully", stats)
}

// GetHistory handles fetching the combined session/appointment
// history.
func (h *DashboardHandler) GetHistory(c *gin.Context) {
	history, err := h.Service.History()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "History fetched successfully", history)
}

// GetCharts handles fetching the chart aggregates for an optional
// date range (?from=YYYY-MM-DD&to=YYYY-MM-DD).
func (h *DashboardHandler) GetCharts(c *gin.Context) {
	charts, err := h.Service.Charts(c.Query("from"), c.Query("to"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Chart data fetched successfully", charts)
}
