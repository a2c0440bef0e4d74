package handlers

import (
	"github.com/gin-gonic/gin"

	"clinic-app-server/internal/services"
	"clinic-app-server/internal/utils"
)

// CatalogHandler handles generic catalog administration.
type CatalogHandler struct {
	Service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: service}
}

// CatalogEntryRequest is the body for creating or renaming an entry.
type CatalogEntryRequest struct {
	Name string `json:"name" binding:"required"`
}

// GetAllCatalogs handles fetching all reference lists in one payload.
func (h *CatalogHandler) GetAllCatalogs(c *gin.Context) {
	all, err := h.Service.All()
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Catalogs fetched successfully", all)
}

// ListCatalog handles fetching one catalog's entries.
func (h *CatalogHandler) ListCatalog(c *gin.Context) {
	entries, err := h.Service.List(c.Param("catalog"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Catalog fetched successfully", entries)
}

// CreateCatalogEntry handles adding an entry to a catalog.
func (h *CatalogHandler) CreateCatalogEntry(c *gin.Context) {
	var req CatalogEntryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	entry, err := h.Service.Create(c.Param("catalog"), req.Name)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Created(c, "Catalog entry created successfully", entry)
}

// UpdateCatalogEntry handles renaming a catalog entry.
func (h *CatalogHandler) UpdateCatalogEntry(c *gin.Context) {
	var req CatalogEntryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	entry, err := h.Service.Update(c.Param("catalog"), c.Param("id"), req.Name)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Catalog entry updated successfully", entry)
}

// DeleteCatalogEntry handles removing a catalog entry. An entry still
// referenced by other rows returns 409.
func (h *CatalogHandler) DeleteCatalogEntry(c *gin.Context) {
	if err := h.Service.Delete(c.Param("catalog"), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	utils.Success(c, "Catalog entry deleted successfully", nil)
}
