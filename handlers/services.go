package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	catalogRepo "knead/database/repository/catalog"
	"knead/models"
	"knead/utils"
)

// CatalogHandler serves the service catalogue: public reads plus admin CRUD.
type CatalogHandler struct {
	Repo   catalogRepo.ServiceRepository
	Logger *zap.Logger
}

func NewCatalogHandler(repo catalogRepo.ServiceRepository, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{Repo: repo, Logger: logger}
}

// ListServices handles GET /api/services.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.Repo.ListActive(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list services", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "services": services})
}

// GetService handles GET /api/services/:id.
func (h *CatalogHandler) GetService(c *gin.Context) {
	svc, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "service not found")
			return
		}
		h.Logger.Error("failed to fetch service", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "service": svc})
}

// AdminListServices handles GET /api/admin/services, including inactive entries.
func (h *CatalogHandler) AdminListServices(c *gin.Context) {
	services, err := h.Repo.ListAll(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to list services", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "services": services})
}

// AdminCreateService handles POST /api/admin/services.
func (h *CatalogHandler) AdminCreateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid service payload: "+err.Error())
		return
	}
	if svc.Title == "" || len(svc.Durations) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "title and durations are required")
		return
	}
	svc.ID = uuid.New().String()

	if err := h.Repo.Create(c.Request.Context(), &svc); err != nil {
		h.Logger.Error("failed to create service", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to create service")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "service": svc})
}

// AdminUpdateService handles PUT /api/admin/services/:id.
func (h *CatalogHandler) AdminUpdateService(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid service payload: "+err.Error())
		return
	}
	svc.ID = c.Param("id")

	if err := h.Repo.Update(c.Request.Context(), &svc); err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "service not found")
			return
		}
		h.Logger.Error("failed to update service", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to update service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "service": svc})
}

// AdminDeleteService handles DELETE /api/admin/services/:id.
func (h *CatalogHandler) AdminDeleteService(c *gin.Context) {
	if err := h.Repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, catalogRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "service not found")
			return
		}
		h.Logger.Error("failed to delete service", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete service")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "service deleted"})
}
