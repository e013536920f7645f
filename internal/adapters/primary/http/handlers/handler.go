package handlers

import (
	"model-config-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	configSvc     *services.ConfigService
	defaultLocale string
}

func New(configSvc *services.ConfigService, defaultLocale string) *Handler {
	return &Handler{
		configSvc:     configSvc,
		defaultLocale: defaultLocale,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Models
	r.GET("/models", h.CountModels)
	r.GET("/models/:category", h.ListModels)
	r.GET("/models/:category/:name", h.GetModel)

	// Strings; /strings itself is redirected to /strings/ by gin
	r.GET("/strings/*key", h.Translate)

	// Configuration
	r.GET("/config", h.GetConfig)
	r.PUT("/config", h.ApplyConfig)
	r.POST("/config/validate", h.ValidateConfig)

	// Revisions
	r.GET("/config/revisions", h.ListRevisions)
	r.GET("/config/revisions/:id", h.GetRevision)
	r.POST("/config/revisions/:id/restore", h.RestoreRevision)
}
