package handlers

import (
	"net/http"

	"model-config-service/internal/adapters/primary/http/dto"
	"model-config-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CountModels(c *gin.Context) {
	snap, err := h.configSvc.Current()
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToModelCountsResponse(snap.Registry.Counts()))
}

func (h *Handler) ListModels(c *gin.Context) {
	category := domain.Category(c.Param("category"))

	entities, err := h.configSvc.ListModels(category)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListModelsResponse(category, entities))
}

func (h *Handler) GetModel(c *gin.Context) {
	entity, err := h.configSvc.GetModel(domain.Category(c.Param("category")), c.Param("name"))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity)
}
