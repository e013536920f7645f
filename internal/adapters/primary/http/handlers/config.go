package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"model-config-service/internal/adapters/primary/http/dto"
	"model-config-service/internal/adapters/primary/http/middleware"
	"model-config-service/internal/core/domain"
	ports "model-config-service/internal/core/ports/output"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) GetConfig(c *gin.Context) {
	snap, err := h.configSvc.Current()
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConfigResponse(snap.Revision, snap.Document, snap.Issues))
}

// ApplyConfig validates the request body and activates it.
func (h *Handler) ApplyConfig(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	origin := "api"
	if requestID := c.GetString(middleware.ContextRequestID); requestID != "" {
		origin = "api:" + requestID
	}

	snap, issues, err := h.configSvc.Load(c.Request.Context(), data, origin)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentRejected) {
			rejectDocument(c, issues)
			return
		}
		log.WithError(err).Error("apply configuration failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConfigResponse(snap.Revision, snap.Document, issues))
}

// ValidateConfig is a dry run of ApplyConfig.
func (h *Handler) ValidateConfig(c *gin.Context) {
	data, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
		return
	}

	doc, issues, err := h.configSvc.Validate(data)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToValidateResponse(doc, issues))
}

func (h *Handler) ListRevisions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	revisions, total, err := h.configSvc.ListRevisions(c.Request.Context(), ports.RevisionListFilter{
		Origin: c.Query("origin"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		log.WithError(err).Error("list revisions failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.RevisionResponse, 0, len(revisions))
	for _, r := range revisions {
		items = append(items, dto.ToRevisionResponse(r))
	}

	c.JSON(http.StatusOK, dto.ListRevisionsResponse{
		Items:      items,
		Total:      total,
		PageSize:   limit,
		NextOffset: offset + len(items),
	})
}

func (h *Handler) GetRevision(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid revision id"})
		return
	}

	revision, err := h.configSvc.GetRevision(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRevisionResponse(revision))
}

func (h *Handler) RestoreRevision(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid revision id"})
		return
	}

	snap, issues, err := h.configSvc.Restore(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrDocumentRejected) {
			rejectDocument(c, issues)
			return
		}
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConfigResponse(snap.Revision, snap.Document, issues))
}

// Healthz reports ready once a configuration is active.
func (h *Handler) Healthz(c *gin.Context) {
	snap, err := h.configSvc.Current()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "revision": snap.Revision.ID})
}
