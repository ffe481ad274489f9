package ginserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	contentsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/content"
	"github.com/thienvyma/tagiangecolodge/internal/domain/content"
)

type ContentHandler struct {
	Service *contentsvc.Service
	Logger  *slog.Logger
}

type sectionResponse struct {
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	Version   int64           `json:"version"`
	UpdatedAt string          `json:"updated_at,omitempty"`
}

func newSectionResponse(s *content.Section) sectionResponse {
	resp := sectionResponse{
		Name:    string(s.Name),
		Payload: s.Payload,
		Version: s.Version,
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

// All returns every stored section in one response so the site renders with
// a single fetch.
func (h ContentHandler) All(c *gin.Context) {
	sections, err := h.Service.All(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := make(map[string]sectionResponse, len(sections))
	for _, s := range sections {
		out[string(s.Name)] = newSectionResponse(s)
	}
	c.JSON(http.StatusOK, gin.H{"sections": out})
}

type updateSectionRequest struct {
	Payload json.RawMessage `json:"payload"`
	Version int64           `json:"version"`
}

func (h ContentHandler) Update(c *gin.Context) {
	var req updateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	section, err := h.Service.Update(c.Request.Context(), content.SectionName(c.Param("section")), req.Payload, req.Version)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSectionResponse(section))
}

func (h ContentHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, content.ErrUnknownSection), errors.Is(err, content.ErrEmptyPayload),
		errors.Is(err, content.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, content.ErrSectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, content.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("content operation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ ContentHTTP = (*ContentHandler)(nil)
