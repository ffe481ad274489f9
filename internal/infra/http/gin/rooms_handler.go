package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	roomssvc "github.com/thienvyma/tagiangecolodge/internal/app/services/rooms"
	"github.com/thienvyma/tagiangecolodge/internal/domain/rooms"
)

type RoomsHandler struct {
	Service *roomssvc.Service
	Logger  *slog.Logger
}

type roomRequest struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	NightlyRate int64    `json:"nightly_rate"`
	Capacity    int      `json:"capacity"`
	SizeSqm     int      `json:"size_sqm"`
	Image       string   `json:"image"`
	Amenities   []string `json:"amenities"`
	Description string   `json:"description"`
	Available   *bool    `json:"available"`
}

type roomResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type,omitempty"`
	NightlyRate int64    `json:"nightly_rate"`
	Capacity    int      `json:"capacity"`
	SizeSqm     int      `json:"size_sqm,omitempty"`
	Image       string   `json:"image,omitempty"`
	Amenities   []string `json:"amenities,omitempty"`
	Description string   `json:"description,omitempty"`
	Available   bool     `json:"available"`
	Version     int64    `json:"version"`
}

func newRoomResponse(r *rooms.Room) roomResponse {
	return roomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Type,
		NightlyRate: r.NightlyRate,
		Capacity:    r.Capacity,
		SizeSqm:     r.SizeSqm,
		Image:       r.Image,
		Amenities:   r.Amenities,
		Description: r.Description,
		Available:   r.Available,
		Version:     r.Version,
	}
}

func (req roomRequest) toAggregate(id string, version int64) *rooms.Room {
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return &rooms.Room{
		ID:          id,
		Name:        req.Name,
		Type:        req.Type,
		NightlyRate: req.NightlyRate,
		Capacity:    req.Capacity,
		SizeSqm:     req.SizeSqm,
		Image:       req.Image,
		Amenities:   req.Amenities,
		Description: req.Description,
		Available:   available,
		Version:     version,
	}
}

func (h RoomsHandler) List(c *gin.Context) {
	list, err := h.Service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := make([]roomResponse, 0, len(list))
	for _, r := range list {
		out = append(out, newRoomResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"rooms": out})
}

func (h RoomsHandler) Get(c *gin.Context) {
	room, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoomResponse(room))
}

func (h RoomsHandler) Create(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	room, err := h.Service.Create(c.Request.Context(), req.toAggregate("", 0))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, newRoomResponse(room))
}

func (h RoomsHandler) Update(c *gin.Context) {
	var req struct {
		roomRequest
		Version int64 `json:"version"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	room := req.roomRequest.toAggregate(c.Param("id"), req.Version)
	if err := h.Service.Update(c.Request.Context(), room); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newRoomResponse(room))
}

func (h RoomsHandler) Delete(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h RoomsHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, rooms.ErrNameRequired), errors.Is(err, rooms.ErrInvalidRate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, rooms.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("room operation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ RoomsHTTP = (*RoomsHandler)(nil)
