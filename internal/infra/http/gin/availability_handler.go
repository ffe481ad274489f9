package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	availsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/availability"
)

type AvailabilityHandler struct {
	Service *availsvc.Service
	Logger  *slog.Logger
}

type bookedRange struct {
	CheckIn  string `json:"checkin"`
	CheckOut string `json:"checkout"`
}

// BookedRanges returns the confirmed, not-yet-elapsed ranges for a room so
// the calendar can block them out. The client view is advisory; submission
// re-checks server side.
func (h AvailabilityHandler) BookedRanges(c *gin.Context) {
	roomID := c.Query("room_id")
	ranges, err := h.Service.BookedRanges(c.Request.Context(), roomID)
	if err != nil {
		if errors.Is(err, availsvc.ErrRoomIDRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "room_id is required"})
			return
		}
		if h.Logger != nil {
			h.Logger.Error("availability lookup failed", "room_id", roomID, "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]bookedRange, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, bookedRange{CheckIn: r.CheckInDay(), CheckOut: r.CheckOutDay()})
	}
	c.JSON(http.StatusOK, out)
}

var _ AvailabilityHTTP = (*AvailabilityHandler)(nil)
