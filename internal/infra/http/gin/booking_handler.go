package ginserver

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	bookingsvc "github.com/thienvyma/tagiangecolodge/internal/app/services/booking"
	domainbooking "github.com/thienvyma/tagiangecolodge/internal/domain/booking"
	"github.com/thienvyma/tagiangecolodge/internal/domain/rooms"
	"github.com/thienvyma/tagiangecolodge/internal/domain/shared/daterange"
)

type BookingHandler struct {
	Service *bookingsvc.Service
	Logger  *slog.Logger
}

type submitBookingRequest struct {
	GuestName string `json:"guest_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	RoomID    string `json:"room_id"`
	CheckIn   string `json:"checkin"`
	CheckOut  string `json:"checkout"`
	Guests    int    `json:"guests"`
	Note      string `json:"note"`
}

type bookingResponse struct {
	ID         string `json:"id"`
	GuestName  string `json:"guest_name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone"`
	RoomID     string `json:"room_id"`
	RoomName   string `json:"room_name"`
	CheckIn    string `json:"checkin"`
	CheckOut   string `json:"checkout"`
	Guests     int    `json:"guests"`
	Note       string `json:"note,omitempty"`
	TotalPrice int64  `json:"total_price"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

func newBookingResponse(b *domainbooking.Booking) bookingResponse {
	return bookingResponse{
		ID:         b.ID,
		GuestName:  b.GuestName,
		Email:      b.Email,
		Phone:      b.Phone,
		RoomID:     b.RoomID,
		RoomName:   b.RoomName,
		CheckIn:    b.Range.CheckInDay(),
		CheckOut:   b.Range.CheckOutDay(),
		Guests:     b.Guests,
		Note:       b.Note,
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
	}
}

// Submit handles the public booking form.
func (h BookingHandler) Submit(c *gin.Context) {
	var req submitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	receipt, err := h.Service.Submit(c.Request.Context(), bookingsvc.SubmitParams{
		GuestName: req.GuestName,
		Email:     req.Email,
		Phone:     req.Phone,
		RoomID:    req.RoomID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		Guests:    req.Guests,
		Note:      req.Note,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"booking_id":  receipt.BookingID,
		"total_price": receipt.TotalPrice,
		"nights":      receipt.Nights,
	})
}

func (h BookingHandler) List(c *gin.Context) {
	bookings, err := h.Service.List(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, newBookingResponse(b))
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

func (h BookingHandler) Confirm(c *gin.Context) {
	b, err := h.Service.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(b))
}

func (h BookingHandler) Cancel(c *gin.Context) {
	b, err := h.Service.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newBookingResponse(b))
}

func (h BookingHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainbooking.ErrMissingField),
		errors.Is(err, domainbooking.ErrInvalidGuests),
		errors.Is(err, daterange.ErrInvalidRange),
		errors.Is(err, daterange.ErrBadDay),
		errors.Is(err, bookingsvc.ErrCheckInInPast):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, rooms.ErrRoomNotFound),
		errors.Is(err, domainbooking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, bookingsvc.ErrDatesUnavailable),
		errors.Is(err, domainbooking.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		if h.Logger != nil {
			h.Logger.Error("booking operation failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

var _ BookingHTTP = (*BookingHandler)(nil)
