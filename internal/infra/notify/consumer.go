package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
)

// bookingRequested mirrors the payload the booking service publishes.
type bookingRequested struct {
	BookingID  string `json:"booking_id"`
	RoomName   string `json:"room_name"`
	GuestName  string `json:"guest_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	CheckIn    string `json:"checkin"`
	CheckOut   string `json:"checkout"`
	Guests     int    `json:"guests"`
	Note       string `json:"note"`
	TotalPrice int64  `json:"total_price"`
}

// BookingEventHandler consumes booking.requested events and mails the
// operator. Running notification off the broker keeps the request path fast
// and survives process restarts between submit and delivery.
type BookingEventHandler struct {
	Email  *EmailNotifier
	Logger *slog.Logger
}

func (h *BookingEventHandler) Handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var evt bookingRequested
	if err := json.Unmarshal(msg.Value, &evt); err != nil {
		// Malformed payloads are logged and skipped, not retried.
		if h.Logger != nil {
			h.Logger.Warn("notify: dropping malformed event", "topic", msg.Topic, "offset", msg.Offset, "error", err)
		}
		return nil
	}
	if !h.Email.Enabled() {
		return nil
	}
	if err := h.Email.send(ctx, evt); err != nil {
		return fmt.Errorf("notify: event %s: %w", evt.BookingID, err)
	}
	return nil
}
