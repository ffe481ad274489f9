package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/smtp"
	"strings"

	"github.com/thienvyma/tagiangecolodge/internal/domain/booking"
)

// EmailNotifier mails the operator a summary of each booking request over
// plain SMTP. Gated on configuration: an unconfigured notifier reports
// disabled instead of erroring.
type EmailNotifier struct {
	Host   string
	Port   int
	User   string
	Pass   string
	To     string
	Logger *slog.Logger
}

var ErrDisabled = errors.New("notify: smtp is not configured")

func (n *EmailNotifier) Enabled() bool {
	return n != nil && n.Host != "" && n.To != ""
}

func (n *EmailNotifier) NotifyBookingRequested(ctx context.Context, b *booking.Booking) error {
	if !n.Enabled() {
		return ErrDisabled
	}
	evt := bookingRequested{
		BookingID:  b.ID,
		RoomName:   b.RoomName,
		GuestName:  b.GuestName,
		Phone:      b.Phone,
		Email:      b.Email,
		CheckIn:    b.Range.CheckInDay(),
		CheckOut:   b.Range.CheckOutDay(),
		Guests:     b.Guests,
		Note:       b.Note,
		TotalPrice: b.TotalPrice,
	}
	return n.send(ctx, evt)
}

// send delivers the summary mail for one booking event.
func (n *EmailNotifier) send(ctx context.Context, evt bookingRequested) error {
	subject := fmt.Sprintf("Đặt phòng mới: %s (%s)", evt.GuestName, evt.RoomName)
	msg := buildMessage(n.User, n.To, subject, eventHTML(evt))

	addr := fmt.Sprintf("%s:%d", n.Host, n.Port)
	var auth smtp.Auth
	if n.User != "" {
		auth = smtp.PlainAuth("", n.User, n.Pass, n.Host)
	}
	if err := sendMail(ctx, addr, auth, n.User, []string{n.To}, msg); err != nil {
		return fmt.Errorf("notify: send mail: %w", err)
	}
	if n.Logger != nil {
		n.Logger.Info("booking notification sent", "booking_id", evt.BookingID, "to", n.To)
	}
	return nil
}

// sendMail runs smtp.SendMail under the caller's deadline. net/smtp has no
// context support, so the call is raced against ctx in a goroutine.
func sendMail(ctx context.Context, addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, from, to, msg)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func buildMessage(from, to, subject string, htmlBody string) []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "From: %s\r\n", from)
	fmt.Fprintf(&sb, "To: %s\r\n", to)
	fmt.Fprintf(&sb, "Subject: %s\r\n", mimeEncode(subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(htmlBody)
	return []byte(sb.String())
}

func eventHTML(evt bookingRequested) string {
	var sb strings.Builder
	sb.WriteString("<h2>Yêu cầu đặt phòng mới</h2><table cellpadding=\"6\">")
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&sb, "<tr><td><b>%s</b></td><td>%s</td></tr>", label, value)
	}
	row("Mã đặt phòng", evt.BookingID)
	row("Khách", evt.GuestName)
	row("Điện thoại", evt.Phone)
	row("Email", evt.Email)
	row("Phòng", evt.RoomName)
	row("Nhận phòng", evt.CheckIn)
	row("Trả phòng", evt.CheckOut)
	row("Số khách", fmt.Sprintf("%d", evt.Guests))
	row("Tổng tiền", fmt.Sprintf("%d VND", evt.TotalPrice))
	row("Ghi chú", evt.Note)
	sb.WriteString("</table>")
	return sb.String()
}

// mimeEncode wraps non-ASCII subjects in RFC 2047 encoded-word form.
func mimeEncode(s string) string {
	return mime.BEncoding.Encode("UTF-8", s)
}
