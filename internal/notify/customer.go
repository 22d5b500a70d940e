package notify

import (
	"context"
	"fmt"
	"html"

	"github.com/anupgautam/trekkers-encounter-backend/internal/model"
)

// Mailer отправляет письмо.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// Customer пишет клиенту о смене статуса его бронирования.
type Customer struct {
	mailer  Mailer
	baseURL string
}

// NewCustomer создает уведомитель клиентов.
func NewCustomer(mailer Mailer, baseURL string) *Customer {
	return &Customer{mailer: mailer, baseURL: baseURL}
}

// BookingCreated не отправляет письмо: клиент видит бронирование сразу.
func (c *Customer) BookingCreated(context.Context, model.BookingDetail) error {
	return nil
}

// BookingStatusChanged пишет клиенту о подтверждении или отмене бронирования.
func (c *Customer) BookingStatusChanged(ctx context.Context, b model.BookingDetail) error {
	var subject, body string
	title := html.EscapeString(b.Package.Title)
	switch b.Status {
	case model.StatusApproved:
		subject = "Your booking is approved"
		body = fmt.Sprintf(`<p>Your booking of <b>%s</b> on %s has been approved.</p>`+
			`<p>Download your voucher: <a href="%s/basic/package_booking/%d/voucher">voucher</a></p>`,
			title, b.BookedDate, c.baseURL, b.ID)
	case model.StatusCancelled:
		subject = "Your booking is cancelled"
		body = fmt.Sprintf(`<p>Your booking of <b>%s</b> on %s has been cancelled.</p>`, title, b.BookedDate)
	default:
		return nil
	}
	return c.mailer.Send(ctx, b.User.Email, subject, body)
}
