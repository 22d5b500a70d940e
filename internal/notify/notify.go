// Package notify сообщает о событиях бронирований администраторам и клиентам.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anupgautam/trekkers-encounter-backend/internal/model"
)

// Префиксы callback-данных inline-кнопок модерации.
const (
	CallbackApprove = "APPROVE_"
	CallbackCancel  = "CANCEL_"
)

// Notifier получает события бронирований.
type Notifier interface {
	BookingCreated(ctx context.Context, b model.BookingDetail) error
	BookingStatusChanged(ctx context.Context, b model.BookingDetail) error
}

// Nop ничего не отправляет.
type Nop struct{}

func (Nop) BookingCreated(context.Context, model.BookingDetail) error       { return nil }
func (Nop) BookingStatusChanged(context.Context, model.BookingDetail) error { return nil }

// Multi рассылает событие всем получателям и собирает их ошибки.
type Multi []Notifier

// BookingCreated передает событие каждому получателю.
func (m Multi) BookingCreated(ctx context.Context, b model.BookingDetail) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.BookingCreated(ctx, b))
	}
	return errors.Join(errs...)
}

// BookingStatusChanged передает событие каждому получателю.
func (m Multi) BookingStatusChanged(ctx context.Context, b model.BookingDetail) error {
	var errs []error
	for _, n := range m {
		errs = append(errs, n.BookingStatusChanged(ctx, b))
	}
	return errors.Join(errs...)
}

// FormatBooking - текстовая карточка бронирования для администраторов.
func FormatBooking(b model.BookingDetail) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Бронирование #%d [%s]\n", b.ID, b.Status)
	fmt.Fprintf(&sb, "Тур: %s (%s)\n", b.Package.Title, b.Package.Duration)
	fmt.Fprintf(&sb, "Дата: %s, человек: %d\n", b.BookedDate, b.NoOfPeople)
	fmt.Fprintf(&sb, "Стоимость: %.2f %s за человека\n", b.Package.Price, b.Package.Currency)
	fmt.Fprintf(&sb, "Клиент: %s %s, %s", b.User.FirstName, b.User.LastName, b.User.Email)
	if b.ContactNo != nil && *b.ContactNo != "" {
		fmt.Fprintf(&sb, ", тел. %s", *b.ContactNo)
	} else if b.User.ContactNo != "" {
		fmt.Fprintf(&sb, ", тел. %s", b.User.ContactNo)
	}
	if b.Description != nil && *b.Description != "" {
		fmt.Fprintf(&sb, "\nКомментарий: %s", *b.Description)
	}
	if b.IsConfirm {
		sb.WriteString("\nОплата подтверждена")
	}
	return sb.String()
}
