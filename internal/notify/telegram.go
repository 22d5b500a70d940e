package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender - часть *tgbotapi.BotAPI, нужная для отправки сообщений.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram отправляет события бронирований в чаты администраторов.
type Telegram struct {
	bot   Sender
	chats []int64
}

// NewTelegram создает уведомитель для чатов chats.
func NewTelegram(bot Sender, chats []int64) *Telegram {
	return &Telegram{bot: bot, chats: chats}
}

// BookingCreated сообщает администраторам о новом бронировании.
func (t *Telegram) BookingCreated(ctx context.Context, b model.BookingDetail) error {
	return t.broadcast("Новое бронирование\n\n"+FormatBooking(b), b)
}

// BookingStatusChanged сообщает администраторам о смене статуса.
func (t *Telegram) BookingStatusChanged(ctx context.Context, b model.BookingDetail) error {
	return t.broadcast("Статус бронирования изменен\n\n"+FormatBooking(b), b)
}

func (t *Telegram) broadcast(text string, b model.BookingDetail) error {
	var errs []error
	for _, chatID := range t.chats {
		msg := tgbotapi.NewMessage(chatID, text)
		if kb, ok := BookingKeyboard(b); ok {
			msg.ReplyMarkup = kb
		}
		if _, err := t.bot.Send(msg); err != nil {
			errs = append(errs, fmt.Errorf("чат %d: %w", chatID, err))
		}
	}
	return errors.Join(errs...)
}

// BookingKeyboard возвращает кнопки модерации для статусов, из которых есть переходы.
func BookingKeyboard(b model.BookingDetail) (tgbotapi.InlineKeyboardMarkup, bool) {
	var row []tgbotapi.InlineKeyboardButton
	switch b.Status {
	case model.StatusPending:
		row = append(row,
			tgbotapi.NewInlineKeyboardButtonData("Подтвердить", fmt.Sprintf("%s%d", CallbackApprove, b.ID)),
			tgbotapi.NewInlineKeyboardButtonData("Отменить", fmt.Sprintf("%s%d", CallbackCancel, b.ID)))
	case model.StatusApproved:
		row = append(row,
			tgbotapi.NewInlineKeyboardButtonData("Отменить", fmt.Sprintf("%s%d", CallbackCancel, b.ID)))
	default:
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(row), true
}
