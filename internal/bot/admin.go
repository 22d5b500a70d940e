// Package bot содержит логику Telegram-ботов: модерацию бронирований и прием обращений.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"
	"github.com/anupgautam/trekkers-encounter-backend/internal/notify"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// API - часть *tgbotapi.BotAPI, которой пользуются боты.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bookings - операции сервиса бронирований, доступные боту модерации.
type Bookings interface {
	List(ctx context.Context, status string) ([]model.BookingDetail, error)
	Get(ctx context.Context, id int64) (*model.BookingDetail, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
	UpdateStatus(ctx context.Context, id int64, in model.BookingStatusInput) (*model.PackageBooking, error)
}

// Admin - бот модерации бронирований. Отвечает только чатам администраторов.
type Admin struct {
	api      API
	bookings Bookings
	admins   map[int64]bool
	log      *slog.Logger
}

// NewAdmin создает бота модерации для чатов adminChats.
func NewAdmin(api API, bookings Bookings, adminChats []int64, log *slog.Logger) *Admin {
	admins := make(map[int64]bool, len(adminChats))
	for _, id := range adminChats {
		admins[id] = true
	}
	return &Admin{api: api, bookings: bookings, admins: admins, log: log}
}

// Run обрабатывает обновления до закрытия канала или отмены ctx.
func (a *Admin) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			a.Handle(ctx, update)
		}
	}
}

// Handle обрабатывает одно обновление: команду или нажатие кнопки.
func (a *Admin) Handle(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		a.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		a.handleCommand(ctx, update.Message)
	}
}

func (a *Admin) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	if !a.admins[chatID] {
		a.reply(chatID, "Бот доступен только администраторам.")
		return
	}

	switch msg.Command() {
	case "start", "help":
		a.reply(chatID, "Команды:\n/pending - ожидающие бронирования\n/booking <id> - бронирование\n/stats - статистика")
	case "pending":
		bookings, err := a.bookings.List(ctx, model.StatusPending)
		if err != nil {
			a.fail(chatID, "не удалось получить список бронирований", err)
			return
		}
		if len(bookings) == 0 {
			a.reply(chatID, "Ожидающих бронирований нет.")
			return
		}
		for _, b := range bookings {
			a.sendBooking(chatID, b)
		}
	case "booking":
		id, err := strconv.ParseInt(strings.TrimSpace(msg.CommandArguments()), 10, 64)
		if err != nil || id <= 0 {
			a.reply(chatID, "Использование: /booking <id>")
			return
		}
		b, err := a.bookings.Get(ctx, id)
		if err != nil {
			a.fail(chatID, "не удалось получить бронирование", err)
			return
		}
		a.sendBooking(chatID, *b)
	case "stats":
		counts, err := a.bookings.CountByStatus(ctx)
		if err != nil {
			a.fail(chatID, "не удалось получить статистику", err)
			return
		}
		a.reply(chatID, fmt.Sprintf("Ожидают: %d\nПодтверждены: %d\nОтменены: %d",
			counts[model.StatusPending], counts[model.StatusApproved], counts[model.StatusCancelled]))
	default:
		a.reply(chatID, "Неизвестная команда.")
	}
}

func (a *Admin) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if _, err := a.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		a.log.Warn("не удалось ответить на callback", "error", err)
	}
	if cq.Message == nil {
		return
	}
	chatID := cq.Message.Chat.ID
	if !a.admins[chatID] {
		return
	}

	var status, raw string
	switch {
	case strings.HasPrefix(cq.Data, notify.CallbackApprove):
		status, raw = model.StatusApproved, strings.TrimPrefix(cq.Data, notify.CallbackApprove)
	case strings.HasPrefix(cq.Data, notify.CallbackCancel):
		status, raw = model.StatusCancelled, strings.TrimPrefix(cq.Data, notify.CallbackCancel)
	default:
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return
	}

	in := model.BookingStatusInput{Status: &status}
	if status == model.StatusApproved {
		confirm := true
		in.IsConfirm = &confirm
	}
	if _, err := a.bookings.UpdateStatus(ctx, id, in); err != nil {
		a.fail(chatID, "не удалось изменить статус", err)
		return
	}
	a.log.Info("статус бронирования изменен из бота", "booking_id", id, "status", status, "admin", cq.From.ID)
	a.reply(chatID, fmt.Sprintf("Бронирование #%d: %s.", id, status))
}

func (a *Admin) sendBooking(chatID int64, b model.BookingDetail) {
	msg := tgbotapi.NewMessage(chatID, notify.FormatBooking(b))
	if kb, ok := notify.BookingKeyboard(b); ok {
		msg.ReplyMarkup = kb
	}
	if _, err := a.api.Send(msg); err != nil {
		a.log.Warn("не удалось отправить сообщение", "chat_id", chatID, "error", err)
	}
}

func (a *Admin) reply(chatID int64, text string) {
	if _, err := a.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		a.log.Warn("не удалось отправить сообщение", "chat_id", chatID, "error", err)
	}
}

// fail сообщает администратору текст ошибки приложения; внутренние ошибки только логируются.
func (a *Admin) fail(chatID int64, what string, err error) {
	if apperr.KindOf(err) == apperr.KindInternal {
		a.log.Error(what, "error", err)
	}
	a.reply(chatID, apperr.Message(err))
}
