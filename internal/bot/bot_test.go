package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	chatID int64
	text   string
	markup any
}

type fakeAPI struct {
	sent     []sent
	requests int
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, sent{chatID: m.ChatID, text: m.Text, markup: m.ReplyMarkup})
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests++
	return &tgbotapi.APIResponse{Ok: true}, nil
}

type fakeBookings struct {
	bookings map[int64]model.BookingDetail
	updates  []model.BookingStatusInput
	err      error
}

func (f *fakeBookings) List(_ context.Context, status string) ([]model.BookingDetail, error) {
	var out []model.BookingDetail
	for _, b := range f.bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) Get(_ context.Context, id int64) (*model.BookingDetail, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, apperr.NotFound("Package Booking not found.")
	}
	return &b, nil
}

func (f *fakeBookings) CountByStatus(context.Context) (map[string]int, error) {
	counts := map[string]int{}
	for _, b := range f.bookings {
		counts[b.Status]++
	}
	return counts, nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id int64, in model.BookingStatusInput) (*model.PackageBooking, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updates = append(f.updates, in)
	return &model.PackageBooking{ID: id, Status: *in.Status}, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func command(chatID int64, text string) tgbotapi.Update {
	name, _, _ := strings.Cut(text, " ")
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(name)}},
	}}
}

func callback(chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		From:    &tgbotapi.User{ID: 500},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		Data:    data,
	}}
}

func newAdminBot() (*Admin, *fakeAPI, *fakeBookings) {
	api := &fakeAPI{}
	bookings := &fakeBookings{bookings: map[int64]model.BookingDetail{
		1: {ID: 1, Status: model.StatusPending, BookedDate: "2026-11-01", NoOfPeople: 2},
		2: {ID: 2, Status: model.StatusApproved, BookedDate: "2026-11-02", NoOfPeople: 1},
	}}
	return NewAdmin(api, bookings, []int64{100}, discard()), api, bookings
}

func TestAdminIgnoresStrangers(t *testing.T) {
	bot, api, _ := newAdminBot()

	bot.Handle(context.Background(), command(7, "/pending"))
	require.Len(t, api.sent, 1)
	assert.Equal(t, "Бот доступен только администраторам.", api.sent[0].text)

	bot.Handle(context.Background(), callback(7, "APPROVE_1"))
	assert.Len(t, api.sent, 1)
}

func TestAdminPendingShowsKeyboard(t *testing.T) {
	bot, api, _ := newAdminBot()

	bot.Handle(context.Background(), command(100, "/pending"))
	require.Len(t, api.sent, 1)
	assert.Contains(t, api.sent[0].text, "#1")
	assert.IsType(t, tgbotapi.InlineKeyboardMarkup{}, api.sent[0].markup)
}

func TestAdminBookingCommand(t *testing.T) {
	bot, api, _ := newAdminBot()

	bot.Handle(context.Background(), command(100, "/booking 9"))
	bot.Handle(context.Background(), command(100, "/booking abc"))
	bot.Handle(context.Background(), command(100, "/stats"))

	require.Len(t, api.sent, 3)
	assert.Equal(t, "Package Booking not found.", api.sent[0].text)
	assert.Equal(t, "Использование: /booking <id>", api.sent[1].text)
	assert.Equal(t, "Ожидают: 1\nПодтверждены: 1\nОтменены: 0", api.sent[2].text)
}

func TestAdminCallbacks(t *testing.T) {
	bot, api, bookings := newAdminBot()

	bot.Handle(context.Background(), callback(100, "APPROVE_1"))
	bot.Handle(context.Background(), callback(100, "CANCEL_2"))

	require.Len(t, bookings.updates, 2)
	assert.Equal(t, model.StatusApproved, *bookings.updates[0].Status)
	assert.True(t, *bookings.updates[0].IsConfirm)
	assert.Equal(t, model.StatusCancelled, *bookings.updates[1].Status)
	assert.Nil(t, bookings.updates[1].IsConfirm)
	assert.Equal(t, 2, api.requests)
	assert.Equal(t, "Бронирование #2: cancelled.", api.sent[1].text)
}

func TestAdminCallbackReportsRejectedTransition(t *testing.T) {
	bot, api, bookings := newAdminBot()
	bookings.err = apperr.Validation("Cannot change booking status from cancelled to approved.")

	bot.Handle(context.Background(), callback(100, "APPROVE_3"))

	require.Len(t, api.sent, 1)
	assert.Equal(t, "Cannot change booking status from cancelled to approved.", api.sent[0].text)
}

type fakeContacts struct {
	saved []model.Contact
	err   error
}

func (f *fakeContacts) Create(_ context.Context, c *model.Contact) (*model.Contact, error) {
	if f.err != nil {
		return nil, f.err
	}
	c.ID = int64(len(f.saved) + 1)
	f.saved = append(f.saved, *c)
	return c, nil
}

func message(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID},
		From: &tgbotapi.User{ID: chatID, FirstName: "Ram", LastName: "Thapa"},
		Text: text,
	}}
}

func TestSupportStoresAndForwards(t *testing.T) {
	api := &fakeAPI{}
	contacts := &fakeContacts{}
	bot := NewSupport(api, contacts, []int64{100, 200}, discard())

	bot.Handle(context.Background(), message(42, "ram@example.com Is Everest base camp open in May?"))

	require.Len(t, contacts.saved, 1)
	assert.Equal(t, "Ram Thapa", contacts.saved[0].FullName)
	assert.Equal(t, "ram@example.com", contacts.saved[0].Email)
	assert.Equal(t, "Is Everest base camp open in May?", contacts.saved[0].Message)

	require.Len(t, api.sent, 3)
	assert.Equal(t, int64(100), api.sent[0].chatID)
	assert.Equal(t, int64(200), api.sent[1].chatID)
	assert.Contains(t, api.sent[0].text, "Обращение #1")
	assert.Equal(t, int64(42), api.sent[2].chatID)
}

func TestSupportRejectsMalformedMessages(t *testing.T) {
	api := &fakeAPI{}
	contacts := &fakeContacts{}
	bot := NewSupport(api, contacts, []int64{100}, discard())

	for _, text := range []string{"hello", "not-an-email question", "ram@example.com   "} {
		bot.Handle(context.Background(), message(42, text))
	}

	assert.Empty(t, contacts.saved)
	require.Len(t, api.sent, 3)
	for _, s := range api.sent {
		assert.Equal(t, supportUsage, s.text)
	}
}

func TestSupportStorageFailure(t *testing.T) {
	api := &fakeAPI{}
	bot := NewSupport(api, &fakeContacts{err: errors.New("connection refused")}, []int64{100}, discard())

	bot.Handle(context.Background(), message(42, "ram@example.com hi"))

	require.Len(t, api.sent, 1)
	assert.Equal(t, int64(42), api.sent[0].chatID)
}
