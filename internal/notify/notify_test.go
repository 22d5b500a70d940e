package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	sent []tgbotapi.MessageConfig
	fail map[int64]bool
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg := c.(tgbotapi.MessageConfig)
	if f.fail[msg.ChatID] {
		return tgbotapi.Message{}, errors.New("chat not found")
	}
	f.sent = append(f.sent, msg)
	return tgbotapi.Message{}, nil
}

type fakeMailer struct {
	to, subject, html string
	calls             int
}

func (m *fakeMailer) Send(_ context.Context, to, subject, html string) error {
	m.to, m.subject, m.html = to, subject, html
	m.calls++
	return nil
}

func sampleBooking(status string) model.BookingDetail {
	phone := "9800000000"
	return model.BookingDetail{
		ID:         42,
		BookedDate: "2026-11-02",
		NoOfPeople: 3,
		ContactNo:  &phone,
		Status:     status,
		User:       model.BookingUser{ID: 7, FirstName: "Sita", LastName: "Rai", Email: "sita@example.com"},
		Package:    model.BookingPackage{ID: 1, Title: "Everest Base Camp", Duration: "14 days", Currency: "USD", Price: 1200},
	}
}

func TestTelegramSendsToEveryAdminChat(t *testing.T) {
	bot := &fakeBot{}
	tg := NewTelegram(bot, []int64{10, 20})

	require.NoError(t, tg.BookingCreated(context.Background(), sampleBooking(model.StatusPending)))
	require.Len(t, bot.sent, 2)
	assert.Equal(t, int64(10), bot.sent[0].ChatID)
	assert.Contains(t, bot.sent[0].Text, "Everest Base Camp")
	assert.Contains(t, bot.sent[0].Text, "9800000000")

	kb, ok := bot.sent[0].ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard[0], 2)
	assert.Equal(t, "APPROVE_42", *kb.InlineKeyboard[0][0].CallbackData)
	assert.Equal(t, "CANCEL_42", *kb.InlineKeyboard[0][1].CallbackData)
}

func TestTelegramCollectsChatErrors(t *testing.T) {
	bot := &fakeBot{fail: map[int64]bool{20: true}}
	err := NewTelegram(bot, []int64{10, 20}).BookingStatusChanged(context.Background(), sampleBooking(model.StatusCancelled))

	assert.ErrorContains(t, err, "20")
	require.Len(t, bot.sent, 1)
	assert.Nil(t, bot.sent[0].ReplyMarkup)
}

func TestBookingKeyboard(t *testing.T) {
	kb, ok := BookingKeyboard(sampleBooking(model.StatusApproved))
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard[0], 1)
	assert.Equal(t, "CANCEL_42", *kb.InlineKeyboard[0][0].CallbackData)

	_, ok = BookingKeyboard(sampleBooking(model.StatusCancelled))
	assert.False(t, ok)
}

func TestCustomerMailsOnStatusChange(t *testing.T) {
	m := &fakeMailer{}
	c := NewCustomer(m, "https://api.example.com")

	require.NoError(t, c.BookingCreated(context.Background(), sampleBooking(model.StatusPending)))
	require.NoError(t, c.BookingStatusChanged(context.Background(), sampleBooking(model.StatusPending)))
	assert.Zero(t, m.calls)

	require.NoError(t, c.BookingStatusChanged(context.Background(), sampleBooking(model.StatusApproved)))
	assert.Equal(t, "sita@example.com", m.to)
	assert.Contains(t, m.html, "https://api.example.com/basic/package_booking/42/voucher")
}

func TestMultiJoinsErrors(t *testing.T) {
	bot := &fakeBot{fail: map[int64]bool{1: true}}
	m := &fakeMailer{}
	multi := Multi{NewTelegram(bot, []int64{1}), NewCustomer(m, ""), Nop{}}

	err := multi.BookingStatusChanged(context.Background(), sampleBooking(model.StatusApproved))
	assert.Error(t, err)
	assert.Equal(t, 1, m.calls)
}
