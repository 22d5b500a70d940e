package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/go-playground/validator/v10"
)

// Contacts сохраняет обращения посетителей.
type Contacts interface {
	Create(ctx context.Context, item *model.Contact) (*model.Contact, error)
}

const supportUsage = "Отправьте сообщение в формате: email текст обращения"

// Support - бот приема обращений. Сохраняет обращение и пересылает его администраторам.
type Support struct {
	api      API
	contacts Contacts
	admins   []int64
	validate *validator.Validate
	log      *slog.Logger
}

// NewSupport создает бота обращений; обращения пересылаются в adminChats.
func NewSupport(api API, contacts Contacts, adminChats []int64, log *slog.Logger) *Support {
	return &Support{api: api, contacts: contacts, admins: adminChats, validate: validator.New(), log: log}
}

// Run обрабатывает обновления до закрытия канала или отмены ctx.
func (s *Support) Run(ctx context.Context, updates <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			s.Handle(ctx, update)
		}
	}
}

// Handle обрабатывает одно сообщение посетителя.
func (s *Support) Handle(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	chatID := msg.Chat.ID
	if msg.IsCommand() {
		s.reply(chatID, "Здравствуйте! "+supportUsage)
		return
	}

	email, text, ok := strings.Cut(strings.TrimSpace(msg.Text), " ")
	text = strings.TrimSpace(text)
	if !ok || text == "" || s.validate.Var(email, "required,email") != nil {
		s.reply(chatID, supportUsage)
		return
	}

	contact := &model.Contact{FullName: fullName(msg.From), Email: email, Message: text}
	saved, err := s.contacts.Create(ctx, contact)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			s.log.Error("не удалось сохранить обращение", "error", err)
		}
		s.reply(chatID, "Не удалось принять обращение, попробуйте позже.")
		return
	}
	s.log.Info("обращение принято", "contact_id", saved.ID)

	out := fmt.Sprintf("Обращение #%d от %s (%s):\n%s", saved.ID, saved.FullName, saved.Email, saved.Message)
	for _, admin := range s.admins {
		if _, err := s.api.Send(tgbotapi.NewMessage(admin, out)); err != nil {
			s.log.Warn("не удалось переслать обращение", "chat_id", admin, "error", err)
		}
	}
	s.reply(chatID, "Ваше обращение отправлено. Мы ответим на указанный e-mail.")
}

func (s *Support) reply(chatID int64, text string) {
	if _, err := s.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		s.log.Warn("не удалось отправить сообщение", "chat_id", chatID, "error", err)
	}
}

func fullName(u *tgbotapi.User) string {
	if u == nil {
		return "Telegram"
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	if name == "" {
		name = "Telegram"
	}
	return name
}
