package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/anupgautam/trekkers-encounter-backend/internal/bot"
	"github.com/anupgautam/trekkers-encounter-backend/internal/config"
	"github.com/anupgautam/trekkers-encounter-backend/internal/database"
	"github.com/anupgautam/trekkers-encounter-backend/internal/logger"
	"github.com/anupgautam/trekkers-encounter-backend/internal/mail"
	"github.com/anupgautam/trekkers-encounter-backend/internal/notify"
	"github.com/anupgautam/trekkers-encounter-backend/internal/repository"
	"github.com/anupgautam/trekkers-encounter-backend/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}
	logg := logger.New(cfg.LogLevel)
	if cfg.BotToken == "" {
		log.Fatal("Не указан токен бота (BOT_TOKEN)")
	}
	if len(cfg.TelegramAdminChatIDs) == 0 {
		log.Fatal("Не указаны чаты администраторов (TELEGRAM_ADMIN_CHAT_IDS)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer db.Close()

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal("Ошибка инициализации бота:", err)
	}
	logg.Info("запущен бот модерации", "username", api.Self.UserName)

	var mailer service.Mailer = mail.NewLogMailer(logg)
	if cfg.MailAPIKey != "" {
		mailer = mail.NewHTTPMailer(mail.DefaultEndpoint, cfg.MailAPIKey, cfg.MailFrom)
	}
	// Клиент получает письмо, остальные администраторы видят новый статус в чате.
	notifier := notify.Multi{
		notify.NewCustomer(mailer, cfg.BaseURL),
		notify.NewTelegram(api, cfg.TelegramAdminChatIDs),
	}
	bookings := service.NewBookingService(db, repository.NewBookingRepository(db), notifier, logg)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)
	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	bot.NewAdmin(api, bookings, cfg.TelegramAdminChatIDs, logg).Run(ctx, updates)
	logg.Info("бот модерации остановлен")
}
