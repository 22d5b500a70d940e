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
	if cfg.SupportBotToken == "" {
		log.Fatal("Не указан токен бота поддержки (SUPPORT_BOT_TOKEN)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer db.Close()

	api, err := tgbotapi.NewBotAPI(cfg.SupportBotToken)
	if err != nil {
		log.Fatal("Ошибка инициализации support бота:", err)
	}
	logg.Info("запущен бот поддержки", "username", api.Self.UserName)

	contacts := service.NewEntityService(db, repository.NewStores(db).Contacts)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)
	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	bot.NewSupport(api, contacts, cfg.TelegramAdminChatIDs, logg).Run(ctx, updates)
	logg.Info("бот поддержки остановлен")
}
