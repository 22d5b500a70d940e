package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anupgautam/trekkers-encounter-backend/internal/cache"
	"github.com/anupgautam/trekkers-encounter-backend/internal/config"
	"github.com/anupgautam/trekkers-encounter-backend/internal/database"
	"github.com/anupgautam/trekkers-encounter-backend/internal/handler"
	"github.com/anupgautam/trekkers-encounter-backend/internal/logger"
	"github.com/anupgautam/trekkers-encounter-backend/internal/mail"
	"github.com/anupgautam/trekkers-encounter-backend/internal/media"
	"github.com/anupgautam/trekkers-encounter-backend/internal/notify"
	"github.com/anupgautam/trekkers-encounter-backend/internal/repository"
	"github.com/anupgautam/trekkers-encounter-backend/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}
	logg := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		logg.Error("не удалось открыть базу данных", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := database.Migrate(ctx, db, cfg.MigrationsDir, logg); err != nil {
		logg.Error("ошибка миграции", "error", err)
		os.Exit(1)
	}

	// Инициализируем репозитории
	stores := repository.NewStores(db)
	packageRepo := repository.NewPackageRepository(db)
	userRepo := repository.NewUserRepository(db)
	resetRepo := repository.NewResetTokenRepository(db)

	var tokens service.TokenStore = resetRepo
	if cfg.ResetTokenStore == config.TokenStoreRedis {
		client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logg.Error("redis недоступен", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		tokens = cache.NewResetTokens(client)
	}

	var mailer service.Mailer = mail.NewLogMailer(logg)
	if cfg.MailAPIKey != "" {
		mailer = mail.NewHTTPMailer(mail.DefaultEndpoint, cfg.MailAPIKey, cfg.MailFrom)
	}

	notifiers := notify.Multi{notify.NewCustomer(mailer, cfg.BaseURL)}
	if cfg.BotToken != "" && len(cfg.TelegramAdminChatIDs) > 0 {
		bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
		if err != nil {
			logg.Warn("уведомления в Telegram отключены", "error", err)
		} else {
			notifiers = append(notifiers, notify.NewTelegram(bot, cfg.TelegramAdminChatIDs))
		}
	}

	// Инициализируем сервисы
	h := &handler.Handler{
		Catalog: handler.Catalog{
			Languages:            service.NewEntityService(db, stores.Languages),
			Categories:           service.NewEntityService(db, stores.Categories),
			SubCategories:        service.NewEntityService(db, stores.SubCategories),
			SubSubCategories:     service.NewEntityService(db, stores.SubSubCategories),
			Itineraries:          service.NewEntityService(db, stores.Itineraries),
			EssentialInformation: service.NewEntityService(db, stores.EssentialInformation),
			Faqs:                 service.NewEntityService(db, stores.Faqs),
			FaqPackages:          service.NewEntityService(db, stores.FaqPackages),
			IncludeExcludes:      service.NewEntityService(db, stores.IncludeExcludes),
			IncludeExcludePkgs:   service.NewEntityService(db, stores.IncludeExcludePkgs),
			PackageImages:        service.NewEntityService(db, stores.PackageImages),
			PackageGalleries:     service.NewEntityService(db, stores.PackageGalleries),
			HomePageSliders:      service.NewEntityService(db, stores.HomePageSliders),
			HomePackages:         service.NewEntityService(db, stores.HomePackages),
			Abouts:               service.NewEntityService(db, stores.Abouts),
			Contacts:             service.NewEntityService(db, stores.Contacts),
			Blogs:                service.NewEntityService(db, stores.Blogs),
		},
		PackageService: service.NewPackageService(db, packageRepo),
		FaqLinks:       service.NewAssociationService(db, packageRepo, repository.NewFaqPackageRepository(db)),
		IncludeLinks:   service.NewAssociationService(db, packageRepo, repository.NewIncludeExcludePackageRepository(db)),
		ReviewService:  service.NewReviewService(db, repository.NewReviewRepository(db), packageRepo),
		BookingService: service.NewBookingService(db, repository.NewBookingRepository(db), notifiers, logg),
		AuthService: service.NewAuthService(userRepo, tokens, mailer, service.AuthConfig{
			AccessSecret:  []byte(cfg.JWTAccessSecret),
			RefreshSecret: []byte(cfg.JWTRefreshSecret),
			AccessTTL:     cfg.JWTAccessTTL,
			RefreshTTL:    cfg.JWTRefreshTTL,
			ResetTTL:      cfg.ResetTokenTTL,
			BaseURL:       cfg.BaseURL,
			FrontendURL:   cfg.FrontendURL,
		}, logg),
		UserService: service.NewUserService(userRepo),
		Media:       media.NewStore(cfg.MediaDir, cfg.BaseURL),
		BaseURL:     cfg.BaseURL,
		Log:         logg,
	}

	limiter := handler.NewRateLimiter(cfg.AuthRatePerMinute)
	go housekeeping(ctx, limiter, resetRepo, logg)

	router := handler.NewRouter(h, limiter)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           corsHandler.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		logg.Info("сервер запущен", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error("ошибка запуска сервера", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logg.Info("остановка сервера")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logg.Error("ошибка остановки сервера", "error", err)
	}
}

// housekeeping раз в 10 минут удаляет просроченные токены сброса и забытых посетителей лимитера.
func housekeeping(ctx context.Context, limiter *handler.RateLimiter, resets *repository.ResetTokenRepository, logg *slog.Logger) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			limiter.Cleanup()
			n, err := resets.PurgeExpired(ctx)
			if err != nil {
				logg.Warn("не удалось удалить просроченные токены", "error", err)
				continue
			}
			if n > 0 {
				logg.Debug("удалены просроченные токены сброса", "count", n)
			}
		}
	}
}
