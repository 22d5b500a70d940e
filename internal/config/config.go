package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Хранилища токенов сброса пароля.
const (
	TokenStorePostgres = "postgres"
	TokenStoreRedis    = "redis"
)

// Config содержит все параметры сервиса, прочитанные из окружения.
type Config struct {
	APIPort  string
	LogLevel string

	DBHost         string
	DBPort         string
	DBUser         string
	DBPass         string
	DBName         string
	DBSSLMode      string
	DBMaxOpenConns int
	DBMaxIdleConns int
	MigrationsDir  string

	MediaDir    string
	BaseURL     string
	FrontendURL string

	JWTAccessSecret  string
	JWTRefreshSecret string
	JWTAccessTTL     time.Duration
	JWTRefreshTTL    time.Duration

	ResetTokenTTL   time.Duration
	ResetTokenStore string
	RedisAddr       string
	RedisPassword   string

	MailAPIKey string
	MailFrom   string

	BotToken             string
	SupportBotToken      string
	TelegramAdminChatIDs []int64

	CORSOrigins       []string
	AuthRatePerMinute int
}

// Load читает .env (если есть) и переменные окружения.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIPort:          getEnv("API_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           os.Getenv("DB_USER"),
		DBPass:           os.Getenv("DB_PASS"),
		DBName:           os.Getenv("DB_NAME"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		MigrationsDir:    getEnv("MIGRATIONS_DIR", "migrations"),
		MediaDir:         getEnv("MEDIA_DIR", "media"),
		BaseURL:          strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		FrontendURL:      strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		JWTAccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		ResetTokenStore:  strings.ToLower(getEnv("RESET_TOKEN_STORE", TokenStorePostgres)),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    os.Getenv("REDIS_PASSWORD"),
		MailAPIKey:       os.Getenv("MAIL_API_KEY"),
		MailFrom:         getEnv("MAIL_FROM", "Trekkers Encounter <support@trekkersencounter.com>"),
		BotToken:         os.Getenv("BOT_TOKEN"),
		SupportBotToken:  os.Getenv("SUPPORT_BOT_TOKEN"),
		CORSOrigins:      splitList(getEnv("CORS_ORIGINS", "*")),
	}

	var err error
	if cfg.DBMaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return nil, err
	}
	if cfg.AuthRatePerMinute, err = getInt("AUTH_RATE_PER_MINUTE", 20); err != nil {
		return nil, err
	}
	if cfg.JWTAccessTTL, err = getDuration("JWT_ACCESS_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.JWTRefreshTTL, err = getDuration("JWT_REFRESH_TTL", 12*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ResetTokenTTL, err = getDuration("RESET_TOKEN_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.TelegramAdminChatIDs, err = getIDs("TELEGRAM_ADMIN_CHAT_IDS"); err != nil {
		return nil, err
	}

	if cfg.ResetTokenStore != TokenStorePostgres && cfg.ResetTokenStore != TokenStoreRedis {
		return nil, fmt.Errorf("RESET_TOKEN_STORE: неизвестное хранилище %q", cfg.ResetTokenStore)
	}
	return cfg, nil
}

// DSN собирает строку подключения к PostgreSQL.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName, c.DBSSLMode)
}

// Addr возвращает адрес HTTP-сервера.
func (c *Config) Addr() string {
	return ":" + c.APIPort
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: ожидалось целое число: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: некорректная длительность: %w", key, err)
	}
	return d, nil
}

func getIDs(key string) ([]int64, error) {
	var ids []int64
	for _, part := range splitList(os.Getenv(key)) {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: некорректный chat id %q: %w", key, part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
