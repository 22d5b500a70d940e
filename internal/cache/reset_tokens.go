// Package cache хранит короткоживущие данные в Redis.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"

	"github.com/redis/go-redis/v9"
)

const resetKeyPrefix = "password_reset:"

// ResetTokens - хранилище токенов сброса пароля в Redis.
// Срок жизни задается TTL ключа, гашение выполняется одной командой GETDEL.
type ResetTokens struct {
	client *redis.Client
}

// NewResetTokens создает хранилище поверх готового клиента.
func NewResetTokens(client *redis.Client) *ResetTokens {
	return &ResetTokens{client: client}
}

// Connect открывает клиент Redis и проверяет соединение.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("не удалось подключиться к redis %s: %w", addr, err)
	}
	return client, nil
}

// Save сохраняет токен с временем жизни ttl.
func (s *ResetTokens) Save(ctx context.Context, token, email string, ttl time.Duration) error {
	if err := s.client.Set(ctx, resetKeyPrefix+token, email, ttl).Err(); err != nil {
		return fmt.Errorf("не удалось сохранить токен сброса: %w", err)
	}
	return nil
}

// Consume возвращает e-mail владельца и удаляет токен.
func (s *ResetTokens) Consume(ctx context.Context, token string) (string, error) {
	email, err := s.client.GetDel(ctx, resetKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", apperr.Validation("Invalid or expired token.")
	}
	if err != nil {
		return "", fmt.Errorf("не удалось погасить токен сброса: %w", err)
	}
	return email, nil
}
