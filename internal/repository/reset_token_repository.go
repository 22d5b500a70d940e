package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/jmoiron/sqlx"
)

// ResetTokenRepository хранит одноразовые токены сброса пароля в PostgreSQL.
type ResetTokenRepository struct {
	db  sqlx.ExtContext
	now func() time.Time
}

// NewResetTokenRepository создает хранилище токенов сброса.
func NewResetTokenRepository(db sqlx.ExtContext) *ResetTokenRepository {
	return &ResetTokenRepository{db: db, now: time.Now}
}

// Save сохраняет токен для e-mail со сроком жизни ttl.
func (r *ResetTokenRepository) Save(ctx context.Context, token, email string, ttl time.Duration) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO password_reset_tokens (token, email, expires_at) VALUES ($1, $2, $3)",
		token, email, r.now().Add(ttl))
	if err != nil {
		return fmt.Errorf("не удалось сохранить токен сброса: %w", err)
	}
	return nil
}

// Consume атомарно удаляет токен и возвращает e-mail владельца.
// Неизвестный или просроченный токен дает ошибку валидации.
func (r *ResetTokenRepository) Consume(ctx context.Context, token string) (string, error) {
	var t model.PasswordResetToken
	err := sqlx.GetContext(ctx, r.db, &t,
		"DELETE FROM password_reset_tokens WHERE token = $1 RETURNING token, email, expires_at", token)
	if err != nil {
		if apperr.Is(classify(err, "Token", opRead), apperr.KindNotFound) {
			return "", apperr.Validation("Invalid or expired token.")
		}
		return "", fmt.Errorf("не удалось прочитать токен сброса: %w", err)
	}
	if !r.now().Before(t.ExpiresAt) {
		return "", apperr.Validation("Invalid or expired token.")
	}
	return t.Email, nil
}

// PurgeExpired удаляет просроченные токены и возвращает их число.
func (r *ResetTokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM password_reset_tokens WHERE expires_at <= $1", r.now())
	if err != nil {
		return 0, fmt.Errorf("не удалось удалить просроченные токены: %w", err)
	}
	return res.RowsAffected()
}
