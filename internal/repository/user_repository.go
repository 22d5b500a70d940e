package repository

import (
	"context"
	"fmt"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/jmoiron/sqlx"
)

// UserRepository обеспечивает доступ к данным пользователей в базе данных.
type UserRepository struct {
	*Store[model.User]
	db sqlx.ExtContext
}

// NewUserRepository создаёт новый репозиторий пользователей.
func NewUserRepository(db sqlx.ExtContext) *UserRepository {
	return &UserRepository{
		Store: NewStore[model.User](db, TableUsers, "User",
			"first_name", "last_name", "email", "address", "contact_no", "password",
			"verification_token", "is_verified", "is_admin"),
		db: db,
	}
}

// GetByEmail ищет пользователя по e-mail.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := sqlx.GetContext(ctx, r.db, &user, "SELECT * FROM users WHERE email = $1", email); err != nil {
		return nil, classify(err, "User", opRead)
	}
	return &user, nil
}

// ListByVerified возвращает пользователей; nil означает всех.
func (r *UserRepository) ListByVerified(ctx context.Context, verified *bool) ([]model.User, error) {
	if verified == nil {
		return r.List(ctx)
	}
	users := []model.User{}
	if err := sqlx.SelectContext(ctx, r.db, &users, "SELECT * FROM users WHERE is_verified = $1 ORDER BY id", *verified); err != nil {
		return nil, classify(err, "User", opRead)
	}
	return users, nil
}

// Verify подтверждает e-mail по токену и гасит токен.
func (r *UserRepository) Verify(ctx context.Context, token string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE users SET is_verified = TRUE, verification_token = NULL, updated_at = now() WHERE verification_token = $1", token)
	if err != nil {
		return fmt.Errorf("не удалось подтвердить e-mail: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.Validation("Invalid or expired token.")
	}
	return nil
}

// UpdateProfile меняет только переданные поля профиля.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, u model.UserUpdate) (*model.User, error) {
	var user model.User
	err := sqlx.GetContext(ctx, r.db, &user,
		`UPDATE users
		 SET first_name = COALESCE($1, first_name),
		     last_name = COALESCE($2, last_name),
		     address = COALESCE($3, address),
		     contact_no = COALESCE($4, contact_no),
		     updated_at = now()
		 WHERE id = $5
		 RETURNING *`, u.FirstName, u.LastName, u.Address, u.ContactNo, id)
	if err != nil {
		return nil, classify(err, "User", opWrite)
	}
	return &user, nil
}

// SetPasswordByEmail сохраняет новый хеш пароля пользователя с указанным e-mail.
func (r *UserRepository) SetPasswordByEmail(ctx context.Context, email, hash string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE users SET password = $1, updated_at = now() WHERE email = $2", hash, email)
	if err != nil {
		return fmt.Errorf("не удалось обновить пароль: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound("User not found.")
	}
	return nil
}

// SetAdmin меняет признак администратора.
func (r *UserRepository) SetAdmin(ctx context.Context, id int64, isAdmin bool) (*model.User, error) {
	var user model.User
	err := sqlx.GetContext(ctx, r.db, &user,
		"UPDATE users SET is_admin = $1, updated_at = now() WHERE id = $2 RETURNING *", isAdmin, id)
	if err != nil {
		return nil, classify(err, "User", opWrite)
	}
	return &user, nil
}
