package model

import "time"

// User - учетная запись сайта. Пароль (bcrypt) и токен подтверждения наружу не выдаются.
type User struct {
	ID                int64     `db:"id" json:"id"`
	FirstName         string    `db:"first_name" json:"first_name"`
	LastName          string    `db:"last_name" json:"last_name"`
	Email             string    `db:"email" json:"email"`
	Address           string    `db:"address" json:"address"`
	ContactNo         string    `db:"contact_no" json:"contact_no"`
	Password          string    `db:"password" json:"-"`
	VerificationToken *string   `db:"verification_token" json:"-"`
	IsVerified        bool      `db:"is_verified" json:"is_verified"`
	IsAdmin           bool      `db:"is_admin" json:"is_admin"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// SignupInput - данные регистрации.
type SignupInput struct {
	FirstName string `json:"first_name" form:"first_name" binding:"required"`
	LastName  string `json:"last_name" form:"last_name" binding:"required"`
	Email     string `json:"email" form:"email" binding:"required,email"`
	Address   string `json:"address" form:"address"`
	ContactNo string `json:"contact_no" form:"contact_no"`
	Password  string `json:"password" form:"password" binding:"required,min=6"`
}

// UserUpdate - частичное обновление профиля; nil-поля не меняются.
type UserUpdate struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Address   *string `json:"address"`
	ContactNo *string `json:"contact_no"`
}

// TokenPair - пара JWT.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// LoginResult - ответ на успешный вход.
type LoginResult struct {
	Email   string    `json:"email"`
	ID      int64     `json:"id"`
	IsAdmin bool      `json:"is_admin"`
	Tokens  TokenPair `json:"tokens"`
}

// PasswordResetToken - одноразовый токен сброса пароля.
type PasswordResetToken struct {
	Token     string    `db:"token"`
	Email     string    `db:"email"`
	ExpiresAt time.Time `db:"expires_at"`
}
