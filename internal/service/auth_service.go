package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// UserStore - хранилище учетных записей, нужное сервису аутентификации.
type UserStore interface {
	Create(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Verify(ctx context.Context, token string) error
	SetPasswordByEmail(ctx context.Context, email, hash string) error
}

// TokenStore хранит одноразовые токены сброса пароля с ограниченным сроком жизни.
type TokenStore interface {
	Save(ctx context.Context, token, email string, ttl time.Duration) error
	// Consume атомарно гасит токен и возвращает e-mail владельца.
	Consume(ctx context.Context, token string) (string, error)
}

// Mailer отправляет письма.
type Mailer interface {
	Send(ctx context.Context, to, subject, html string) error
}

// AuthConfig - параметры токенов и ссылок в письмах.
type AuthConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	ResetTTL      time.Duration
	BaseURL       string
	FrontendURL   string
}

// Claims - содержимое JWT.
type Claims struct {
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// AuthService отвечает за регистрацию, вход и восстановление пароля.
type AuthService struct {
	users  UserStore
	tokens TokenStore
	mailer Mailer
	cfg    AuthConfig
	log    *slog.Logger
	now    func() time.Time
}

// NewAuthService создает новый сервис аутентификации.
func NewAuthService(users UserStore, tokens TokenStore, mailer Mailer, cfg AuthConfig, log *slog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, mailer: mailer, cfg: cfg, log: log, now: time.Now}
}

// Signup регистрирует пользователя и отправляет письмо для подтверждения e-mail.
// Ошибка отправки письма только логируется.
func (s *AuthService) Signup(ctx context.Context, in model.SignupInput) (*model.User, error) {
	email := normalizeEmail(in.Email)
	if in.FirstName == "" || in.LastName == "" || email == "" {
		return nil, apperr.Validation("First name, last name and email are required.")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperr.Validation(fmt.Sprintf("Password must be at least %d characters.", minPasswordLength))
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("Email already exists.")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("не удалось захешировать пароль: %w", err)
	}
	token := uuid.NewString()
	user, err := s.users.Create(ctx, &model.User{
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Email:             email,
		Address:           in.Address,
		ContactNo:         in.ContactNo,
		Password:          string(hash),
		VerificationToken: &token,
	})
	if err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			return nil, apperr.Wrap(apperr.KindConflict, "Email already exists.", err)
		}
		return nil, err
	}

	link := s.cfg.BaseURL + "/user/verify?token=" + url.QueryEscape(token)
	html := fmt.Sprintf(`<p>Hello %s,</p><p>Please verify your email by clicking <a href="%s">this link</a>.</p>`, user.FirstName, link)
	if err := s.mailer.Send(ctx, user.Email, "Verify your email", html); err != nil {
		s.log.Warn("не удалось отправить письмо подтверждения", "email", user.Email, "error", err)
	}
	return user, nil
}

// Verify подтверждает e-mail по токену из письма.
func (s *AuthService) Verify(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return apperr.Validation("Invalid or expired token.")
	}
	return s.users.Verify(ctx, token)
}

// Login проверяет e-mail и пароль и выдает пару токенов.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Validation("Your email does not exist.")
		}
		return nil, err
	}
	if !user.IsVerified {
		return nil, apperr.Validation("User is not verified. Please contact the admin.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.Validation("Password does not match")
	}

	pair, err := s.issue(user)
	if err != nil {
		return nil, err
	}
	return &model.LoginResult{Email: user.Email, ID: user.ID, IsAdmin: user.IsAdmin, Tokens: *pair}, nil
}

// Refresh выдает новую пару токенов по действующему refresh-токену.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	claims, err := s.parse(refreshToken, s.cfg.RefreshSecret)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized("Invalid token.")
		}
		return nil, err
	}
	return s.issue(user)
}

// ParseAccess проверяет access-токен.
func (s *AuthService) ParseAccess(token string) (*Claims, error) {
	return s.parse(token, s.cfg.AccessSecret)
}

// IsAdmin читает текущий флаг администратора из учетной записи.
// Снятие прав действует сразу, не дожидаясь истечения токена.
func (s *AuthService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return false, apperr.Unauthorized("Invalid token.")
		}
		return false, err
	}
	return user.IsAdmin, nil
}

// ForgotPassword сохраняет токен сброса и отправляет ссылку на e-mail.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return apperr.NotFound("Email not found.")
		}
		return err
	}
	token := uuid.NewString()
	if err := s.tokens.Save(ctx, token, user.Email, s.cfg.ResetTTL); err != nil {
		return err
	}

	link := s.cfg.FrontendURL + "/forgotpassword/newpassword?token=" + url.QueryEscape(token)
	html := fmt.Sprintf(`<p>You requested a password reset.</p><p>Click <a href="%s">here</a> to set a new password. The link expires in %s.</p>`,
		link, s.cfg.ResetTTL)
	if err := s.mailer.Send(ctx, user.Email, "Password Reset", html); err != nil {
		return fmt.Errorf("не удалось отправить письмо сброса пароля: %w", err)
	}
	return nil
}

// ResetPassword гасит токен сброса и меняет пароль только его владельцу.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return apperr.Validation("New password is missing or invalid.")
	}
	if strings.TrimSpace(token) == "" {
		return apperr.Validation("Invalid or expired token.")
	}
	email, err := s.tokens.Consume(ctx, token)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("не удалось захешировать пароль: %w", err)
	}
	return s.users.SetPasswordByEmail(ctx, email, string(hash))
}

// ChangePassword меняет пароль авторизованного пользователя после проверки текущего.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if len(next) < minPasswordLength {
		return apperr.Validation("New password is missing or invalid.")
	}
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return apperr.Validation("Current password does not match.")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("не удалось захешировать пароль: %w", err)
	}
	return s.users.SetPasswordByEmail(ctx, user.Email, string(hash))
}

func (s *AuthService) issue(user *model.User) (*model.TokenPair, error) {
	access, err := s.sign(user, s.cfg.AccessSecret, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(user, s.cfg.RefreshSecret, s.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &model.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *AuthService) sign(user *model.User, secret []byte, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("не удалось подписать токен: %w", err)
	}
	return signed, nil
}

func (s *AuthService) parse(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Wrap(apperr.KindUnauthorized, "Token expired.", err)
		}
		return nil, apperr.Wrap(apperr.KindUnauthorized, "Invalid token.", err)
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
