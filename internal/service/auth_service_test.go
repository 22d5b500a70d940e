package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[int64]*model.User
	nextID int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[int64]*model.User{}}
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, apperr.Conflict("User already exists.")
		}
	}
	f.nextID++
	saved := *u
	saved.ID = f.nextID
	f.byID[saved.ID] = &saved
	return &saved, nil
}

func (f *fakeUsers) Get(_ context.Context, id int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperr.NotFound("User not found.")
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("User not found.")
}

func (f *fakeUsers) Verify(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			u.IsVerified = true
			u.VerificationToken = nil
			return nil
		}
	}
	return apperr.Validation("Invalid or expired token.")
}

func (f *fakeUsers) SetPasswordByEmail(_ context.Context, email, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			u.Password = hash
			return nil
		}
	}
	return apperr.NotFound("User not found.")
}

type fakeTokens struct {
	mu      sync.Mutex
	entries map[string]string
}

func (f *fakeTokens) Save(_ context.Context, token, email string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.entries == nil {
		f.entries = map[string]string{}
	}
	f.entries[token] = email
	return nil
}

func (f *fakeTokens) Consume(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	email, ok := f.entries[token]
	if !ok {
		return "", apperr.Validation("Invalid or expired token.")
	}
	delete(f.entries, token)
	return email, nil
}

type sentMail struct {
	to, subject, html string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, html string) error {
	m.sent = append(m.sent, sentMail{to, subject, html})
	return m.err
}

func newAuth(t *testing.T) (*AuthService, *fakeUsers, *fakeTokens, *fakeMailer) {
	t.Helper()
	users, tokens, mailer := newFakeUsers(), &fakeTokens{}, &fakeMailer{}
	svc := NewAuthService(users, tokens, mailer, AuthConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		AccessTTL:     10 * time.Minute,
		RefreshTTL:    24 * time.Hour,
		ResetTTL:      time.Hour,
		BaseURL:       "http://api.test",
		FrontendURL:   "http://site.test",
	}, discardLogger())
	return svc, users, tokens, mailer
}

func signupVerified(t *testing.T, svc *AuthService, users *fakeUsers, email string) *model.User {
	t.Helper()
	u, err := svc.Signup(context.Background(), model.SignupInput{
		FirstName: "Sita", LastName: "Rai", Email: email, Password: "secret123",
	})
	require.NoError(t, err)
	stored, err := users.Get(context.Background(), u.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Verify(context.Background(), *stored.VerificationToken))
	return u
}

func TestSignupSendsVerificationLink(t *testing.T) {
	svc, users, _, mailer := newAuth(t)

	u, err := svc.Signup(context.Background(), model.SignupInput{
		FirstName: "Sita", LastName: "Rai", Email: "  Sita@Example.com ", Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "sita@example.com", u.Email)
	assert.False(t, u.IsVerified)
	assert.NotEqual(t, "secret123", u.Password)

	stored, _ := users.Get(context.Background(), u.ID)
	require.NotNil(t, stored.VerificationToken)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "sita@example.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].html, "http://api.test/user/verify?token="+*stored.VerificationToken)

	_, err = svc.Signup(context.Background(), model.SignupInput{
		FirstName: "Sita", LastName: "Rai", Email: "sita@example.com", Password: "secret123",
	})
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "Email already exists.", apperr.Message(err))
}

func TestSignupSurvivesMailFailure(t *testing.T) {
	svc, _, _, mailer := newAuth(t)
	mailer.err = errors.New("smtp down")

	_, err := svc.Signup(context.Background(), model.SignupInput{
		FirstName: "Hari", LastName: "KC", Email: "hari@example.com", Password: "secret123",
	})
	assert.NoError(t, err)
}

func TestLoginFlow(t *testing.T) {
	svc, users, _, _ := newAuth(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "nobody@example.com", "secret123")
	assert.Equal(t, "Your email does not exist.", apperr.Message(err))

	_, err = svc.Signup(ctx, model.SignupInput{FirstName: "A", LastName: "B", Email: "new@example.com", Password: "secret123"})
	require.NoError(t, err)
	_, err = svc.Login(ctx, "new@example.com", "secret123")
	assert.Equal(t, "User is not verified. Please contact the admin.", apperr.Message(err))

	u := signupVerified(t, svc, users, "sita@example.com")
	_, err = svc.Login(ctx, "sita@example.com", "wrong-pass")
	assert.Equal(t, "Password does not match", apperr.Message(err))

	res, err := svc.Login(ctx, "SITA@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.ID)
	assert.NotEmpty(t, res.Tokens.Access)
	assert.NotEmpty(t, res.Tokens.Refresh)

	claims, err := svc.ParseAccess(res.Tokens.Access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "sita@example.com", claims.Email)
	assert.False(t, claims.IsAdmin)

	_, err = svc.ParseAccess(res.Tokens.Refresh)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized), "refresh token must not pass as access token")
}

func TestRefreshAndExpiry(t *testing.T) {
	svc, users, _, _ := newAuth(t)
	ctx := context.Background()
	signupVerified(t, svc, users, "sita@example.com")

	start := time.Now()
	svc.now = func() time.Time { return start }
	res, err := svc.Login(ctx, "sita@example.com", "secret123")
	require.NoError(t, err)

	pair, err := svc.Refresh(ctx, res.Tokens.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)

	_, err = svc.Refresh(ctx, res.Tokens.Access)
	assert.Equal(t, "Invalid token.", apperr.Message(err))

	svc.now = func() time.Time { return start.Add(11 * time.Minute) }
	_, err = svc.ParseAccess(res.Tokens.Access)
	assert.Equal(t, "Token expired.", apperr.Message(err))

	_, err = svc.ParseAccess("not-a-jwt")
	assert.Equal(t, "Invalid token.", apperr.Message(err))
}

func TestPasswordResetTokenIsSingleUse(t *testing.T) {
	svc, users, tokens, mailer := newAuth(t)
	ctx := context.Background()
	signupVerified(t, svc, users, "sita@example.com")

	err := svc.ForgotPassword(ctx, "ghost@example.com")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	require.NoError(t, svc.ForgotPassword(ctx, "sita@example.com"))
	require.Len(t, tokens.entries, 1)
	var token string
	for k := range tokens.entries {
		token = k
	}
	last := mailer.sent[len(mailer.sent)-1]
	assert.Equal(t, "Password Reset", last.subject)
	assert.True(t, strings.Contains(last.html, "http://site.test/forgotpassword/newpassword?token="+token))

	err = svc.ResetPassword(ctx, token, "123")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	require.NoError(t, svc.ResetPassword(ctx, token, "new-secret"))
	u, _ := users.GetByEmail(ctx, "sita@example.com")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("new-secret")))

	err = svc.ResetPassword(ctx, token, "another-secret")
	assert.Equal(t, "Invalid or expired token.", apperr.Message(err))
}

func TestChangePassword(t *testing.T) {
	svc, users, _, _ := newAuth(t)
	ctx := context.Background()
	u := signupVerified(t, svc, users, "sita@example.com")

	err := svc.ChangePassword(ctx, u.ID, "wrong", "brand-new")
	assert.Equal(t, "Current password does not match.", apperr.Message(err))

	require.NoError(t, svc.ChangePassword(ctx, u.ID, "secret123", "brand-new"))
	_, err = svc.Login(ctx, "sita@example.com", "brand-new")
	assert.NoError(t, err)
}

func TestUserUpdateRequiresOwnerOrAdmin(t *testing.T) {
	svc := NewUserService(nil)
	name := "Gita"

	_, err := svc.Update(context.Background(), &Claims{UserID: 2}, 3, model.UserUpdate{FirstName: &name})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = svc.Update(context.Background(), nil, 3, model.UserUpdate{FirstName: &name})
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = svc.Update(context.Background(), &Claims{UserID: 3}, 3, model.UserUpdate{})
	assert.Equal(t, "No fields to update.", apperr.Message(err))
}

func TestIsAdminReadsCurrentFlag(t *testing.T) {
	svc, users, _, _ := newAuth(t)
	ctx := context.Background()
	u := signupVerified(t, svc, users, "sita@example.com")

	admin, err := svc.IsAdmin(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, admin)

	users.mu.Lock()
	users.byID[u.ID].IsAdmin = true
	users.mu.Unlock()
	admin, err = svc.IsAdmin(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, admin)

	_, err = svc.IsAdmin(ctx, 999)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}
