package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тест работает с настоящим Redis: REDIS_TEST_ADDR=localhost:6379.
func newTestStore(t *testing.T) *ResetTokens {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR не задан")
	}
	client, err := Connect(context.Background(), addr, "")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewResetTokens(client)
}

func TestResetTokenConsumedOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	token := uuid.NewString()

	require.NoError(t, store.Save(ctx, token, "sita@example.com", time.Minute))

	email, err := store.Consume(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "sita@example.com", email)

	_, err = store.Consume(ctx, token)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestResetTokenExpires(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	token := uuid.NewString()

	require.NoError(t, store.Save(ctx, token, "sita@example.com", 50*time.Millisecond))
	time.Sleep(150 * time.Millisecond)

	_, err := store.Consume(ctx, token)
	assert.Equal(t, "Invalid or expired token.", apperr.Message(err))
}
