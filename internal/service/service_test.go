package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "postgres"), mock
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingNotifier struct {
	created []model.BookingDetail
	changed []model.BookingDetail
}

func (n *recordingNotifier) BookingCreated(_ context.Context, b model.BookingDetail) error {
	n.created = append(n.created, b)
	return nil
}

func (n *recordingNotifier) BookingStatusChanged(_ context.Context, b model.BookingDetail) error {
	n.changed = append(n.changed, b)
	return nil
}
