package repository

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "postgres"), mock
}

func languageRows(rows ...[]driver.Value) *sqlmock.Rows {
	r := sqlmock.NewRows([]string{"id", "language", "created_at", "updated_at"})
	for _, row := range rows {
		r.AddRow(row...)
	}
	return r
}

func languageStore(db *sqlx.DB) *Store[model.Language] {
	return NewStore[model.Language](db, TableLanguages, "Language", "language")
}

func TestStoreCreateReturnsSavedRow(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO languages (language) VALUES ($1) RETURNING *")).
		WithArgs("English").
		WillReturnRows(languageRows([]driver.Value{1, "English", now, now}))

	saved, err := languageStore(db).Create(context.Background(), &model.Language{Language: "English"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, "English", saved.Language)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreUpdateAppendsID(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()
	store := NewStore[model.Category](db, TableCategories, "Category", "category_name", "language_id")
	mock.ExpectQuery(regexp.QuoteMeta(
		"UPDATE categories SET category_name = $1, language_id = $2, updated_at = now() WHERE id = $3 RETURNING *")).
		WithArgs("Trekking", int64(2), int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_name", "language_id", "created_at", "updated_at"}).
			AddRow(7, "Trekking", 2, now, now))

	saved, err := store.Update(context.Background(), 7, &model.Category{CategoryName: "Trekking", LanguageID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(7), saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreGetMissingIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM languages WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(languageRows())

	_, err := languageStore(db).Get(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.Equal(t, "Language not found.", apperr.Message(err))
}

func TestStoreListByRejectsUnknownColumn(t *testing.T) {
	db, _ := newMock(t)
	_, err := languageStore(db).ListBy(context.Background(), "id; DROP TABLE users", 1)
	assert.Error(t, err)
}

func TestStoreDelete(t *testing.T) {
	t.Run("missing row", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM languages WHERE id = $1")).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := languageStore(db).Delete(context.Background(), 3)
		assert.True(t, apperr.Is(err, apperr.KindNotFound))
	})

	t.Run("still referenced", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM languages WHERE id = $1")).
			WithArgs(int64(3)).
			WillReturnError(&pq.Error{Code: codeForeignKeyViolation})

		err := languageStore(db).Delete(context.Background(), 3)
		assert.True(t, apperr.Is(err, apperr.KindConflict))
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		op   operation
		want apperr.Kind
	}{
		{"unique", &pq.Error{Code: codeUniqueViolation}, opWrite, apperr.KindConflict},
		{"missing parent", &pq.Error{Code: codeForeignKeyViolation}, opWrite, apperr.KindNotFound},
		{"referenced on delete", &pq.Error{Code: codeForeignKeyViolation}, opDelete, apperr.KindConflict},
		{"check", &pq.Error{Code: codeCheckViolation}, opWrite, apperr.KindValidation},
		{"other", &pq.Error{Code: "57014"}, opRead, apperr.KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.KindOf(classify(tt.err, "Review", tt.op)))
		})
	}
	assert.NoError(t, classify(nil, "Review", opRead))
}
