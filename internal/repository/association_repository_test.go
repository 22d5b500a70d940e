package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssociationQueriesUseChildColumn(t *testing.T) {
	db, mock := newMock(t)
	repo := NewIncludeExcludePackageRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO include_exclude_packages (package_id, include_exclude_id) VALUES ($1, $2) ON CONFLICT (package_id, include_exclude_id) DO NOTHING")).
		WithArgs(int64(1), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM include_exclude_packages WHERE package_id = $1 AND include_exclude_id = $2")).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, package_id, include_exclude_id AS child_id FROM include_exclude_packages WHERE package_id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "package_id", "child_id"}).AddRow(10, 1, 4))

	ctx := context.Background()
	require.NoError(t, repo.Upsert(ctx, 1, 4))
	require.NoError(t, repo.Remove(ctx, 1, 2))
	links, err := repo.Members(ctx, 1)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, int64(4), links[0].ChildID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssociationUpsertMissingChild(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO faq_packages").
		WillReturnError(&pq.Error{Code: codeForeignKeyViolation})

	err := NewFaqPackageRepository(db).Upsert(context.Background(), 1, 99)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
