package service

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"
	"github.com/anupgautam/trekkers-encounter-backend/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewColumns = []string{"id", "package_id", "user_id", "review_star", "review_title", "review_description", "created_at", "updated_at"}

func newReviewService(t *testing.T) (*ReviewService, sqlmock.Sqlmock) {
	db, mock := newMock(t)
	return NewReviewService(db, repository.NewReviewRepository(db), repository.NewPackageRepository(db)), mock
}

func expectLock(mock sqlmock.Sqlmock, packageID int64) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM packages WHERE id = $1 FOR UPDATE")).
		WithArgs(packageID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(packageID))
}

func expectReviewLock(mock sqlmock.Sqlmock, id, packageID int64, at time.Time) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM reviews WHERE id = $1 FOR UPDATE")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(reviewColumns).AddRow(id, packageID, 5, 4, "", "", at, at))
}

func expectRecompute(mock sqlmock.Sqlmock, packageID int64, avg float64) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(AVG(review_star), 0)::float8 FROM reviews WHERE package_id = $1")).
		WithArgs(packageID).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(avg))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE packages SET overall_ratings = $1 WHERE id = $2")).
		WithArgs(avg, packageID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

func TestReviewCreateRecomputesRating(t *testing.T) {
	svc, mock := newReviewService(t)
	now := time.Now()

	mock.ExpectBegin()
	expectLock(mock, 1)
	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs(int64(1), int64(5), 4, "Great", "").
		WillReturnRows(sqlmock.NewRows(reviewColumns).AddRow(1, 1, 5, 4, "Great", "", now, now))
	expectRecompute(mock, 1, 4)
	mock.ExpectCommit()

	saved, err := svc.Create(context.Background(), &model.Review{PackageID: 1, UserID: 5, ReviewStar: 4, ReviewTitle: "Great"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewCreateDuplicateIsConflict(t *testing.T) {
	svc, mock := newReviewService(t)

	mock.ExpectBegin()
	expectLock(mock, 1)
	mock.ExpectQuery("INSERT INTO reviews").
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), &model.Review{PackageID: 1, UserID: 5, ReviewStar: 2})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindConflict))
	assert.Equal(t, "You have already reviewed this package.", apperr.Message(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewCreateValidatesStars(t *testing.T) {
	svc, _ := newReviewService(t)
	for _, stars := range []int{0, 6, -1} {
		_, err := svc.Create(context.Background(), &model.Review{PackageID: 1, UserID: 5, ReviewStar: stars})
		assert.True(t, apperr.Is(err, apperr.KindValidation), "stars=%d", stars)
	}
}

func TestReviewUpdateMovedToOtherPackage(t *testing.T) {
	svc, mock := newReviewService(t)
	now := time.Now()

	mock.ExpectBegin()
	expectReviewLock(mock, 7, 3, now)
	expectLock(mock, 2)
	expectLock(mock, 3)
	mock.ExpectQuery("UPDATE reviews SET").
		WillReturnRows(sqlmock.NewRows(reviewColumns).AddRow(7, 2, 5, 5, "", "", now, now))
	expectRecompute(mock, 2, 5)
	expectRecompute(mock, 3, 0)
	mock.ExpectCommit()

	saved, err := svc.Update(context.Background(), 7, &model.Review{PackageID: 2, UserID: 5, ReviewStar: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(2), saved.PackageID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewDeleteLocksReviewBeforePackage(t *testing.T) {
	svc, mock := newReviewService(t)

	mock.ExpectBegin()
	expectReviewLock(mock, 7, 3, time.Now())
	expectLock(mock, 3)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM reviews WHERE id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	expectRecompute(mock, 3, 0)
	mock.ExpectCommit()

	require.NoError(t, svc.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewDeleteMissing(t *testing.T) {
	svc, mock := newReviewService(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM reviews WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(reviewColumns))
	mock.ExpectRollback()

	err := svc.Delete(context.Background(), 8)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewUpdateLocksPackagesInAscendingOrder(t *testing.T) {
	svc, mock := newReviewService(t)
	now := time.Now()

	// отзыв переносится с пакета 9 на пакет 4: блокировка 4, затем 9
	mock.ExpectBegin()
	expectReviewLock(mock, 7, 9, now)
	expectLock(mock, 4)
	expectLock(mock, 9)
	mock.ExpectQuery("UPDATE reviews SET").
		WillReturnRows(sqlmock.NewRows(reviewColumns).AddRow(7, 4, 5, 3, "", "", now, now))
	expectRecompute(mock, 4, 3)
	expectRecompute(mock, 9, 0)
	mock.ExpectCommit()

	_, err := svc.Update(context.Background(), 7, &model.Review{PackageID: 4, UserID: 5, ReviewStar: 3})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
