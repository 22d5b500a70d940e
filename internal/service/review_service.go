package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/database"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"
	"github.com/anupgautam/trekkers-encounter-backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

const mostReviewedLimit = 5

// ReviewService ведет отзывы и поддерживает средний рейтинг пакета (overall_ratings).
// Запись отзыва и пересчет рейтинга выполняются в одной транзакции под блокировкой пакета.
type ReviewService struct {
	db       *sqlx.DB
	reviews  *repository.ReviewRepository
	packages *repository.PackageRepository
}

// NewReviewService создает сервис отзывов.
func NewReviewService(db *sqlx.DB, reviews *repository.ReviewRepository, packages *repository.PackageRepository) *ReviewService {
	return &ReviewService{db: db, reviews: reviews, packages: packages}
}

// List возвращает все отзывы.
func (s *ReviewService) List(ctx context.Context) ([]model.Review, error) {
	return s.reviews.List(ctx)
}

// Get возвращает отзыв по ID.
func (s *ReviewService) Get(ctx context.Context, id int64) (*model.Review, error) {
	return s.reviews.Get(ctx, id)
}

// ListByPackage возвращает отзывы пакета.
func (s *ReviewService) ListByPackage(ctx context.Context, packageID int64) ([]model.Review, error) {
	return s.reviews.ListBy(ctx, "package_id", packageID)
}

// MostReviewed возвращает пакеты с наибольшим числом отзывов и сами отзывы.
func (s *ReviewService) MostReviewed(ctx context.Context) (*model.MostReviewed, error) {
	counts, err := s.reviews.MostReviewed(ctx, mostReviewedLimit)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(counts))
	for _, c := range counts {
		ids = append(ids, c.PackageID)
	}
	reviews, err := s.reviews.ListByPackages(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &model.MostReviewed{Packages: counts, Reviews: reviews}, nil
}

// Create сохраняет отзыв и пересчитывает рейтинг пакета.
// Повторный отзыв того же пользователя на тот же пакет отклоняется.
func (s *ReviewService) Create(ctx context.Context, r *model.Review) (*model.Review, error) {
	if err := validateReview(r); err != nil {
		return nil, err
	}
	var saved *model.Review
	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		packages := s.packages.WithTx(tx)
		if err := packages.LockForUpdate(ctx, r.PackageID); err != nil {
			return err
		}
		var err error
		saved, err = s.reviews.WithTx(tx).Create(ctx, r)
		if err != nil {
			if apperr.Is(err, apperr.KindConflict) {
				return apperr.Wrap(apperr.KindConflict, "You have already reviewed this package.", err)
			}
			return err
		}
		return s.recompute(ctx, tx, r.PackageID)
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Update перезаписывает отзыв. Если отзыв перенесен на другой пакет,
// пересчитываются оба пакета.
func (s *ReviewService) Update(ctx context.Context, id int64, r *model.Review) (*model.Review, error) {
	if err := validateReview(r); err != nil {
		return nil, err
	}
	var saved *model.Review
	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		reviews := s.reviews.WithTx(tx)
		current, err := reviews.LockForUpdate(ctx, id)
		if err != nil {
			return err
		}
		affected := []int64{r.PackageID}
		if current.PackageID != r.PackageID {
			affected = append(affected, current.PackageID)
		}
		if err := s.lockPackages(ctx, tx, affected); err != nil {
			return err
		}

		saved, err = reviews.Update(ctx, id, r)
		if err != nil {
			if apperr.Is(err, apperr.KindConflict) {
				return apperr.Wrap(apperr.KindConflict, "You have already reviewed this package.", err)
			}
			return err
		}
		for _, pid := range affected {
			if err := s.recompute(ctx, tx, pid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Delete удаляет отзыв и пересчитывает рейтинг его пакета.
func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		reviews := s.reviews.WithTx(tx)
		current, err := reviews.LockForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := s.lockPackages(ctx, tx, []int64{current.PackageID}); err != nil {
			return err
		}
		if err := reviews.Delete(ctx, id); err != nil {
			return err
		}
		return s.recompute(ctx, tx, current.PackageID)
	})
}

// lockPackages блокирует пакеты в порядке возрастания ID.
// Порядок блокировок везде один: строка отзыва, затем пакеты.
func (s *ReviewService) lockPackages(ctx context.Context, tx *sqlx.Tx, ids []int64) error {
	slices.Sort(ids)
	packages := s.packages.WithTx(tx)
	for _, pid := range ids {
		if err := packages.LockForUpdate(ctx, pid); err != nil {
			return err
		}
	}
	return nil
}

// recompute записывает в пакет среднюю оценку его отзывов (0, если отзывов нет).
func (s *ReviewService) recompute(ctx context.Context, tx *sqlx.Tx, packageID int64) error {
	avg, err := s.reviews.WithTx(tx).AverageStars(ctx, packageID)
	if err != nil {
		return err
	}
	if err := s.packages.WithTx(tx).SetRating(ctx, packageID, avg); err != nil {
		return fmt.Errorf("не удалось пересчитать рейтинг: %w", err)
	}
	return nil
}

func validateReview(r *model.Review) error {
	if r.PackageID <= 0 || r.UserID <= 0 {
		return apperr.Validation("Package ID and User ID are required.")
	}
	if r.ReviewStar < 1 || r.ReviewStar > 5 {
		return apperr.Validation("Review star must be between 1 and 5.")
	}
	return nil
}
