package repository

import (
	"context"
	"fmt"

	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ReviewRepository обеспечивает доступ к отзывам и агрегатам по ним.
type ReviewRepository struct {
	*Store[model.Review]
	db sqlx.ExtContext
}

// NewReviewRepository создает новый репозиторий отзывов.
func NewReviewRepository(db sqlx.ExtContext) *ReviewRepository {
	return &ReviewRepository{
		Store: NewStore[model.Review](db, TableReviews, "Review",
			"package_id", "user_id", "review_star", "review_title", "review_description"),
		db: db,
	}
}

// WithTx возвращает копию репозитория внутри транзакции.
func (r *ReviewRepository) WithTx(tx *sqlx.Tx) *ReviewRepository {
	return &ReviewRepository{Store: r.Store.WithTx(tx), db: tx}
}

// AverageStars возвращает среднюю оценку пакета (0, если отзывов нет).
func (r *ReviewRepository) AverageStars(ctx context.Context, packageID int64) (float64, error) {
	var avg float64
	err := sqlx.GetContext(ctx, r.db, &avg,
		"SELECT COALESCE(AVG(review_star), 0)::float8 FROM reviews WHERE package_id = $1", packageID)
	if err != nil {
		return 0, fmt.Errorf("не удалось вычислить рейтинг пакета %d: %w", packageID, err)
	}
	return avg, nil
}

// LockForUpdate читает отзыв и блокирует его строку до конца транзакции.
// Изменение и удаление отзыва сначала блокируют отзыв, затем пакеты.
func (r *ReviewRepository) LockForUpdate(ctx context.Context, id int64) (*model.Review, error) {
	var review model.Review
	err := sqlx.GetContext(ctx, r.db, &review, "SELECT * FROM reviews WHERE id = $1 FOR UPDATE", id)
	if err != nil {
		return nil, classify(err, "Review", opRead)
	}
	return &review, nil
}

// MostReviewed возвращает limit пакетов с наибольшим числом отзывов.
func (r *ReviewRepository) MostReviewed(ctx context.Context, limit int) ([]model.ReviewCount, error) {
	counts := []model.ReviewCount{}
	err := sqlx.SelectContext(ctx, r.db, &counts,
		`SELECT package_id, COUNT(id) AS total_reviews
		 FROM reviews
		 GROUP BY package_id
		 ORDER BY total_reviews DESC, package_id
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("не удалось получить самые обсуждаемые пакеты: %w", err)
	}
	return counts, nil
}

// ListByPackages возвращает отзывы указанных пакетов.
func (r *ReviewRepository) ListByPackages(ctx context.Context, packageIDs []int64) ([]model.Review, error) {
	reviews := []model.Review{}
	if len(packageIDs) == 0 {
		return reviews, nil
	}
	err := sqlx.SelectContext(ctx, r.db, &reviews,
		"SELECT * FROM reviews WHERE package_id = ANY($1) ORDER BY id", pq.Array(packageIDs))
	if err != nil {
		return nil, classify(err, "Review", opRead)
	}
	return reviews, nil
}
