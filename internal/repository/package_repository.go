package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/jmoiron/sqlx"
)

// packageChildTables - таблицы, ссылающиеся на пакет, в порядке каскадного удаления.
var packageChildTables = []string{
	TableIncludeExcludePackage,
	TableFaqPackages,
	TableItineraries,
	TableEssentialInformation,
	TablePackageImages,
	TablePackageGalleries,
	TableReviews,
	TableHomePackages,
}

// PackageRepository обеспечивает доступ к данным туристических пакетов.
type PackageRepository struct {
	*Store[model.Package]
	db sqlx.ExtContext
}

// NewPackageRepository создает новый репозиторий пакетов.
func NewPackageRepository(db sqlx.ExtContext) *PackageRepository {
	return &PackageRepository{
		Store: NewStore[model.Package](db, TablePackages, "Package",
			"category_id", "sub_category_id", "sub_sub_category_id", "language_id", "title",
			"short_description", "description", "duration", "currency", "price", "package_image"),
		db: db,
	}
}

// WithTx возвращает копию репозитория внутри транзакции.
func (r *PackageRepository) WithTx(tx *sqlx.Tx) *PackageRepository {
	return &PackageRepository{Store: r.Store.WithTx(tx), db: tx}
}

// Find возвращает пакеты, подходящие под фильтр.
func (r *PackageRepository) Find(ctx context.Context, f model.PackageFilter) ([]model.Package, error) {
	where, args := filterClause(f)
	packages := []model.Package{}
	if err := sqlx.SelectContext(ctx, r.db, &packages, "SELECT * FROM packages"+where+" ORDER BY id", args...); err != nil {
		return nil, classify(err, "Package", opRead)
	}
	return packages, nil
}

// Page возвращает страницу пакетов и общее число пакетов.
func (r *PackageRepository) Page(ctx context.Context, limit, offset int) ([]model.Package, int, error) {
	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, "SELECT COUNT(*) FROM packages"); err != nil {
		return nil, 0, fmt.Errorf("не удалось посчитать пакеты: %w", err)
	}
	packages := []model.Package{}
	err := sqlx.SelectContext(ctx, r.db, &packages, "SELECT * FROM packages ORDER BY id LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, classify(err, "Package", opRead)
	}
	return packages, total, nil
}

// LockForUpdate блокирует строку пакета до конца транзакции.
func (r *PackageRepository) LockForUpdate(ctx context.Context, id int64) error {
	var locked int64
	err := sqlx.GetContext(ctx, r.db, &locked, "SELECT id FROM packages WHERE id = $1 FOR UPDATE", id)
	return classify(err, "Package", opRead)
}

// SetRating сохраняет вычисленный средний рейтинг пакета.
func (r *PackageRepository) SetRating(ctx context.Context, id int64, rating float64) error {
	_, err := r.db.ExecContext(ctx, "UPDATE packages SET overall_ratings = $1 WHERE id = $2", rating, id)
	if err != nil {
		return fmt.Errorf("не удалось обновить рейтинг пакета %d: %w", id, err)
	}
	return nil
}

// CountBookings возвращает число бронирований пакета.
func (r *PackageRepository) CountBookings(ctx context.Context, id int64) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.db, &n, "SELECT COUNT(*) FROM package_bookings WHERE package_id = $1", id); err != nil {
		return 0, fmt.Errorf("не удалось посчитать бронирования пакета %d: %w", id, err)
	}
	return n, nil
}

// DeleteCascade удаляет все дочерние строки пакета и сам пакет.
// Вызывается внутри транзакции, после LockForUpdate.
func (r *PackageRepository) DeleteCascade(ctx context.Context, id int64) error {
	for _, table := range packageChildTables {
		if _, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE package_id = $1", table), id); err != nil {
			return fmt.Errorf("не удалось удалить строки %s пакета %d: %w", table, id, err)
		}
	}
	return r.Store.Delete(ctx, id)
}

// HomePackages возвращает пакеты главной страницы вместе с данными пакетов.
func (r *PackageRepository) HomePackages(ctx context.Context) ([]model.HomePackageDetail, error) {
	items := []model.HomePackageDetail{}
	err := sqlx.SelectContext(ctx, r.db, &items,
		`SELECT hp.id AS home_package_id, p.*
		 FROM home_packages hp
		 JOIN packages p ON hp.package_id = p.id
		 ORDER BY hp.id`)
	if err != nil {
		return nil, classify(err, "Home Package", opRead)
	}
	return items, nil
}

func filterClause(f model.PackageFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(column string, v int64) {
		if v == 0 {
			return
		}
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("category_id", f.CategoryID)
	add("sub_category_id", f.SubCategoryID)
	add("sub_sub_category_id", f.SubSubCategoryID)
	add("language_id", f.LanguageID)

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
