package service

import (
	"context"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/database"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"
	"github.com/anupgautam/trekkers-encounter-backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

// Параметры постраничной выдачи пакетов.
const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// PackageService содержит бизнес-логику туристических пакетов.
type PackageService struct {
	db       *sqlx.DB
	packages *repository.PackageRepository
}

// NewPackageService создает сервис пакетов.
func NewPackageService(db *sqlx.DB, packages *repository.PackageRepository) *PackageService {
	return &PackageService{db: db, packages: packages}
}

// Name возвращает имя сущности для сообщений об ошибках.
func (s *PackageService) Name() string {
	return s.packages.Entity()
}

// List возвращает пакеты по фильтру (категория, подкатегория, язык).
func (s *PackageService) List(ctx context.Context, f model.PackageFilter) ([]model.Package, error) {
	return s.packages.Find(ctx, f)
}

// Get возвращает пакет по ID.
func (s *PackageService) Get(ctx context.Context, id int64) (*model.Package, error) {
	return s.packages.Get(ctx, id)
}

// Page возвращает страницу пакетов. page < 1 считается первой страницей,
// limit по умолчанию 10 и не больше 100.
func (s *PackageService) Page(ctx context.Context, page, limit int) (*model.PackagePage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	data, total, err := s.packages.Page(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &model.PackagePage{
		Data: data,
		Pagination: model.Pagination{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

// Create сохраняет пакет; изображение должно быть уже загружено.
func (s *PackageService) Create(ctx context.Context, p *model.Package) (*model.Package, error) {
	if p.PackageImage == "" {
		return nil, apperr.Validation("Package image is required.")
	}
	return s.packages.Create(ctx, p)
}

// Update перезаписывает пакет. Рейтинг не меняется: он вычисляется из отзывов.
func (s *PackageService) Update(ctx context.Context, id int64, p *model.Package) (*model.Package, error) {
	return s.packages.Update(ctx, id, p)
}

// Delete удаляет пакет вместе со всеми дочерними строками в одной транзакции.
// Пакет с бронированиями удалить нельзя.
func (s *PackageService) Delete(ctx context.Context, id int64) error {
	return database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		packages := s.packages.WithTx(tx)
		if err := packages.LockForUpdate(ctx, id); err != nil {
			return err
		}
		n, err := packages.CountBookings(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("Package has bookings and cannot be deleted.")
		}
		return packages.DeleteCascade(ctx, id)
	})
}

// HomePackages возвращает пакеты главной страницы.
func (s *PackageService) HomePackages(ctx context.Context) ([]model.HomePackageDetail, error) {
	return s.packages.HomePackages(ctx)
}
