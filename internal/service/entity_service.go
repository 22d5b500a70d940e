package service

import (
	"context"
	"fmt"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/database"
	"github.com/anupgautam/trekkers-encounter-backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

// EntityService реализует единый CRUD-контракт для простых сущностей каталога и контента.
type EntityService[T any] struct {
	db    *sqlx.DB
	store *repository.Store[T]
}

// NewEntityService создает сервис поверх хранилища таблицы.
func NewEntityService[T any](db *sqlx.DB, store *repository.Store[T]) *EntityService[T] {
	return &EntityService[T]{db: db, store: store}
}

// Name возвращает отображаемое имя сущности ("Package Image", "Faq" и т.д.).
func (s *EntityService[T]) Name() string {
	return s.store.Entity()
}

// List возвращает все строки.
func (s *EntityService[T]) List(ctx context.Context) ([]T, error) {
	return s.store.List(ctx)
}

// Get возвращает строку по ID.
func (s *EntityService[T]) Get(ctx context.Context, id int64) (*T, error) {
	return s.store.Get(ctx, id)
}

// ListBy возвращает строки по значению родительской колонки (package_id, language_id, ...).
func (s *EntityService[T]) ListBy(ctx context.Context, column string, value int64) ([]T, error) {
	return s.store.ListBy(ctx, column, value)
}

// Create вставляет одну строку.
func (s *EntityService[T]) Create(ctx context.Context, item *T) (*T, error) {
	return s.store.Create(ctx, item)
}

// CreateMany вставляет все строки в одной транзакции: либо все, либо ни одной.
func (s *EntityService[T]) CreateMany(ctx context.Context, items []T) ([]T, error) {
	if len(items) == 0 {
		return nil, apperr.Validation(fmt.Sprintf("No %s items provided.", s.Name()))
	}
	saved := make([]T, 0, len(items))
	err := database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		store := s.store.WithTx(tx)
		for i := range items {
			row, err := store.Create(ctx, &items[i])
			if err != nil {
				return err
			}
			saved = append(saved, *row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Update перезаписывает строку по ID.
func (s *EntityService[T]) Update(ctx context.Context, id int64, item *T) (*T, error) {
	return s.store.Update(ctx, id, item)
}

// Delete удаляет строку по ID.
func (s *EntityService[T]) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
