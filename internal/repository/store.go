package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"

	"github.com/jmoiron/sqlx"
)

// Store - типовое хранилище одной таблицы. Строки таблицы отображаются на T по тегам db,
// columns перечисляет изменяемые клиентом колонки (без id и временных меток).
type Store[T any] struct {
	db      sqlx.ExtContext
	table   string
	entity  string
	columns []string
}

// NewStore создает хранилище таблицы table; entity используется в сообщениях об ошибках.
func NewStore[T any](db sqlx.ExtContext, table, entity string, columns ...string) *Store[T] {
	return &Store[T]{db: db, table: table, entity: entity, columns: columns}
}

// WithTx возвращает копию хранилища, работающую внутри транзакции.
func (s *Store[T]) WithTx(tx *sqlx.Tx) *Store[T] {
	c := *s
	c.db = tx
	return &c
}

// Entity возвращает отображаемое имя сущности.
func (s *Store[T]) Entity() string {
	return s.entity
}

// List возвращает все строки таблицы.
func (s *Store[T]) List(ctx context.Context) ([]T, error) {
	items := []T{}
	err := sqlx.SelectContext(ctx, s.db, &items, fmt.Sprintf("SELECT * FROM %s ORDER BY id", s.table))
	if err != nil {
		return nil, classify(err, s.entity, opRead)
	}
	return items, nil
}

// Get возвращает строку по ID.
func (s *Store[T]) Get(ctx context.Context, id int64) (*T, error) {
	var item T
	err := sqlx.GetContext(ctx, s.db, &item, fmt.Sprintf("SELECT * FROM %s WHERE id = $1", s.table), id)
	if err != nil {
		return nil, classify(err, s.entity, opRead)
	}
	return &item, nil
}

// ListBy возвращает строки, у которых column = value. Колонка должна быть известна хранилищу.
func (s *Store[T]) ListBy(ctx context.Context, column string, value any) ([]T, error) {
	if !slices.Contains(s.columns, column) {
		return nil, fmt.Errorf("%s: неизвестная колонка %q", s.table, column)
	}
	items := []T{}
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1 ORDER BY id", s.table, column)
	if err := sqlx.SelectContext(ctx, s.db, &items, query, value); err != nil {
		return nil, classify(err, s.entity, opRead)
	}
	return items, nil
}

// Create вставляет строку и возвращает ее в том виде, в каком она сохранена.
func (s *Store[T]) Create(ctx context.Context, item *T) (*T, error) {
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (:%s) RETURNING *",
		s.table, strings.Join(s.columns, ", "), strings.Join(s.columns, ", :"))
	q, args, err := sqlx.Named(query, item)
	if err != nil {
		return nil, fmt.Errorf("не удалось подготовить вставку в %s: %w", s.table, err)
	}

	var saved T
	if err := sqlx.GetContext(ctx, s.db, &saved, sqlx.Rebind(sqlx.DOLLAR, q), args...); err != nil {
		return nil, classify(err, s.entity, opWrite)
	}
	return &saved, nil
}

// Update перезаписывает изменяемые колонки строки id значениями item.
func (s *Store[T]) Update(ctx context.Context, id int64, item *T) (*T, error) {
	sets := make([]string, 0, len(s.columns))
	for _, c := range s.columns {
		sets = append(sets, c+" = :"+c)
	}
	query := fmt.Sprintf("UPDATE %s SET %s, updated_at = now() WHERE id = ? RETURNING *",
		s.table, strings.Join(sets, ", "))
	q, args, err := sqlx.Named(query, item)
	if err != nil {
		return nil, fmt.Errorf("не удалось подготовить обновление %s: %w", s.table, err)
	}
	args = append(args, id)

	var saved T
	if err := sqlx.GetContext(ctx, s.db, &saved, sqlx.Rebind(sqlx.DOLLAR, q), args...); err != nil {
		return nil, classify(err, s.entity, opWrite)
	}
	return &saved, nil
}

// Delete удаляет строку по ID.
func (s *Store[T]) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.table), id)
	if err != nil {
		return classify(err, s.entity, opDelete)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("не удалось получить число удаленных строк: %w", err)
	}
	if n == 0 {
		return apperr.NotFound(s.entity + " not found.")
	}
	return nil
}
