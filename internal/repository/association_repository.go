package repository

import (
	"context"
	"fmt"

	"github.com/anupgautam/trekkers-encounter-backend/internal/model"

	"github.com/jmoiron/sqlx"
)

// AssociationRepository работает с таблицей связей пакет-потомок
// (faq_packages, include_exclude_packages) с уникальной парой (package_id, childColumn).
type AssociationRepository struct {
	db          sqlx.ExtContext
	table       string
	childColumn string
	entity      string
}

// NewAssociationRepository создает репозиторий связей для таблицы table.
func NewAssociationRepository(db sqlx.ExtContext, table, childColumn, entity string) *AssociationRepository {
	return &AssociationRepository{db: db, table: table, childColumn: childColumn, entity: entity}
}

// NewFaqPackageRepository - связи FAQ с пакетами.
func NewFaqPackageRepository(db sqlx.ExtContext) *AssociationRepository {
	return NewAssociationRepository(db, TableFaqPackages, "faq_id", "Faq Package")
}

// NewIncludeExcludePackageRepository - связи пунктов "включено/не включено" с пакетами.
func NewIncludeExcludePackageRepository(db sqlx.ExtContext) *AssociationRepository {
	return NewAssociationRepository(db, TableIncludeExcludePackage, "include_exclude_id", "Include Exclude Package")
}

// WithTx возвращает копию репозитория внутри транзакции.
func (r *AssociationRepository) WithTx(tx *sqlx.Tx) *AssociationRepository {
	c := *r
	c.db = tx
	return &c
}

// ChildColumn возвращает имя колонки потомка.
func (r *AssociationRepository) ChildColumn() string {
	return r.childColumn
}

// ChildIDs возвращает текущий набор потомков пакета.
func (r *AssociationRepository) ChildIDs(ctx context.Context, packageID int64) ([]int64, error) {
	ids := []int64{}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE package_id = $1 ORDER BY id", r.childColumn, r.table)
	if err := sqlx.SelectContext(ctx, r.db, &ids, query, packageID); err != nil {
		return nil, classify(err, r.entity, opRead)
	}
	return ids, nil
}

// Members возвращает строки связей пакета.
func (r *AssociationRepository) Members(ctx context.Context, packageID int64) ([]model.Link, error) {
	links := []model.Link{}
	query := fmt.Sprintf("SELECT id, package_id, %s AS child_id FROM %s WHERE package_id = $1 ORDER BY id", r.childColumn, r.table)
	if err := sqlx.SelectContext(ctx, r.db, &links, query, packageID); err != nil {
		return nil, classify(err, r.entity, opRead)
	}
	return links, nil
}

// Remove удаляет связь пакета с потомком.
func (r *AssociationRepository) Remove(ctx context.Context, packageID, childID int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE package_id = $1 AND %s = $2", r.table, r.childColumn)
	if _, err := r.db.ExecContext(ctx, query, packageID, childID); err != nil {
		return classify(err, r.entity, opDelete)
	}
	return nil
}

// Upsert добавляет связь; уже существующая пара не изменяется.
func (r *AssociationRepository) Upsert(ctx context.Context, packageID, childID int64) error {
	query := fmt.Sprintf("INSERT INTO %s (package_id, %s) VALUES ($1, $2) ON CONFLICT (package_id, %s) DO NOTHING",
		r.table, r.childColumn, r.childColumn)
	if _, err := r.db.ExecContext(ctx, query, packageID, childID); err != nil {
		return classify(err, r.entity, opWrite)
	}
	return nil
}
