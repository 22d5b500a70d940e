package service

import (
	"context"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/database"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"
	"github.com/anupgautam/trekkers-encounter-backend/internal/repository"

	"github.com/jmoiron/sqlx"
)

// AssociationService синхронизирует набор потомков пакета (FAQ, пункты включено/не включено)
// с желаемым набором, присланным клиентом.
type AssociationService struct {
	db       *sqlx.DB
	packages *repository.PackageRepository
	links    *repository.AssociationRepository
}

// NewAssociationService создает сервис синхронизации для таблицы связей links.
func NewAssociationService(db *sqlx.DB, packages *repository.PackageRepository, links *repository.AssociationRepository) *AssociationService {
	return &AssociationService{db: db, packages: packages, links: links}
}

// ChildColumn возвращает имя колонки потомка (faq_id, include_exclude_id).
func (s *AssociationService) ChildColumn() string {
	return s.links.ChildColumn()
}

// Members возвращает текущие связи пакета.
func (s *AssociationService) Members(ctx context.Context, packageID int64) ([]model.Link, error) {
	return s.links.Members(ctx, packageID)
}

// Reconcile приводит набор потомков пакета к desired. packageID может быть 0,
// тогда пакет берется из первого элемента. Все изменения выполняются в одной транзакции
// под блокировкой строки пакета, поэтому параллельные синхронизации одного пакета
// выполняются последовательно.
func (s *AssociationService) Reconcile(ctx context.Context, packageID int64, desired []model.Link) (*model.ReconcileResult, error) {
	parent, err := resolveParent(packageID, desired)
	if err != nil {
		return nil, err
	}
	want := make([]int64, 0, len(desired))
	for _, item := range desired {
		if item.ChildID <= 0 {
			return nil, apperr.Validation("Package ID and child ID are required for every item.")
		}
		want = append(want, item.ChildID)
	}

	result := &model.ReconcileResult{PackageID: parent}
	err = database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		if err := s.packages.WithTx(tx).LockForUpdate(ctx, parent); err != nil {
			return err
		}
		links := s.links.WithTx(tx)

		existing, err := links.ChildIDs(ctx, parent)
		if err != nil {
			return err
		}
		toDelete, toAdd := diffMembership(existing, want)
		for _, childID := range toDelete {
			if err := links.Remove(ctx, parent, childID); err != nil {
				return err
			}
		}
		for _, childID := range toAdd {
			if err := links.Upsert(ctx, parent, childID); err != nil {
				return err
			}
		}

		members, err := links.Members(ctx, parent)
		if err != nil {
			return err
		}
		result.Members = members
		result.Added = len(toAdd)
		result.Removed = len(toDelete)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveParent определяет пакет синхронизации и проверяет, что все элементы относятся к нему.
func resolveParent(packageID int64, desired []model.Link) (int64, error) {
	parent := packageID
	if parent == 0 && len(desired) > 0 {
		parent = desired[0].PackageID
	}
	if parent <= 0 {
		return 0, apperr.Validation("Package ID is required.")
	}
	for _, item := range desired {
		if item.PackageID != 0 && item.PackageID != parent {
			return 0, apperr.Validation("All items must belong to the same package.")
		}
	}
	return parent, nil
}

// diffMembership возвращает потомков, которых нужно удалить (есть в existing, нет в desired)
// и добавить (есть в desired, нет в existing). Повторы в desired схлопываются, порядок сохраняется.
func diffMembership(existing, desired []int64) (toDelete, toAdd []int64) {
	want := make(map[int64]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}
	have := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		have[id] = struct{}{}
		if _, ok := want[id]; !ok {
			toDelete = append(toDelete, id)
		}
	}
	for _, id := range desired {
		if _, ok := have[id]; ok {
			continue
		}
		have[id] = struct{}{}
		toAdd = append(toAdd, id)
	}
	return toDelete, toAdd
}
