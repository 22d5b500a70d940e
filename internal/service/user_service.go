package service

import (
	"context"

	"github.com/anupgautam/trekkers-encounter-backend/internal/apperr"
	"github.com/anupgautam/trekkers-encounter-backend/internal/model"
	"github.com/anupgautam/trekkers-encounter-backend/internal/repository"
)

// UserService предоставляет операции с профилями пользователей.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService создает новый сервис пользователей.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List возвращает пользователей; verified == nil - всех.
func (s *UserService) List(ctx context.Context, verified *bool) ([]model.User, error) {
	return s.userRepo.ListByVerified(ctx, verified)
}

// Get возвращает пользователя по ID.
func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.Get(ctx, id)
}

// Update меняет профиль. Менять чужой профиль может только администратор.
func (s *UserService) Update(ctx context.Context, actor *Claims, id int64, upd model.UserUpdate) (*model.User, error) {
	if actor == nil || (actor.UserID != id && !actor.IsAdmin) {
		return nil, apperr.Forbidden("You can only update your own profile.")
	}
	if upd.FirstName == nil && upd.LastName == nil && upd.Address == nil && upd.ContactNo == nil {
		return nil, apperr.Validation("No fields to update.")
	}
	return s.userRepo.UpdateProfile(ctx, id, upd)
}

// SetAdmin назначает или снимает права администратора.
func (s *UserService) SetAdmin(ctx context.Context, id int64, isAdmin bool) (*model.User, error) {
	return s.userRepo.SetAdmin(ctx, id, isAdmin)
}
