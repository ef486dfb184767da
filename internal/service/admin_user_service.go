package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/repository"
)

// AdminUserService provides admin-only user management operations.
type AdminUserService interface {
	ListUsers(ctx context.Context, actor Actor, limit, offset int) ([]*model.User, error)
	GetUser(ctx context.Context, actor Actor, id string) (*model.User, error)
	UpdateRole(ctx context.Context, actor Actor, id, role string) error
	SuspendUser(ctx context.Context, actor Actor, id string, suspend bool) error
}

type adminUserService struct {
	userRepo repository.UserRepository
}

// NewAdminUserService creates an AdminUserService.
func NewAdminUserService(userRepo repository.UserRepository) AdminUserService {
	return &adminUserService{userRepo: userRepo}
}

func (s *adminUserService) ListUsers(ctx context.Context, actor Actor, limit, offset int) ([]*model.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.userRepo.List(ctx, limit, offset)
}

func (s *adminUserService) GetUser(ctx context.Context, actor Actor, id string) (*model.User, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.userRepo.GetByID(ctx, id)
}

func (s *adminUserService) UpdateRole(ctx context.Context, actor Actor, id, role string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if !model.ValidRole(role) {
		return fmt.Errorf("%w: invalid role %q", ErrValidation, role)
	}
	// 自分自身の降格は許さない（管理者不在を防ぐ）
	if id == actor.UserID && role != model.RoleAdmin {
		return fmt.Errorf("%w: cannot change own admin role", ErrValidation)
	}
	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return err
	}
	slog.Info("user role updated", "user_id", id, "role", role, "by", actor.UserID)
	return nil
}

func (s *adminUserService) SuspendUser(ctx context.Context, actor Actor, id string, suspend bool) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if id == actor.UserID {
		return fmt.Errorf("%w: cannot suspend own account", ErrValidation)
	}
	if err := s.userRepo.SetSuspended(ctx, id, suspend); err != nil {
		return err
	}
	slog.Info("user suspension updated", "user_id", id, "suspended", suspend, "by", actor.UserID)
	return nil
}
