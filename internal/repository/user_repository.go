package repository

import (
	"context"

	"github.com/buildtally/backend/internal/model"
)

// UserRepository はユーザー永続化のインターフェース
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]*model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateRole(ctx context.Context, id, role string) error
	SetSuspended(ctx context.Context, id string, suspended bool) error
}
