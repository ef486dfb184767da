package service

import (
	"context"

	"github.com/buildtally/backend/internal/model"
)

// AuthService は登録・ログインに関するビジネスロジックのインターフェース
type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.User, error)
}
