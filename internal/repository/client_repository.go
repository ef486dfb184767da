package repository

import (
	"context"

	"github.com/buildtally/backend/internal/model"
)

// ClientRepository は顧客永続化のインターフェース。
// すべての操作は所有ユーザーのスコープ内で行われる。
type ClientRepository interface {
	List(ctx context.Context, userID string, opts model.ClientListOptions) ([]*model.Client, error)
	GetByID(ctx context.Context, id, userID string) (*model.Client, error)
	FindByName(ctx context.Context, name, userID string) (*model.Client, error)
	Create(ctx context.Context, client *model.Client) error
	Update(ctx context.Context, client *model.Client) error
	Delete(ctx context.Context, id, userID string) error
}
