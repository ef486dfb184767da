package repository

import (
	"context"

	"github.com/buildtally/backend/internal/model"
)

// ContractorRepository は施工業者永続化のインターフェース。
// ClientRepository と同様、所有ユーザーのスコープ内で操作する。
type ContractorRepository interface {
	List(ctx context.Context, userID string, opts model.ContractorListOptions) ([]*model.Contractor, error)
	GetByID(ctx context.Context, id, userID string) (*model.Contractor, error)
	Create(ctx context.Context, contractor *model.Contractor) error
	Update(ctx context.Context, contractor *model.Contractor) error
	Delete(ctx context.Context, id, userID string) error
}
