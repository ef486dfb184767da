package repository

import (
	"context"

	"github.com/buildtally/backend/internal/model"
)

// EstimateRepository は見積明細永続化のインターフェース。
// ListByProjectID は作成順（created_at, id）で返すこと。集計のカテゴリ内
// 並び順が明細の挿入順に依存するため。
type EstimateRepository interface {
	ListByProjectID(ctx context.Context, projectID string) ([]*model.EstimateLineItem, error)
	GetByID(ctx context.Context, id string) (*model.EstimateLineItem, error)
	Create(ctx context.Context, line *model.EstimateLineItem) error
	Update(ctx context.Context, line *model.EstimateLineItem) error
	Delete(ctx context.Context, id string) error
}
