package repository

import (
	"context"

	"github.com/buildtally/backend/internal/model"
)

// ActualRepository は実費レコード永続化のインターフェース
type ActualRepository interface {
	ListByProjectID(ctx context.Context, projectID string) ([]*model.ActualCostRecord, error)
	GetByID(ctx context.Context, id string) (*model.ActualCostRecord, error)
	Create(ctx context.Context, record *model.ActualCostRecord) error
	Update(ctx context.Context, record *model.ActualCostRecord) error
	Delete(ctx context.Context, id string) error
}
