package repository

import (
	"context"

	"github.com/buildtally/backend/internal/model"
)

// CatalogRepository はコストカタログ（カテゴリ・サブ要素・単位・コストアイテム）
// 永続化のインターフェース。カタログは見積計算中は不変の参照データとして扱われる。
type CatalogRepository interface {
	// Categories
	ListCategories(ctx context.Context) ([]*model.CostCategory, error)
	GetCategory(ctx context.Context, id string) (*model.CostCategory, error)
	CreateCategory(ctx context.Context, category *model.CostCategory) error
	UpdateCategory(ctx context.Context, category *model.CostCategory) error
	DeleteCategory(ctx context.Context, id string) error

	// Sub-elements
	ListSubElements(ctx context.Context, categoryID *string) ([]*model.CostSubElement, error)
	GetSubElement(ctx context.Context, id string) (*model.CostSubElement, error)
	CreateSubElement(ctx context.Context, sub *model.CostSubElement) error
	UpdateSubElement(ctx context.Context, sub *model.CostSubElement) error
	DeleteSubElement(ctx context.Context, id string) error

	// Units
	ListUnits(ctx context.Context) ([]*model.Unit, error)
	GetUnit(ctx context.Context, id string) (*model.Unit, error)

	// Cost items
	ListCostItems(ctx context.Context, filter model.CostItemFilter) ([]*model.CostItem, error)
	GetCostItem(ctx context.Context, id string) (*model.CostItem, error)
	CreateCostItem(ctx context.Context, item *model.CostItem) error
	UpdateCostItem(ctx context.Context, item *model.CostItem) error
	DeleteCostItem(ctx context.Context, id string) error
}
