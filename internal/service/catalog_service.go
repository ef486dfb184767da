package service

import (
	"context"

	"github.com/buildtally/backend/internal/model"
)

// CatalogService はコストカタログ管理のビジネスロジックのインターフェース。
// カタログは全ユーザー共有の参照データで、書き込みは管理者のみ。
// コストアイテムの読み出しは呼び出し主体のカタログ区分に必ず絞られる。
type CatalogService interface {
	ListCategories(ctx context.Context) ([]*model.CostCategory, error)
	CreateCategory(ctx context.Context, actor Actor, category *model.CostCategory) error
	UpdateCategory(ctx context.Context, actor Actor, category *model.CostCategory) error
	DeleteCategory(ctx context.Context, actor Actor, id string) error

	ListSubElements(ctx context.Context, categoryID *string) ([]*model.CostSubElement, error)
	CreateSubElement(ctx context.Context, actor Actor, sub *model.CostSubElement) error
	UpdateSubElement(ctx context.Context, actor Actor, sub *model.CostSubElement) error
	DeleteSubElement(ctx context.Context, actor Actor, id string) error

	ListUnits(ctx context.Context) ([]*model.Unit, error)

	SearchCostItems(ctx context.Context, actor Actor, filter model.CostItemFilter) ([]*model.CostItem, error)
	GetCostItem(ctx context.Context, actor Actor, id string) (*model.CostItem, error)
	CreateCostItem(ctx context.Context, actor Actor, item *model.CostItem) error
	UpdateCostItem(ctx context.Context, actor Actor, item *model.CostItem) error
	DeleteCostItem(ctx context.Context, actor Actor, id string) error

	// ImportCostItems はコストアイテムを一括登録する。行ごとに検証し、
	// 不正な行はスキップして ImportError に積む。1行の失敗で全体を止めない。
	ImportCostItems(ctx context.Context, actor Actor, items []*model.CostItem) (*ImportResult, error)
}

// ImportResult は一括登録の結果サマリ
type ImportResult struct {
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// ImportError は一括登録で検証に落ちた行の報告。Row は 0 始まりの入力行番号。
type ImportError struct {
	Row     int    `json:"row"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}
