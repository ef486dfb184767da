package estimation

import (
	"context"

	"github.com/buildtally/backend/internal/model"
)

// Catalog はエンジンが参照するカタログ検索のインターフェース。
// 存在しない ID に対しては ErrCostItemNotFound を返すこと。
// 実装は計算開始前に読み取ったスナップショットに対して動作する想定。
type Catalog interface {
	CostItem(ctx context.Context, id string) (*model.CostItem, error)
	SubElement(ctx context.Context, id string) (*model.CostSubElement, error)
	Category(ctx context.Context, id string) (*model.CostCategory, error)
	Unit(ctx context.Context, id string) (*model.Unit, error)
}

// CachedCatalog は1回の計算の間だけカタログ検索結果をメモするリードスルーキャッシュ。
// 同じ CostItem を参照する明細が多いプロジェクトで検索を1回に抑える。
// 計算をまたいで保持してはならない（カタログ編集が反映されなくなる）。
type CachedCatalog struct {
	inner       Catalog
	costItems   map[string]*model.CostItem
	subElements map[string]*model.CostSubElement
	categories  map[string]*model.CostCategory
	units       map[string]*model.Unit
}

// NewCachedCatalog は CachedCatalog を生成する
func NewCachedCatalog(inner Catalog) *CachedCatalog {
	return &CachedCatalog{
		inner:       inner,
		costItems:   make(map[string]*model.CostItem),
		subElements: make(map[string]*model.CostSubElement),
		categories:  make(map[string]*model.CostCategory),
		units:       make(map[string]*model.Unit),
	}
}

func (c *CachedCatalog) CostItem(ctx context.Context, id string) (*model.CostItem, error) {
	if item, ok := c.costItems[id]; ok {
		return item, nil
	}
	item, err := c.inner.CostItem(ctx, id)
	if err != nil {
		return nil, err
	}
	c.costItems[id] = item
	return item, nil
}

func (c *CachedCatalog) SubElement(ctx context.Context, id string) (*model.CostSubElement, error) {
	if sub, ok := c.subElements[id]; ok {
		return sub, nil
	}
	sub, err := c.inner.SubElement(ctx, id)
	if err != nil {
		return nil, err
	}
	c.subElements[id] = sub
	return sub, nil
}

func (c *CachedCatalog) Category(ctx context.Context, id string) (*model.CostCategory, error) {
	if cat, ok := c.categories[id]; ok {
		return cat, nil
	}
	cat, err := c.inner.Category(ctx, id)
	if err != nil {
		return nil, err
	}
	c.categories[id] = cat
	return cat, nil
}

func (c *CachedCatalog) Unit(ctx context.Context, id string) (*model.Unit, error) {
	if u, ok := c.units[id]; ok {
		return u, nil
	}
	u, err := c.inner.Unit(ctx, id)
	if err != nil {
		return nil, err
	}
	c.units[id] = u
	return u, nil
}
