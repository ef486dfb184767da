package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildtally/backend/internal/estimation"
	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/repository"
)

// catalogSource は CatalogRepository を estimation.Catalog に適合させるアダプタ。
// リポジトリの ErrNotFound をエンジンの ErrCostItemNotFound に読み替えることで、
// 参照切れ明細を skipped 扱いにする。
type catalogSource struct {
	repo repository.CatalogRepository
}

var _ estimation.Catalog = (*catalogSource)(nil)

func (c *catalogSource) CostItem(ctx context.Context, id string) (*model.CostItem, error) {
	item, err := c.repo.GetCostItem(ctx, id)
	return item, mapNotFound(err)
}

func (c *catalogSource) SubElement(ctx context.Context, id string) (*model.CostSubElement, error) {
	sub, err := c.repo.GetSubElement(ctx, id)
	return sub, mapNotFound(err)
}

func (c *catalogSource) Category(ctx context.Context, id string) (*model.CostCategory, error) {
	cat, err := c.repo.GetCategory(ctx, id)
	return cat, mapNotFound(err)
}

func (c *catalogSource) Unit(ctx context.Context, id string) (*model.Unit, error) {
	u, err := c.repo.GetUnit(ctx, id)
	return u, mapNotFound(err)
}

func mapNotFound(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return estimation.ErrCostItemNotFound
	}
	return fmt.Errorf("catalog lookup: %w", err)
}

// newComputeCatalog は1回の計算用のキャッシュ付きカタログを組み立てる
func newComputeCatalog(repo repository.CatalogRepository) estimation.Catalog {
	return estimation.NewCachedCatalog(&catalogSource{repo: repo})
}
