package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/repository"
)

var one = decimal.NewFromInt(1)

// CatalogServiceImpl は CatalogService の実装
type CatalogServiceImpl struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService は CatalogServiceImpl を生成する（DI: CatalogRepository を注入）
func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &CatalogServiceImpl{catalogRepo: catalogRepo}
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

func (s *CatalogServiceImpl) ListCategories(ctx context.Context) ([]*model.CostCategory, error) {
	return s.catalogRepo.ListCategories(ctx)
}

func (s *CatalogServiceImpl) CreateCategory(ctx context.Context, actor Actor, category *model.CostCategory) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if category.Code == "" || category.Name == "" {
		return fmt.Errorf("%w: code and name are required", ErrValidation)
	}
	return s.catalogRepo.CreateCategory(ctx, category)
}

func (s *CatalogServiceImpl) UpdateCategory(ctx context.Context, actor Actor, category *model.CostCategory) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if category.Code == "" || category.Name == "" {
		return fmt.Errorf("%w: code and name are required", ErrValidation)
	}
	return s.catalogRepo.UpdateCategory(ctx, category)
}

func (s *CatalogServiceImpl) DeleteCategory(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return s.catalogRepo.DeleteCategory(ctx, id)
}

// ---------------------------------------------------------------------------
// Sub-elements
// ---------------------------------------------------------------------------

func (s *CatalogServiceImpl) ListSubElements(ctx context.Context, categoryID *string) ([]*model.CostSubElement, error) {
	return s.catalogRepo.ListSubElements(ctx, categoryID)
}

func (s *CatalogServiceImpl) CreateSubElement(ctx context.Context, actor Actor, sub *model.CostSubElement) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.validateSubElement(ctx, sub); err != nil {
		return err
	}
	return s.catalogRepo.CreateSubElement(ctx, sub)
}

func (s *CatalogServiceImpl) UpdateSubElement(ctx context.Context, actor Actor, sub *model.CostSubElement) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.validateSubElement(ctx, sub); err != nil {
		return err
	}
	return s.catalogRepo.UpdateSubElement(ctx, sub)
}

func (s *CatalogServiceImpl) DeleteSubElement(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return s.catalogRepo.DeleteSubElement(ctx, id)
}

func (s *CatalogServiceImpl) validateSubElement(ctx context.Context, sub *model.CostSubElement) error {
	if sub.Code == "" || sub.Name == "" {
		return fmt.Errorf("%w: code and name are required", ErrValidation)
	}
	if _, err := s.catalogRepo.GetCategory(ctx, sub.CategoryID); err != nil {
		return fmt.Errorf("%w: unknown category", ErrValidation)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Units
// ---------------------------------------------------------------------------

func (s *CatalogServiceImpl) ListUnits(ctx context.Context) ([]*model.Unit, error) {
	return s.catalogRepo.ListUnits(ctx)
}

// ---------------------------------------------------------------------------
// Cost items
// ---------------------------------------------------------------------------

// SearchCostItems はコストアイテムを検索する。
// カタログ区分はフィルタの指定を無視して呼び出し主体の区分で強制される。
func (s *CatalogServiceImpl) SearchCostItems(ctx context.Context, actor Actor, filter model.CostItemFilter) ([]*model.CostItem, error) {
	filter.DatabaseType = actor.DatabaseType()
	return s.catalogRepo.ListCostItems(ctx, filter)
}

// GetCostItem は ID でコストアイテムを取得する。
// 他区分のアイテムは存在しないものとして扱う。
func (s *CatalogServiceImpl) GetCostItem(ctx context.Context, actor Actor, id string) (*model.CostItem, error) {
	item, err := s.catalogRepo.GetCostItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.DatabaseType != actor.DatabaseType() {
		return nil, repository.ErrNotFound
	}
	return item, nil
}

func (s *CatalogServiceImpl) CreateCostItem(ctx context.Context, actor Actor, item *model.CostItem) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.validateCostItem(ctx, item); err != nil {
		return err
	}
	return s.catalogRepo.CreateCostItem(ctx, item)
}

func (s *CatalogServiceImpl) UpdateCostItem(ctx context.Context, actor Actor, item *model.CostItem) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if err := s.validateCostItem(ctx, item); err != nil {
		return err
	}
	return s.catalogRepo.UpdateCostItem(ctx, item)
}

// DeleteCostItem はコストアイテムを削除する。参照している見積明細は
// 削除されず、以後の集計で skipped として報告される。
func (s *CatalogServiceImpl) DeleteCostItem(ctx context.Context, actor Actor, id string) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	return s.catalogRepo.DeleteCostItem(ctx, id)
}

// ImportCostItems はコストアイテムを一括登録する
func (s *CatalogServiceImpl) ImportCostItems(ctx context.Context, actor Actor, items []*model.CostItem) (*ImportResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	result := &ImportResult{Errors: []ImportError{}}
	for i, item := range items {
		if err := s.validateCostItem(ctx, item); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{Row: i, Code: item.Code, Message: err.Error()})
			continue
		}
		if err := s.catalogRepo.CreateCostItem(ctx, item); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{Row: i, Code: item.Code, Message: err.Error()})
			continue
		}
		result.Imported++
	}
	slog.Info("cost item import finished", "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

func (s *CatalogServiceImpl) validateCostItem(ctx context.Context, item *model.CostItem) error {
	if item.Code == "" || item.Description == "" {
		return fmt.Errorf("%w: code and description are required", ErrValidation)
	}
	if !model.ValidDatabaseType(item.DatabaseType) {
		return fmt.Errorf("%w: invalid database_type %q", ErrValidation, item.DatabaseType)
	}
	if item.MaterialCost.Sign() < 0 || item.ManagementCost.Sign() < 0 || item.ContractorCost.Sign() < 0 {
		return fmt.Errorf("%w: costs cannot be negative", ErrValidation)
	}
	// 廃材率は掛け率として保持する（5% のロスなら 1.05）
	if item.WasteFactor.IsZero() {
		item.WasteFactor = one
	}
	if item.WasteFactor.LessThan(one) {
		return fmt.Errorf("%w: waste_factor must be >= 1.0", ErrValidation)
	}
	if item.Currency == "" {
		item.Currency = "GBP"
	}
	if _, err := s.catalogRepo.GetSubElement(ctx, item.SubElementID); err != nil {
		return fmt.Errorf("%w: unknown sub_element_id %q", ErrValidation, item.SubElementID)
	}
	if _, err := s.catalogRepo.GetUnit(ctx, item.UnitID); err != nil {
		return fmt.Errorf("%w: unknown unit_id %q", ErrValidation, item.UnitID)
	}
	return nil
}
