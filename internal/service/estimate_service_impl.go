package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/buildtally/backend/internal/estimation"
	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/repository"
)

// EstimateServiceImpl は EstimateService の実装
type EstimateServiceImpl struct {
	projectRepo  repository.ProjectRepository
	estimateRepo repository.EstimateRepository
	catalogRepo  repository.CatalogRepository
}

// NewEstimateService は EstimateServiceImpl を生成する（DI: 各リポジトリを注入）
func NewEstimateService(
	projectRepo repository.ProjectRepository,
	estimateRepo repository.EstimateRepository,
	catalogRepo repository.CatalogRepository,
) EstimateService {
	return &EstimateServiceImpl{
		projectRepo:  projectRepo,
		estimateRepo: estimateRepo,
		catalogRepo:  catalogRepo,
	}
}

// プロジェクトを取得してアクセス権を確認する
func (s *EstimateServiceImpl) accessProject(ctx context.Context, actor Actor, projectID string) (*model.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !canAccessProject(actor, project) {
		return nil, ErrForbidden
	}
	return project, nil
}

// 編集系の前提確認。承認済みの見積は確定値なので明細を変更できない。
func (s *EstimateServiceImpl) editableProject(ctx context.Context, actor Actor, projectID string) (*model.Project, error) {
	if !actor.CanEdit() {
		return nil, ErrForbidden
	}
	project, err := s.accessProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	if project.EstimateStatus == model.EstimateStatusApproved {
		return nil, fmt.Errorf("%w: estimate is approved, line items are locked", ErrValidation)
	}
	return project, nil
}

// ListLines はプロジェクトの見積明細を作成順で取得する
func (s *EstimateServiceImpl) ListLines(ctx context.Context, actor Actor, projectID string) ([]*model.EstimateLineItem, error) {
	if _, err := s.accessProject(ctx, actor, projectID); err != nil {
		return nil, err
	}
	return s.estimateRepo.ListByProjectID(ctx, projectID)
}

// AddLine は見積明細を追加する。参照するコストアイテムは
// 呼び出し主体のカタログ区分に存在しなければならない。
func (s *EstimateServiceImpl) AddLine(ctx context.Context, actor Actor, line *model.EstimateLineItem) error {
	if _, err := s.editableProject(ctx, actor, line.ProjectID); err != nil {
		return err
	}
	if line.Quantity.Sign() <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if line.UnitCostOverride != nil && line.UnitCostOverride.Sign() < 0 {
		return fmt.Errorf("%w: unit_cost_override cannot be negative", ErrValidation)
	}

	item, err := s.catalogRepo.GetCostItem(ctx, line.CostItemID)
	if err != nil {
		return fmt.Errorf("%w: unknown cost_item_id %q", ErrValidation, line.CostItemID)
	}
	if item.DatabaseType != actor.DatabaseType() {
		return fmt.Errorf("%w: unknown cost_item_id %q", ErrValidation, line.CostItemID)
	}

	line.CreatedBy = actor.UserID
	return s.estimateRepo.Create(ctx, line)
}

// UpdateLine は見積明細を更新する
func (s *EstimateServiceImpl) UpdateLine(ctx context.Context, actor Actor, lineID string, patch model.EstimateLineItemPatch) (*model.EstimateLineItem, error) {
	line, err := s.estimateRepo.GetByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if _, err := s.editableProject(ctx, actor, line.ProjectID); err != nil {
		return nil, err
	}

	if patch.Quantity != nil {
		if patch.Quantity.Sign() <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
		}
		line.Quantity = *patch.Quantity
	}
	if patch.UnitCostOverride != nil {
		// 外側のポインタが「指定あり」、内側が nil なら上書き解除
		override := *patch.UnitCostOverride
		if override != nil && override.Sign() < 0 {
			return nil, fmt.Errorf("%w: unit_cost_override cannot be negative", ErrValidation)
		}
		line.UnitCostOverride = override
	}
	if patch.Notes != nil {
		line.Notes = *patch.Notes
	}

	if err := s.estimateRepo.Update(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

// DeleteLine は見積明細を削除する
func (s *EstimateServiceImpl) DeleteLine(ctx context.Context, actor Actor, lineID string) error {
	line, err := s.estimateRepo.GetByID(ctx, lineID)
	if err != nil {
		return err
	}
	if _, err := s.editableProject(ctx, actor, line.ProjectID); err != nil {
		return err
	}
	return s.estimateRepo.Delete(ctx, lineID)
}

// Summary は見積サマリを再計算する
func (s *EstimateServiceImpl) Summary(ctx context.Context, actor Actor, projectID string) (*EstimateSummary, error) {
	project, err := s.accessProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	lines, err := s.estimateRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	totals, skipped, err := estimation.ComputeEstimate(
		ctx, newComputeCatalog(s.catalogRepo), lines,
		project.ContingencyPercentage, project.FloorAreaM2)
	if err != nil {
		return nil, fmt.Errorf("compute estimate: %w", err)
	}
	if len(skipped) > 0 {
		slog.Warn("estimate summary skipped dangling lines", "project_id", projectID, "skipped", len(skipped))
	}

	return &EstimateSummary{
		ProjectID:      projectID,
		EstimateStatus: project.EstimateStatus,
		Totals:         totals,
		SkippedLines:   skipped,
	}, nil
}
