package service

import (
	"context"
	"fmt"

	"github.com/buildtally/backend/internal/estimation"
	"github.com/buildtally/backend/internal/model"
	"github.com/buildtally/backend/internal/repository"
)

// ActualsServiceImpl は ActualsService の実装
type ActualsServiceImpl struct {
	projectRepo  repository.ProjectRepository
	estimateRepo repository.EstimateRepository
	actualRepo   repository.ActualRepository
	catalogRepo  repository.CatalogRepository
}

// NewActualsService は ActualsServiceImpl を生成する（DI: 各リポジトリを注入）
func NewActualsService(
	projectRepo repository.ProjectRepository,
	estimateRepo repository.EstimateRepository,
	actualRepo repository.ActualRepository,
	catalogRepo repository.CatalogRepository,
) ActualsService {
	return &ActualsServiceImpl{
		projectRepo:  projectRepo,
		estimateRepo: estimateRepo,
		actualRepo:   actualRepo,
		catalogRepo:  catalogRepo,
	}
}

func (s *ActualsServiceImpl) accessProject(ctx context.Context, actor Actor, projectID string) (*model.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !canAccessProject(actor, project) {
		return nil, ErrForbidden
	}
	return project, nil
}

// List はプロジェクトの実費レコード一覧を取得する
func (s *ActualsServiceImpl) List(ctx context.Context, actor Actor, projectID string) ([]*model.ActualCostRecord, error) {
	if _, err := s.accessProject(ctx, actor, projectID); err != nil {
		return nil, err
	}
	return s.actualRepo.ListByProjectID(ctx, projectID)
}

// Create は実費レコードを追加する。対象の見積明細は同じプロジェクトに属していること。
func (s *ActualsServiceImpl) Create(ctx context.Context, actor Actor, record *model.ActualCostRecord) error {
	if !actor.CanEdit() {
		return ErrForbidden
	}
	if _, err := s.accessProject(ctx, actor, record.ProjectID); err != nil {
		return err
	}
	if record.ActualCost.Sign() < 0 {
		return fmt.Errorf("%w: actual_cost cannot be negative", ErrValidation)
	}
	if record.ActualQuantity.Sign() < 0 {
		return fmt.Errorf("%w: actual_quantity cannot be negative", ErrValidation)
	}

	line, err := s.estimateRepo.GetByID(ctx, record.EstimateLineItemID)
	if err != nil {
		return fmt.Errorf("%w: unknown estimate_line_item_id %q", ErrValidation, record.EstimateLineItemID)
	}
	if line.ProjectID != record.ProjectID {
		return fmt.Errorf("%w: line item belongs to a different project", ErrValidation)
	}

	record.CreatedBy = actor.UserID
	return s.actualRepo.Create(ctx, record)
}

// Update は実費レコードを更新する
func (s *ActualsServiceImpl) Update(ctx context.Context, actor Actor, id string, patch model.ActualCostRecordPatch) (*model.ActualCostRecord, error) {
	if !actor.CanEdit() {
		return nil, ErrForbidden
	}
	record, err := s.actualRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.accessProject(ctx, actor, record.ProjectID); err != nil {
		return nil, err
	}

	if patch.ActualQuantity != nil {
		if patch.ActualQuantity.Sign() < 0 {
			return nil, fmt.Errorf("%w: actual_quantity cannot be negative", ErrValidation)
		}
		record.ActualQuantity = *patch.ActualQuantity
	}
	if patch.ActualCost != nil {
		if patch.ActualCost.Sign() < 0 {
			return nil, fmt.Errorf("%w: actual_cost cannot be negative", ErrValidation)
		}
		record.ActualCost = *patch.ActualCost
	}
	if patch.VarianceReason != nil {
		record.VarianceReason = *patch.VarianceReason
	}
	if patch.CompletedDate != nil {
		record.CompletedDate = patch.CompletedDate
	}

	if err := s.actualRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete は実費レコードを削除する
func (s *ActualsServiceImpl) Delete(ctx context.Context, actor Actor, id string) error {
	if !actor.CanEdit() {
		return ErrForbidden
	}
	record, err := s.actualRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.accessProject(ctx, actor, record.ProjectID); err != nil {
		return err
	}
	return s.actualRepo.Delete(ctx, id)
}

// VarianceReport は予実比較レポートを組み立てる
func (s *ActualsServiceImpl) VarianceReport(ctx context.Context, actor Actor, projectID string) (*VarianceReport, error) {
	project, err := s.accessProject(ctx, actor, projectID)
	if err != nil {
		return nil, err
	}
	lines, err := s.estimateRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	actuals, err := s.actualRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	catalog := newComputeCatalog(s.catalogRepo)
	resolved, skipped, err := estimation.ResolveAll(ctx, catalog, lines)
	if err != nil {
		return nil, fmt.Errorf("resolve lines: %w", err)
	}

	estimatedTotals, err := estimation.ComputeTotals(
		estimation.Aggregate(resolved), project.ContingencyPercentage, project.FloorAreaM2)
	if err != nil {
		return nil, fmt.Errorf("estimated totals: %w", err)
	}
	actualTotals, err := estimation.ActualTotals(
		resolved, actuals, project.ContingencyPercentage, project.FloorAreaM2)
	if err != nil {
		return nil, fmt.Errorf("actual totals: %w", err)
	}

	comparisons := make([]estimation.LineComparison, 0, len(resolved))
	for _, line := range resolved {
		comparisons = append(comparisons, estimation.CompareLine(line, actuals))
	}
	variance, variancePercent, status := estimation.CompareTotals(estimatedTotals, actualTotals)

	return &VarianceReport{
		ProjectID:       projectID,
		Lines:           comparisons,
		EstimatedTotals: estimatedTotals,
		ActualTotals:    actualTotals,
		Variance:        variance,
		VariancePercent: variancePercent,
		Status:          status,
		SkippedLines:    skipped,
	}, nil
}
