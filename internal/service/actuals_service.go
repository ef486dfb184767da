package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/buildtally/backend/internal/estimation"
	"github.com/buildtally/backend/internal/model"
)

// ActualsService は実費記録と予実比較レポートのビジネスロジックのインターフェース
type ActualsService interface {
	List(ctx context.Context, actor Actor, projectID string) ([]*model.ActualCostRecord, error)
	Create(ctx context.Context, actor Actor, record *model.ActualCostRecord) error
	Update(ctx context.Context, actor Actor, id string, patch model.ActualCostRecordPatch) (*model.ActualCostRecord, error)
	Delete(ctx context.Context, actor Actor, id string) error

	// VarianceReport は見積と実費を明細単位・プロジェクト単位で突き合わせる。
	// 毎回再計算され、永続化されない。
	VarianceReport(ctx context.Context, actor Actor, projectID string) (*VarianceReport, error)
}

// VarianceReport は予実比較レポート。実費未記録の明細は status "no-data" で
// actual / variance が null になる。
type VarianceReport struct {
	ProjectID       string                           `json:"project_id"`
	Lines           []estimation.LineComparison      `json:"lines"`
	EstimatedTotals estimation.ProjectEstimateTotals `json:"estimated_totals"`
	ActualTotals    estimation.ProjectEstimateTotals `json:"actual_totals"`
	Variance        decimal.Decimal                  `json:"variance"`
	VariancePercent *decimal.Decimal                 `json:"variance_percent"`
	Status          string                           `json:"status"`
	SkippedLines    []estimation.SkippedLine         `json:"skipped_lines"`
}
