package service

import (
	"context"

	"github.com/buildtally/backend/internal/estimation"
	"github.com/buildtally/backend/internal/model"
)

// EstimateService は見積明細と見積サマリのビジネスロジックのインターフェース
type EstimateService interface {
	ListLines(ctx context.Context, actor Actor, projectID string) ([]*model.EstimateLineItem, error)
	AddLine(ctx context.Context, actor Actor, line *model.EstimateLineItem) error
	UpdateLine(ctx context.Context, actor Actor, lineID string, patch model.EstimateLineItemPatch) (*model.EstimateLineItem, error)
	DeleteLine(ctx context.Context, actor Actor, lineID string) error

	// Summary は保存済み明細と現在のカタログから見積サマリを再計算する。
	// 結果は永続化されない。
	Summary(ctx context.Context, actor Actor, projectID string) (*EstimateSummary, error)
}

// EstimateSummary は見積サマリのレスポンス。totals に加えて、
// カタログ参照が切れて集計から除外された明細を報告する。
type EstimateSummary struct {
	ProjectID      string                           `json:"project_id"`
	EstimateStatus string                           `json:"estimate_status"`
	Totals         estimation.ProjectEstimateTotals `json:"totals"`
	SkippedLines   []estimation.SkippedLine         `json:"skipped_lines"`
}
