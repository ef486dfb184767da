package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActualCostRecord は工事完了後に記録される実費。
// 見積明細（EstimateLineItem）経由で元の CostItem に紐づく。
// 自動生成されることはなく、ユーザー操作でのみ作成・編集・削除される。
type ActualCostRecord struct {
	ID                 string          `json:"id"`
	ProjectID          string          `json:"project_id"`
	EstimateLineItemID string          `json:"estimate_line_item_id"`
	ActualQuantity     decimal.Decimal `json:"actual_quantity"`
	ActualCost         decimal.Decimal `json:"actual_cost"`
	VarianceReason     string          `json:"variance_reason,omitempty"`
	CompletedDate      *time.Time      `json:"completed_date,omitempty"`
	CreatedBy          string          `json:"created_by"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ActualCostRecordPatch holds fields that can be updated on an actual cost record.
type ActualCostRecordPatch struct {
	ActualQuantity *decimal.Decimal `json:"actual_quantity"`
	ActualCost     *decimal.Decimal `json:"actual_cost"`
	VarianceReason *string          `json:"variance_reason"`
	CompletedDate  *time.Time       `json:"completed_date"`
}
