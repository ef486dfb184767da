package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstimateLineItem はプロジェクトに紐づく見積明細。
// カタログの CostItem を参照するだけで、値をコピーして持つことはない。
type EstimateLineItem struct {
	ID               string           `json:"id"`
	ProjectID        string           `json:"project_id"`
	CostItemID       string           `json:"cost_item_id"`
	Quantity         decimal.Decimal  `json:"quantity"` // > 0
	UnitCostOverride *decimal.Decimal `json:"unit_cost_override,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	CreatedBy        string           `json:"created_by"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// EstimateLineItemPatch holds fields that can be updated on a line item.
// UnitCostOverride の「未指定」と「上書き解除(null)」を区別するため二重ポインタを使う。
type EstimateLineItemPatch struct {
	Quantity         *decimal.Decimal
	UnitCostOverride **decimal.Decimal
	Notes            *string
}
