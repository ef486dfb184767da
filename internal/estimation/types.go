package estimation

import "github.com/shopspring/decimal"

// ResolvedLine は見積明細1行の計算結果。集計の最小単位で、
// 計算後に書き換えられることはなく、リクエストごとに再計算される。
type ResolvedLine struct {
	EstimateLineItemID string          `json:"estimate_line_item_id"`
	CostItemID         string          `json:"cost_item_id"`
	SubElementID       string          `json:"sub_element_id"`
	SubElementName     string          `json:"sub_element_name"`
	CategoryID         string          `json:"category_id"`
	CategoryName       string          `json:"category_name"`
	CategorySortOrder  int             `json:"-"`
	Description        string          `json:"description"`
	UnitCode           string          `json:"unit_code"`
	Quantity           decimal.Decimal `json:"quantity"`
	MaterialTotal      decimal.Decimal `json:"material_total"`
	ManagementTotal    decimal.Decimal `json:"management_total"`
	ContractorTotal    decimal.Decimal `json:"contractor_total"`
	LineTotal          decimal.Decimal `json:"line_total"`
}

// CategoryRollup はカテゴリ単位の金額集計。
// CategoryTotal は必ず所属明細の LineTotal の合計と一致する。
type CategoryRollup struct {
	CategoryID    string          `json:"category_id"`
	CategoryName  string          `json:"category_name"`
	SortOrder     int             `json:"sort_order"`
	LineItems     []ResolvedLine  `json:"line_items"`
	CategoryTotal decimal.Decimal `json:"category_total"`
}

// ProjectEstimateTotals はプロジェクト全体の見積サマリ。永続化されない派生データで、
// 読み出しのたびに再計算される。
type ProjectEstimateTotals struct {
	Subtotal              decimal.Decimal  `json:"subtotal"`
	ContingencyPercentage decimal.Decimal  `json:"contingency_percentage"`
	ContingencyAmount     decimal.Decimal  `json:"contingency_amount"`
	GrandTotal            decimal.Decimal  `json:"grand_total"`
	CostPerFloorArea      *decimal.Decimal `json:"cost_per_floor_area"` // null: 床面積が未設定・0・負
	ContractorCostTotal   decimal.Decimal  `json:"contractor_cost_total"`
	VolunteerCostTotal    decimal.Decimal  `json:"volunteer_cost_total"`
	Categories            []CategoryRollup `json:"categories"`
}

// SkippedLine はカタログ参照が切れて集計から除外された明細。
// 1行の破損でプロジェクト全体の見積を潰さないため、エラーではなく別リストで報告する。
type SkippedLine struct {
	EstimateLineItemID string `json:"estimate_line_item_id"`
	CostItemID         string `json:"cost_item_id"`
	Reason             string `json:"reason"`
}

// 実費と見積の比較ステータス
const (
	StatusOver     = "over"
	StatusUnder    = "under"
	StatusOnTarget = "on-target"
	StatusNoData   = "no-data"
)

// LineComparison は明細単位の予実比較。実費未記録の行は Actual / Variance /
// VariancePercent が nil になる（「データなし」と「差異ゼロ」を区別する）。
type LineComparison struct {
	EstimateLineItemID string           `json:"estimate_line_item_id"`
	Description        string           `json:"description"`
	Estimated          decimal.Decimal  `json:"estimated"`
	Actual             *decimal.Decimal `json:"actual"`
	Variance           *decimal.Decimal `json:"variance"`
	VariancePercent    *decimal.Decimal `json:"variance_percent"`
	Status             string           `json:"status"`
}
