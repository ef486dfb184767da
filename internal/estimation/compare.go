package estimation

import (
	"github.com/shopspring/decimal"

	"github.com/buildtally/backend/internal/model"
)

// CompareLine は見積明細1行と記録済み実費の差異を計算する。
// 同じ明細に複数の実費レコードがある場合は合算して比較する。
// 実費が1件もない行は Actual / Variance / VariancePercent を nil のまま返す。
// ゼロ差異とデータなしを混同してはならない。
func CompareLine(est ResolvedLine, actuals []*model.ActualCostRecord) LineComparison {
	cmp := LineComparison{
		EstimateLineItemID: est.EstimateLineItemID,
		Description:        est.Description,
		Estimated:          est.LineTotal,
		Status:             StatusNoData,
	}

	matched := false
	actualCost := decimal.Zero
	for _, a := range actuals {
		if a.EstimateLineItemID != est.EstimateLineItemID {
			continue
		}
		matched = true
		actualCost = actualCost.Add(a.ActualCost)
	}
	if !matched {
		return cmp
	}

	variance := actualCost.Sub(est.LineTotal)
	cmp.Actual = &actualCost
	cmp.Variance = &variance

	if est.LineTotal.Sign() != 0 {
		pct := variance.Div(est.LineTotal).Mul(hundred).RoundBank(2)
		cmp.VariancePercent = &pct
	}

	switch variance.Sign() {
	case 1:
		cmp.Status = StatusOver
	case -1:
		cmp.Status = StatusUnder
	default:
		cmp.Status = StatusOnTarget
	}
	return cmp
}

// ActualTotals は実費レコードの集合に対して見積と同じ総計算出を実行する。
// 実費が記録された明細だけを対象に、実費額を明細金額として同じ
// カテゴリ集計・予備費・床面積正規化のルールを適用する。
// 実費はコンポーネント分解されずに記録されるため、全額を材料費コンポーネントとして
// 扱い、外注費・ボランティア費の合計はゼロになる。
func ActualTotals(
	estimated []ResolvedLine,
	actuals []*model.ActualCostRecord,
	contingencyPercentage decimal.Decimal,
	floorAreaM2 *decimal.Decimal,
) (ProjectEstimateTotals, error) {
	costByLine := make(map[string]decimal.Decimal)
	qtyByLine := make(map[string]decimal.Decimal)
	for _, a := range actuals {
		costByLine[a.EstimateLineItemID] = costByLine[a.EstimateLineItemID].Add(a.ActualCost)
		qtyByLine[a.EstimateLineItemID] = qtyByLine[a.EstimateLineItemID].Add(a.ActualQuantity)
	}

	actualLines := make([]ResolvedLine, 0, len(costByLine))
	for _, est := range estimated {
		cost, ok := costByLine[est.EstimateLineItemID]
		if !ok {
			continue
		}
		line := est
		line.Quantity = qtyByLine[est.EstimateLineItemID]
		line.MaterialTotal = cost
		line.ManagementTotal = decimal.Zero
		line.ContractorTotal = decimal.Zero
		line.LineTotal = cost
		actualLines = append(actualLines, line)
	}

	return ComputeTotals(Aggregate(actualLines), contingencyPercentage, floorAreaM2)
}

// CompareTotals はプロジェクト全体の予実差異を返す。
// variancePercent は見積総額がゼロのとき nil。
func CompareTotals(estimated, actual ProjectEstimateTotals) (variance decimal.Decimal, variancePercent *decimal.Decimal, status string) {
	variance = actual.GrandTotal.Sub(estimated.GrandTotal)
	if estimated.GrandTotal.Sign() != 0 {
		pct := variance.Div(estimated.GrandTotal).Mul(hundred).RoundBank(2)
		variancePercent = &pct
	}
	switch variance.Sign() {
	case 1:
		status = StatusOver
	case -1:
		status = StatusUnder
	default:
		status = StatusOnTarget
	}
	return variance, variancePercent, status
}
