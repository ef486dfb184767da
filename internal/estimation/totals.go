package estimation

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeTotals はカテゴリ集計からプロジェクト全体のサマリを算出する。
//
//   - Subtotal = 全カテゴリの CategoryTotal の合計
//   - ContingencyAmount = Subtotal × 率 / 100 を最後に一度だけ銀行丸め（偶数丸め）で
//     小数2桁に丸める。明細単位で丸めると行数分の誤差が累積するため、途中では丸めない。
//   - GrandTotal = Subtotal + ContingencyAmount
//   - CostPerFloorArea は床面積が正のときのみ算出し、それ以外は nil
//   - 外注費・ボランティア費の合計は LineTotal からの逆算ではなく、
//     各明細のコンポーネントを同じ明細集合から独立に合計する
//
// 同じ入力に対して常にビット単位で同一の出力を返す。隠れた状態や時刻参照はない。
func ComputeTotals(rollups []CategoryRollup, contingencyPercentage decimal.Decimal, floorAreaM2 *decimal.Decimal) (ProjectEstimateTotals, error) {
	if contingencyPercentage.Sign() < 0 {
		return ProjectEstimateTotals{}, ErrNegativeContingency
	}

	subtotal := decimal.Zero
	contractorTotal := decimal.Zero
	volunteerTotal := decimal.Zero
	for _, r := range rollups {
		subtotal = subtotal.Add(r.CategoryTotal)
		for _, line := range r.LineItems {
			contractorTotal = contractorTotal.Add(line.ContractorTotal)
			volunteerTotal = volunteerTotal.Add(line.ManagementTotal)
		}
	}

	contingency := subtotal.Mul(contingencyPercentage).Div(hundred).RoundBank(2)
	grandTotal := subtotal.Add(contingency)

	var costPerFloorArea *decimal.Decimal
	if floorAreaM2 != nil && floorAreaM2.Sign() > 0 {
		v := grandTotal.Div(*floorAreaM2).RoundBank(2)
		costPerFloorArea = &v
	}

	if rollups == nil {
		rollups = []CategoryRollup{}
	}
	return ProjectEstimateTotals{
		Subtotal:              subtotal,
		ContingencyPercentage: contingencyPercentage,
		ContingencyAmount:     contingency,
		GrandTotal:            grandTotal,
		CostPerFloorArea:      costPerFloorArea,
		ContractorCostTotal:   contractorTotal,
		VolunteerCostTotal:    volunteerTotal,
		Categories:            rollups,
	}, nil
}
