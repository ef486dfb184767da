package estimation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/buildtally/backend/internal/model"
)

// Resolve は見積明細1行をカタログの CostItem と突き合わせて金額に解決する。
// 副作用はなく、入力のみから決まる純粋関数。
//
//   - 実効材料単価 = UnitCostOverride（あれば）、なければカタログの MaterialCost
//   - 材料費 = 実効単価 × 数量 × WasteFactor
//   - 管理費 = ManagementCost × 数量（WasteFactor は掛けない）
//   - 外注費 = IsContractorRequired のときのみ ContractorCost × 数量
//
// 中間値の丸めは行わない。丸めは総計算出時に一度だけ行う。
func Resolve(line *model.EstimateLineItem, item *model.CostItem) (ResolvedLine, error) {
	if line.Quantity.Sign() <= 0 {
		return ResolvedLine{}, fmt.Errorf("line %s: %w", line.ID, ErrQuantityNotPositive)
	}

	unitCost := item.MaterialCost
	if line.UnitCostOverride != nil {
		unitCost = *line.UnitCostOverride
	}

	materialTotal := unitCost.Mul(line.Quantity).Mul(item.WasteFactor)
	managementTotal := item.ManagementCost.Mul(line.Quantity)

	contractorTotal := decimal.Zero
	if item.IsContractorRequired {
		contractorTotal = item.ContractorCost.Mul(line.Quantity)
	}

	return ResolvedLine{
		EstimateLineItemID: line.ID,
		CostItemID:         item.ID,
		SubElementID:       item.SubElementID,
		Description:        item.Description,
		Quantity:           line.Quantity,
		MaterialTotal:      materialTotal,
		ManagementTotal:    managementTotal,
		ContractorTotal:    contractorTotal,
		LineTotal:          materialTotal.Add(managementTotal).Add(contractorTotal),
	}, nil
}
