package estimation

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/buildtally/backend/internal/model"
)

// ComputeEstimate は見積パイプライン全体を実行する:
// 明細の解決 → カテゴリ集計 → 総計算出。
//
// カタログ参照が切れた明細（作成後にカタログ側が削除されたもの）は集計から除外し、
// SkippedLine として返す。1行の破損で見積全体を失敗させない。
// 数量が正でない明細と負の予備費率は計算全体を無効にするため、エラーで返す。
//
// 入力はすべて呼び出し前に読み込まれたスナップショットであり、この関数は I/O を行わない
// （Catalog 実装がインメモリである限り）。リトライ・タイムアウト・キャンセルの仕組みは持たない。
func ComputeEstimate(
	ctx context.Context,
	catalog Catalog,
	lines []*model.EstimateLineItem,
	contingencyPercentage decimal.Decimal,
	floorAreaM2 *decimal.Decimal,
) (ProjectEstimateTotals, []SkippedLine, error) {
	if contingencyPercentage.Sign() < 0 {
		return ProjectEstimateTotals{}, nil, ErrNegativeContingency
	}

	resolved, skipped, err := ResolveAll(ctx, catalog, lines)
	if err != nil {
		return ProjectEstimateTotals{}, nil, err
	}

	totals, err := ComputeTotals(Aggregate(resolved), contingencyPercentage, floorAreaM2)
	if err != nil {
		return ProjectEstimateTotals{}, nil, err
	}
	return totals, skipped, nil
}

// ResolveAll は明細のスライスを解決し、表示用のカタログ情報
// （説明・単位コード・サブ要素・カテゴリ）を付加する。
// 参照切れの明細は除外して SkippedLine に積む。
func ResolveAll(ctx context.Context, catalog Catalog, lines []*model.EstimateLineItem) ([]ResolvedLine, []SkippedLine, error) {
	resolved := make([]ResolvedLine, 0, len(lines))
	skipped := []SkippedLine{}

	for _, line := range lines {
		item, err := catalog.CostItem(ctx, line.CostItemID)
		if err != nil {
			if errors.Is(err, ErrCostItemNotFound) {
				skipped = append(skipped, SkippedLine{
					EstimateLineItemID: line.ID,
					CostItemID:         line.CostItemID,
					Reason:             "cost item not found in catalog",
				})
				continue
			}
			return nil, nil, err
		}

		r, err := Resolve(line, item)
		if err != nil {
			return nil, nil, err
		}

		sub, err := catalog.SubElement(ctx, item.SubElementID)
		if err != nil {
			if errors.Is(err, ErrCostItemNotFound) {
				skipped = append(skipped, SkippedLine{
					EstimateLineItemID: line.ID,
					CostItemID:         line.CostItemID,
					Reason:             "sub-element not found in catalog",
				})
				continue
			}
			return nil, nil, err
		}
		cat, err := catalog.Category(ctx, sub.CategoryID)
		if err != nil {
			if errors.Is(err, ErrCostItemNotFound) {
				skipped = append(skipped, SkippedLine{
					EstimateLineItemID: line.ID,
					CostItemID:         line.CostItemID,
					Reason:             "category not found in catalog",
				})
				continue
			}
			return nil, nil, err
		}

		r.SubElementName = sub.Name
		r.CategoryID = cat.ID
		r.CategoryName = cat.Name
		r.CategorySortOrder = cat.SortOrder

		// 単位はあくまで表示情報。単位マスタの欠落で明細を落とすほどではない。
		if unit, err := catalog.Unit(ctx, item.UnitID); err == nil {
			r.UnitCode = unit.Code
		} else if !errors.Is(err, ErrCostItemNotFound) {
			return nil, nil, err
		}

		resolved = append(resolved, r)
	}
	return resolved, skipped, nil
}
