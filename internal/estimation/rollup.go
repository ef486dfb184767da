package estimation

import "sort"

// Aggregate は解決済み明細をカテゴリ単位に集計する。
//
//   - 金額のロールアップはカテゴリ単位（CategoryTotal = 所属明細の LineTotal の合計）。
//     サブ要素は表示用の情報として明細に残るだけで、集計単位にはならない。
//   - カテゴリはカタログの sort_order 昇順、同値は CategoryID 昇順。
//   - カテゴリ内の明細は入力順（見積ストアの登録順）を保つ。金額で並べ替えない。
//   - 明細が1件もないカテゴリは出力に含めない。下流のカテゴリ数で割る計算が
//     ゼロ件カテゴリに影響されないために必要。
func Aggregate(lines []ResolvedLine) []CategoryRollup {
	byCategory := make(map[string]*CategoryRollup)
	var order []string

	for _, line := range lines {
		r, ok := byCategory[line.CategoryID]
		if !ok {
			r = &CategoryRollup{
				CategoryID:   line.CategoryID,
				CategoryName: line.CategoryName,
				SortOrder:    line.CategorySortOrder,
			}
			byCategory[line.CategoryID] = r
			order = append(order, line.CategoryID)
		}
		r.LineItems = append(r.LineItems, line)
		r.CategoryTotal = r.CategoryTotal.Add(line.LineTotal)
	}

	rollups := make([]CategoryRollup, 0, len(order))
	for _, id := range order {
		rollups = append(rollups, *byCategory[id])
	}
	sort.SliceStable(rollups, func(i, j int) bool {
		if rollups[i].SortOrder != rollups[j].SortOrder {
			return rollups[i].SortOrder < rollups[j].SortOrder
		}
		return rollups[i].CategoryID < rollups[j].CategoryID
	})
	return rollups
}
