package estimation

import "errors"

// 計算全体を無効にする入力（検証エラー）。呼び出し側にそのまま返す。
var (
	ErrQuantityNotPositive = errors.New("quantity must be greater than zero")
	ErrNegativeContingency = errors.New("contingency percentage must not be negative")
)

// ErrCostItemNotFound is returned by Catalog lookups when the referenced
// catalog entry no longer exists (the line is orphaned). The engine skips
// such lines instead of aborting the whole computation.
var ErrCostItemNotFound = errors.New("cost item not found")
