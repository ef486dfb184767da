package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// コストカタログの区分。ユーザー属性に応じてどちらか一方だけが見える。
const (
	DatabaseTypeStandardUK = "standard_uk"
	DatabaseTypeWitness    = "witness"
)

// ValidDatabaseType はカタログ区分が定義済みのものか判定する
func ValidDatabaseType(s string) bool {
	return s == DatabaseTypeStandardUK || s == DatabaseTypeWitness
}

// CostCategory はロールアップ階層の最上位（例: "Substructure"）。
type CostCategory struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CostSubElement はカテゴリ配下の小要素（例: "Strip foundations"）。
type CostSubElement struct {
	ID          string    `json:"id"`
	CategoryID  string    `json:"category_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Unit は数量の単位（m2, m, nr, hr など）。
type Unit struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	UnitType string `json:"unit_type"` // "area" | "length" | "count" | "time"
}

// CostItem はカタログの原価アイテム。計算中は不変の参照データとして扱う。
// WasteFactor は材料費コンポーネントにのみ掛かる（管理費・外注費には掛からない）。
type CostItem struct {
	ID                      string           `json:"id"`
	SubElementID            string           `json:"sub_element_id"`
	Code                    string           `json:"code"`
	Description             string           `json:"description"`
	UnitID                  string           `json:"unit_id"`
	MaterialCost            decimal.Decimal  `json:"material_cost"`
	ManagementCost          decimal.Decimal  `json:"management_cost"`
	ContractorCost          decimal.Decimal  `json:"contractor_cost"`
	IsContractorRequired    bool             `json:"is_contractor_required"`
	VolunteerHoursEstimated *decimal.Decimal `json:"volunteer_hours_estimated,omitempty"`
	WasteFactor             decimal.Decimal  `json:"waste_factor"` // >= 1.0
	Currency                string           `json:"currency"`
	Region                  string           `json:"region,omitempty"`
	DatabaseType            string           `json:"database_type"`
	PriceDate               *time.Time       `json:"price_date,omitempty"`
	CreatedAt               time.Time        `json:"created_at"`
	UpdatedAt               time.Time        `json:"updated_at"`
}

// CostItemFilter carries search parameters for catalog cost items.
// DatabaseType is always applied; the rest are optional.
type CostItemFilter struct {
	DatabaseType         string
	CategoryID           *string
	SubElementID         *string
	UnitID               *string
	Region               *string
	SearchTerm           string
	IsContractorRequired *bool
}
