package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/buildtally/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgCatalogRepository は CatalogRepository の PostgreSQL 実装
type PgCatalogRepository struct {
	pool *pgxpool.Pool
}

// NewPgCatalogRepository は PgCatalogRepository を生成する
func NewPgCatalogRepository(pool *pgxpool.Pool) *PgCatalogRepository {
	return &PgCatalogRepository{pool: pool}
}

var _ CatalogRepository = (*PgCatalogRepository)(nil)

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

const categoryColumns = `id, code, name, COALESCE(description, ''), sort_order, created_at, updated_at`

func scanCategory(row pgx.Row) (*model.CostCategory, error) {
	var c model.CostCategory
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.Description, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListCategories はカテゴリ一覧を sort_order 順で取得する
func (r *PgCatalogRepository) ListCategories(ctx context.Context) ([]*model.CostCategory, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+categoryColumns+` FROM cost_categories ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*model.CostCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetCategory は ID でカテゴリを取得する
func (r *PgCatalogRepository) GetCategory(ctx context.Context, id string) (*model.CostCategory, error) {
	return scanCategory(r.pool.QueryRow(ctx,
		`SELECT `+categoryColumns+` FROM cost_categories WHERE id = $1`, id))
}

// CreateCategory はカテゴリを作成する
func (r *PgCatalogRepository) CreateCategory(ctx context.Context, category *model.CostCategory) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO cost_categories (code, name, description, sort_order)
		 VALUES ($1, $2, NULLIF($3, ''), $4)
		 RETURNING id, created_at, updated_at`,
		category.Code, category.Name, category.Description, category.SortOrder,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
}

// UpdateCategory はカテゴリを更新する
func (r *PgCatalogRepository) UpdateCategory(ctx context.Context, category *model.CostCategory) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cost_categories SET code = $1, name = $2, description = NULLIF($3, ''),
		   sort_order = $4, updated_at = NOW()
		 WHERE id = $5`,
		category.Code, category.Name, category.Description, category.SortOrder, category.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory はカテゴリを削除する。配下のサブ要素・コストアイテムは CASCADE で消える。
func (r *PgCatalogRepository) DeleteCategory(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cost_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Sub-elements
// ---------------------------------------------------------------------------

const subElementColumns = `id, category_id, code, name, COALESCE(description, ''), sort_order, created_at, updated_at`

func scanSubElement(row pgx.Row) (*model.CostSubElement, error) {
	var s model.CostSubElement
	err := row.Scan(&s.ID, &s.CategoryID, &s.Code, &s.Name, &s.Description, &s.SortOrder, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListSubElements はサブ要素一覧を取得する（カテゴリ絞り込み可）
func (r *PgCatalogRepository) ListSubElements(ctx context.Context, categoryID *string) ([]*model.CostSubElement, error) {
	query := `SELECT ` + subElementColumns + ` FROM cost_sub_elements`
	var args []any
	if categoryID != nil {
		query += ` WHERE category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY sort_order, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*model.CostSubElement
	for rows.Next() {
		s, err := scanSubElement(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// GetSubElement は ID でサブ要素を取得する
func (r *PgCatalogRepository) GetSubElement(ctx context.Context, id string) (*model.CostSubElement, error) {
	return scanSubElement(r.pool.QueryRow(ctx,
		`SELECT `+subElementColumns+` FROM cost_sub_elements WHERE id = $1`, id))
}

// CreateSubElement はサブ要素を作成する
func (r *PgCatalogRepository) CreateSubElement(ctx context.Context, sub *model.CostSubElement) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO cost_sub_elements (category_id, code, name, description, sort_order)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5)
		 RETURNING id, created_at, updated_at`,
		sub.CategoryID, sub.Code, sub.Name, sub.Description, sub.SortOrder,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

// UpdateSubElement はサブ要素を更新する
func (r *PgCatalogRepository) UpdateSubElement(ctx context.Context, sub *model.CostSubElement) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cost_sub_elements SET category_id = $1, code = $2, name = $3,
		   description = NULLIF($4, ''), sort_order = $5, updated_at = NOW()
		 WHERE id = $6`,
		sub.CategoryID, sub.Code, sub.Name, sub.Description, sub.SortOrder, sub.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSubElement はサブ要素を削除する
func (r *PgCatalogRepository) DeleteSubElement(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cost_sub_elements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Units
// ---------------------------------------------------------------------------

// ListUnits は単位マスタ一覧を取得する
func (r *PgCatalogRepository) ListUnits(ctx context.Context) ([]*model.Unit, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, code, name, unit_type FROM units ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var units []*model.Unit
	for rows.Next() {
		var u model.Unit
		if err := rows.Scan(&u.ID, &u.Code, &u.Name, &u.UnitType); err != nil {
			return nil, err
		}
		units = append(units, &u)
	}
	return units, rows.Err()
}

// GetUnit は ID で単位を取得する
func (r *PgCatalogRepository) GetUnit(ctx context.Context, id string) (*model.Unit, error) {
	var u model.Unit
	err := r.pool.QueryRow(ctx,
		`SELECT id, code, name, unit_type FROM units WHERE id = $1`, id,
	).Scan(&u.ID, &u.Code, &u.Name, &u.UnitType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ---------------------------------------------------------------------------
// Cost items
// ---------------------------------------------------------------------------

const costItemColumns = `ci.id, ci.sub_element_id, ci.code, ci.description, ci.unit_id,
	ci.material_cost, ci.management_cost, ci.contractor_cost, ci.is_contractor_required,
	ci.volunteer_hours_estimated, ci.waste_factor, ci.currency, COALESCE(ci.region, ''),
	ci.database_type, ci.price_date, ci.created_at, ci.updated_at`

func scanCostItem(row pgx.Row) (*model.CostItem, error) {
	var item model.CostItem
	err := row.Scan(&item.ID, &item.SubElementID, &item.Code, &item.Description, &item.UnitID,
		&item.MaterialCost, &item.ManagementCost, &item.ContractorCost, &item.IsContractorRequired,
		&item.VolunteerHoursEstimated, &item.WasteFactor, &item.Currency, &item.Region,
		&item.DatabaseType, &item.PriceDate, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ListCostItems はコストアイテムを検索する。DatabaseType（カタログ区分）は常に適用され、
// 残りのフィルタは指定されたものだけ適用される。
func (r *PgCatalogRepository) ListCostItems(ctx context.Context, filter model.CostItemFilter) ([]*model.CostItem, error) {
	conditions := []string{"ci.database_type = $1"}
	args := []any{filter.DatabaseType}

	if filter.SubElementID != nil {
		args = append(args, *filter.SubElementID)
		conditions = append(conditions, "ci.sub_element_id = $"+strconv.Itoa(len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		conditions = append(conditions, "se.category_id = $"+strconv.Itoa(len(args)))
	}
	if filter.UnitID != nil {
		args = append(args, *filter.UnitID)
		conditions = append(conditions, "ci.unit_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Region != nil {
		args = append(args, *filter.Region)
		conditions = append(conditions, "ci.region = $"+strconv.Itoa(len(args)))
	}
	if filter.IsContractorRequired != nil {
		args = append(args, *filter.IsContractorRequired)
		conditions = append(conditions, "ci.is_contractor_required = $"+strconv.Itoa(len(args)))
	}
	if filter.SearchTerm != "" {
		args = append(args, "%"+filter.SearchTerm+"%")
		n := strconv.Itoa(len(args))
		conditions = append(conditions, "(ci.code ILIKE $"+n+" OR ci.description ILIKE $"+n+")")
	}

	query := `SELECT ` + costItemColumns + `
	          FROM cost_items ci
	          JOIN cost_sub_elements se ON se.id = ci.sub_element_id
	          WHERE ` + strings.Join(conditions, " AND ") + `
	          ORDER BY ci.code`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*model.CostItem
	for rows.Next() {
		item, err := scanCostItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetCostItem は ID でコストアイテムを取得する
func (r *PgCatalogRepository) GetCostItem(ctx context.Context, id string) (*model.CostItem, error) {
	return scanCostItem(r.pool.QueryRow(ctx,
		`SELECT `+costItemColumns+` FROM cost_items ci WHERE ci.id = $1`, id))
}

// CreateCostItem はコストアイテムを作成する
func (r *PgCatalogRepository) CreateCostItem(ctx context.Context, item *model.CostItem) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO cost_items (sub_element_id, code, description, unit_id,
		   material_cost, management_cost, contractor_cost, is_contractor_required,
		   volunteer_hours_estimated, waste_factor, currency, region, database_type, price_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''), $13, $14)
		 RETURNING id, created_at, updated_at`,
		item.SubElementID, item.Code, item.Description, item.UnitID,
		item.MaterialCost, item.ManagementCost, item.ContractorCost, item.IsContractorRequired,
		item.VolunteerHoursEstimated, item.WasteFactor, item.Currency, item.Region,
		item.DatabaseType, item.PriceDate,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

// UpdateCostItem はコストアイテムを更新する
func (r *PgCatalogRepository) UpdateCostItem(ctx context.Context, item *model.CostItem) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cost_items SET sub_element_id = $1, code = $2, description = $3, unit_id = $4,
		   material_cost = $5, management_cost = $6, contractor_cost = $7, is_contractor_required = $8,
		   volunteer_hours_estimated = $9, waste_factor = $10, currency = $11, region = NULLIF($12, ''),
		   price_date = $13, updated_at = NOW()
		 WHERE id = $14`,
		item.SubElementID, item.Code, item.Description, item.UnitID,
		item.MaterialCost, item.ManagementCost, item.ContractorCost, item.IsContractorRequired,
		item.VolunteerHoursEstimated, item.WasteFactor, item.Currency, item.Region,
		item.PriceDate, item.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCostItem はコストアイテムを削除する。
// これを参照している見積明細は孤立し、集計時に skipped として報告される。
func (r *PgCatalogRepository) DeleteCostItem(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cost_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
