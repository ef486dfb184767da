package repository

import (
	"context"
	"errors"

	"github.com/buildtally/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgEstimateRepository は EstimateRepository の PostgreSQL 実装
type PgEstimateRepository struct {
	pool *pgxpool.Pool
}

// NewPgEstimateRepository は PgEstimateRepository を生成する
func NewPgEstimateRepository(pool *pgxpool.Pool) *PgEstimateRepository {
	return &PgEstimateRepository{pool: pool}
}

var _ EstimateRepository = (*PgEstimateRepository)(nil)

const estimateLineColumns = `id, project_id, cost_item_id, quantity, unit_cost_override,
	COALESCE(notes, ''), created_by, created_at, updated_at`

func scanEstimateLine(row pgx.Row) (*model.EstimateLineItem, error) {
	var line model.EstimateLineItem
	err := row.Scan(&line.ID, &line.ProjectID, &line.CostItemID, &line.Quantity,
		&line.UnitCostOverride, &line.Notes, &line.CreatedBy, &line.CreatedAt, &line.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

// ListByProjectID はプロジェクトの見積明細を作成順で取得する
func (r *PgEstimateRepository) ListByProjectID(ctx context.Context, projectID string) ([]*model.EstimateLineItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+estimateLineColumns+` FROM estimate_line_items
		 WHERE project_id = $1
		 ORDER BY created_at ASC, id ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*model.EstimateLineItem
	for rows.Next() {
		line, err := scanEstimateLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// GetByID は ID で見積明細を取得する
func (r *PgEstimateRepository) GetByID(ctx context.Context, id string) (*model.EstimateLineItem, error) {
	return scanEstimateLine(r.pool.QueryRow(ctx,
		`SELECT `+estimateLineColumns+` FROM estimate_line_items WHERE id = $1`, id))
}

// Create は見積明細を作成する
func (r *PgEstimateRepository) Create(ctx context.Context, line *model.EstimateLineItem) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO estimate_line_items (project_id, cost_item_id, quantity, unit_cost_override, notes, created_by)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
		 RETURNING id, created_at, updated_at`,
		line.ProjectID, line.CostItemID, line.Quantity, line.UnitCostOverride, line.Notes, line.CreatedBy,
	).Scan(&line.ID, &line.CreatedAt, &line.UpdatedAt)
}

// Update は見積明細を更新する。unit_cost_override は NULL で上書き解除になる。
func (r *PgEstimateRepository) Update(ctx context.Context, line *model.EstimateLineItem) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE estimate_line_items SET quantity = $1, unit_cost_override = $2,
		   notes = NULLIF($3, ''), updated_at = NOW()
		 WHERE id = $4`,
		line.Quantity, line.UnitCostOverride, line.Notes, line.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete は見積明細を削除する。紐づく実費レコードは ON DELETE CASCADE で消える。
func (r *PgEstimateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM estimate_line_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
