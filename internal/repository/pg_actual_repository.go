package repository

import (
	"context"
	"errors"

	"github.com/buildtally/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgActualRepository は ActualRepository の PostgreSQL 実装
type PgActualRepository struct {
	pool *pgxpool.Pool
}

// NewPgActualRepository は PgActualRepository を生成する
func NewPgActualRepository(pool *pgxpool.Pool) *PgActualRepository {
	return &PgActualRepository{pool: pool}
}

var _ ActualRepository = (*PgActualRepository)(nil)

const actualColumns = `id, project_id, estimate_line_item_id, actual_quantity, actual_cost,
	COALESCE(variance_reason, ''), completed_date, created_by, created_at, updated_at`

func scanActual(row pgx.Row) (*model.ActualCostRecord, error) {
	var a model.ActualCostRecord
	err := row.Scan(&a.ID, &a.ProjectID, &a.EstimateLineItemID, &a.ActualQuantity, &a.ActualCost,
		&a.VarianceReason, &a.CompletedDate, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListByProjectID はプロジェクトの実費レコード一覧を記録順で取得する
func (r *PgActualRepository) ListByProjectID(ctx context.Context, projectID string) ([]*model.ActualCostRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+actualColumns+` FROM actual_cost_records
		 WHERE project_id = $1
		 ORDER BY created_at ASC, id ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*model.ActualCostRecord
	for rows.Next() {
		a, err := scanActual(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// GetByID は ID で実費レコードを取得する
func (r *PgActualRepository) GetByID(ctx context.Context, id string) (*model.ActualCostRecord, error) {
	return scanActual(r.pool.QueryRow(ctx,
		`SELECT `+actualColumns+` FROM actual_cost_records WHERE id = $1`, id))
}

// Create は実費レコードを作成する
func (r *PgActualRepository) Create(ctx context.Context, record *model.ActualCostRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO actual_cost_records (project_id, estimate_line_item_id, actual_quantity, actual_cost,
		   variance_reason, completed_date, created_by)
		 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)
		 RETURNING id, created_at, updated_at`,
		record.ProjectID, record.EstimateLineItemID, record.ActualQuantity, record.ActualCost,
		record.VarianceReason, record.CompletedDate, record.CreatedBy,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
}

// Update は実費レコードを更新する
func (r *PgActualRepository) Update(ctx context.Context, record *model.ActualCostRecord) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE actual_cost_records SET actual_quantity = $1, actual_cost = $2,
		   variance_reason = NULLIF($3, ''), completed_date = $4, updated_at = NOW()
		 WHERE id = $5`,
		record.ActualQuantity, record.ActualCost, record.VarianceReason, record.CompletedDate, record.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete は実費レコードを削除する
func (r *PgActualRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM actual_cost_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
