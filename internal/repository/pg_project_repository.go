package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/buildtally/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgProjectRepository は ProjectRepository の PostgreSQL 実装
type PgProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPgProjectRepository は PgProjectRepository を生成する
func NewPgProjectRepository(pool *pgxpool.Pool) *PgProjectRepository {
	return &PgProjectRepository{pool: pool}
}

var _ ProjectRepository = (*PgProjectRepository)(nil)

const projectColumns = `id, name, client_id, contractor_id, budget_cost, floor_area_m2,
	contingency_percentage, start_date, COALESCE(project_address, ''), COALESCE(description, ''),
	COALESCE(notes, ''), created_by, status, estimate_status, approved_by, approved_at,
	COALESCE(approval_notes, ''), created_at, updated_at`

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	err := row.Scan(&p.ID, &p.Name, &p.ClientID, &p.ContractorID, &p.BudgetCost, &p.FloorAreaM2,
		&p.ContingencyPercentage, &p.StartDate, &p.ProjectAddress, &p.Description,
		&p.Notes, &p.CreatedBy, &p.Status, &p.EstimateStatus, &p.ApprovedBy, &p.ApprovedAt,
		&p.ApprovalNotes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List はプロジェクト一覧を取得する
func (r *PgProjectRepository) List(ctx context.Context, opts ProjectListOptions) ([]*model.Project, error) {
	conditions := []string{}
	args := []any{}

	if opts.CreatedBy != nil {
		args = append(args, *opts.CreatedBy)
		conditions = append(conditions, "created_by = $"+strconv.Itoa(len(args)))
	}
	if opts.Status != "" {
		args = append(args, opts.Status)
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects`+where+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetByID は ID でプロジェクトを取得する
func (r *PgProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	return scanProject(r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

// Create はプロジェクトを作成する
func (r *PgProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO projects (name, client_id, contractor_id, budget_cost, floor_area_m2,
		   contingency_percentage, start_date, project_address, description, notes, created_by, status, estimate_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), $11, $12, $13)
		 RETURNING id, created_at, updated_at`,
		project.Name, project.ClientID, project.ContractorID, project.BudgetCost, project.FloorAreaM2,
		project.ContingencyPercentage, project.StartDate, project.ProjectAddress, project.Description,
		project.Notes, project.CreatedBy, project.Status, project.EstimateStatus,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

// Update はプロジェクトを更新する
func (r *PgProjectRepository) Update(ctx context.Context, project *model.Project) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET name = $1, client_id = $2, contractor_id = $3, budget_cost = $4,
		   floor_area_m2 = $5, contingency_percentage = $6, start_date = $7,
		   project_address = NULLIF($8, ''), description = NULLIF($9, ''), notes = NULLIF($10, ''),
		   status = $11, updated_at = NOW()
		 WHERE id = $12`,
		project.Name, project.ClientID, project.ContractorID, project.BudgetCost,
		project.FloorAreaM2, project.ContingencyPercentage, project.StartDate,
		project.ProjectAddress, project.Description, project.Notes,
		project.Status, project.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete はプロジェクトを削除する。見積明細・実費レコードは ON DELETE CASCADE で消える。
func (r *PgProjectRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateEstimateStatus は見積承認ワークフローの状態を更新する
func (r *PgProjectRepository) UpdateEstimateStatus(ctx context.Context, id, status string, approvedBy *string, approvedAt *time.Time, notes string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET estimate_status = $1, approved_by = $2, approved_at = $3,
		   approval_notes = NULLIF($4, ''), updated_at = NOW()
		 WHERE id = $5`,
		status, approvedBy, approvedAt, notes, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
