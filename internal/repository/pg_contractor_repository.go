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

// PgContractorRepository は ContractorRepository の PostgreSQL 実装
type PgContractorRepository struct {
	pool *pgxpool.Pool
}

// NewPgContractorRepository は PgContractorRepository を生成する
func NewPgContractorRepository(pool *pgxpool.Pool) *PgContractorRepository {
	return &PgContractorRepository{pool: pool}
}

var _ ContractorRepository = (*PgContractorRepository)(nil)

const contractorColumns = `id, user_id, name, COALESCE(trade, ''), COALESCE(email, ''), COALESCE(phone, ''),
	COALESCE(address, ''), COALESCE(city, ''), COALESCE(postcode, ''), country, is_active, COALESCE(notes, ''),
	created_at, updated_at`

func scanContractor(row pgx.Row) (*model.Contractor, error) {
	var c model.Contractor
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Trade, &c.Email, &c.Phone,
		&c.Address, &c.City, &c.Postcode, &c.Country, &c.IsActive, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List はユーザーの業者一覧を取得する（検索・職種・アクティブ絞り込み対応）
func (r *PgContractorRepository) List(ctx context.Context, userID string, opts model.ContractorListOptions) ([]*model.Contractor, error) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if opts.IsActive != nil {
		args = append(args, *opts.IsActive)
		conditions = append(conditions, "is_active = $"+strconv.Itoa(len(args)))
	}
	if opts.Trade != "" {
		args = append(args, opts.Trade)
		conditions = append(conditions, "trade = $"+strconv.Itoa(len(args)))
	}
	if opts.SearchTerm != "" {
		args = append(args, "%"+opts.SearchTerm+"%")
		n := strconv.Itoa(len(args))
		conditions = append(conditions, "(name ILIKE $"+n+" OR email ILIKE $"+n+" OR city ILIKE $"+n+")")
	}

	query := `SELECT ` + contractorColumns + ` FROM contractors WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contractors []*model.Contractor
	for rows.Next() {
		c, err := scanContractor(rows)
		if err != nil {
			return nil, err
		}
		contractors = append(contractors, c)
	}
	return contractors, rows.Err()
}

// GetByID は ID で業者を取得する（所有ユーザーのもののみ）
func (r *PgContractorRepository) GetByID(ctx context.Context, id, userID string) (*model.Contractor, error) {
	return scanContractor(r.pool.QueryRow(ctx,
		`SELECT `+contractorColumns+` FROM contractors WHERE id = $1 AND user_id = $2`, id, userID))
}

// Create は業者を作成する
func (r *PgContractorRepository) Create(ctx context.Context, contractor *model.Contractor) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contractors (user_id, name, trade, email, phone, address, city, postcode, country, is_active, notes)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9, $10, NULLIF($11, ''))
		 RETURNING id, created_at, updated_at`,
		contractor.UserID, contractor.Name, contractor.Trade, contractor.Email, contractor.Phone,
		contractor.Address, contractor.City, contractor.Postcode, contractor.Country, contractor.IsActive, contractor.Notes,
	).Scan(&contractor.ID, &contractor.CreatedAt, &contractor.UpdatedAt)
}

// Update は業者を更新する
func (r *PgContractorRepository) Update(ctx context.Context, contractor *model.Contractor) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE contractors SET name = $1, trade = NULLIF($2, ''), email = NULLIF($3, ''),
		   phone = NULLIF($4, ''), address = NULLIF($5, ''), city = NULLIF($6, ''),
		   postcode = NULLIF($7, ''), country = $8, is_active = $9, notes = NULLIF($10, ''), updated_at = NOW()
		 WHERE id = $11 AND user_id = $12`,
		contractor.Name, contractor.Trade, contractor.Email, contractor.Phone, contractor.Address,
		contractor.City, contractor.Postcode, contractor.Country, contractor.IsActive, contractor.Notes,
		contractor.ID, contractor.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete は業者を削除する
func (r *PgContractorRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM contractors WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
