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

// PgClientRepository は ClientRepository の PostgreSQL 実装
type PgClientRepository struct {
	pool *pgxpool.Pool
}

// NewPgClientRepository は PgClientRepository を生成する
func NewPgClientRepository(pool *pgxpool.Pool) *PgClientRepository {
	return &PgClientRepository{pool: pool}
}

var _ ClientRepository = (*PgClientRepository)(nil)

const clientColumns = `id, user_id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(address, ''),
	COALESCE(city, ''), COALESCE(postcode, ''), country, COALESCE(website, ''), is_active, COALESCE(notes, ''),
	created_at, updated_at`

func scanClient(row pgx.Row) (*model.Client, error) {
	var c model.Client
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Address,
		&c.City, &c.Postcode, &c.Country, &c.Website, &c.IsActive, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List はユーザーの顧客一覧を取得する（検索・アクティブ絞り込み対応）
func (r *PgClientRepository) List(ctx context.Context, userID string, opts model.ClientListOptions) ([]*model.Client, error) {
	conditions := []string{"user_id = $1"}
	args := []any{userID}

	if opts.IsActive != nil {
		args = append(args, *opts.IsActive)
		conditions = append(conditions, "is_active = $"+strconv.Itoa(len(args)))
	}
	if opts.SearchTerm != "" {
		args = append(args, "%"+opts.SearchTerm+"%")
		n := strconv.Itoa(len(args))
		conditions = append(conditions, "(name ILIKE $"+n+" OR email ILIKE $"+n+" OR city ILIKE $"+n+")")
	}

	query := `SELECT ` + clientColumns + ` FROM clients WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// GetByID は ID で顧客を取得する（所有ユーザーのもののみ）
func (r *PgClientRepository) GetByID(ctx context.Context, id, userID string) (*model.Client, error) {
	return scanClient(r.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1 AND user_id = $2`, id, userID))
}

// FindByName は名前で顧客を取得する（重複チェック用）
func (r *PgClientRepository) FindByName(ctx context.Context, name, userID string) (*model.Client, error) {
	return scanClient(r.pool.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE name = $1 AND user_id = $2`, name, userID))
}

// Create は顧客を作成する
func (r *PgClientRepository) Create(ctx context.Context, client *model.Client) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO clients (user_id, name, email, phone, address, city, postcode, country, website, is_active, notes)
		 VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), $8, NULLIF($9, ''), $10, NULLIF($11, ''))
		 RETURNING id, created_at, updated_at`,
		client.UserID, client.Name, client.Email, client.Phone, client.Address,
		client.City, client.Postcode, client.Country, client.Website, client.IsActive, client.Notes,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
}

// Update は顧客を更新する
func (r *PgClientRepository) Update(ctx context.Context, client *model.Client) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE clients SET name = $1, email = NULLIF($2, ''), phone = NULLIF($3, ''),
		   address = NULLIF($4, ''), city = NULLIF($5, ''), postcode = NULLIF($6, ''),
		   country = $7, website = NULLIF($8, ''), is_active = $9, notes = NULLIF($10, ''), updated_at = NOW()
		 WHERE id = $11 AND user_id = $12`,
		client.Name, client.Email, client.Phone, client.Address, client.City,
		client.Postcode, client.Country, client.Website, client.IsActive, client.Notes,
		client.ID, client.UserID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete は顧客を削除する
func (r *PgClientRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM clients WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
