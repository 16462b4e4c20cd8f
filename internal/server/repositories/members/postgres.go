// Package members stores wallet members and their ledger balances in PostgreSQL.
package members

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get returns the member row for account, or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, account string) (*models.Member, error) {
	query := `
		SELECT account, balance
		FROM members
		WHERE account = $1
	`
	m := &models.Member{}
	if err := r.db.QueryRowContext(ctx, query, account).Scan(&m.Account, &m.Balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

// Upsert inserts the member or overwrites its balance.
func (r *PostgresRepository) Upsert(ctx context.Context, m *models.Member) error {
	query := `
		INSERT INTO members (account, balance, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (account) DO UPDATE
		SET balance = EXCLUDED.balance, updated_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, m.Account, int64(m.Balance)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes the member. Deleting an absent member is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, account string) error {
	query := `
		DELETE FROM members
		WHERE account = $1
	`
	if _, err := r.db.ExecContext(ctx, query, account); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// List returns all members ordered by account.
func (r *PostgresRepository) List(ctx context.Context) ([]models.Member, error) {
	query := `
		SELECT account, balance
		FROM members
		ORDER BY account
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.Account, &m.Balance); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
