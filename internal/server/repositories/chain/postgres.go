// Package chain persists the current block height of the wallet.
package chain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophwallet/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Height returns the stored height, 0 before the chain is bootstrapped.
func (r *PostgresRepository) Height(ctx context.Context) (uint64, error) {
	query := `
		SELECT height
		FROM chain_state
		WHERE id = 1
	`
	var h uint64
	if err := r.db.QueryRowContext(ctx, query).Scan(&h); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return h, nil
}

func (r *PostgresRepository) SetHeight(ctx context.Context, height uint64) error {
	query := `
		INSERT INTO chain_state (id, height)
		VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE
		SET height = EXCLUDED.height
	`
	if _, err := r.db.ExecContext(ctx, query, int64(height)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
