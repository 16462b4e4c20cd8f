// Package locks persists pending recovery locks keyed by the lost account.
package locks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get returns the lock record of account, or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, account string) (*models.LockRecord, error) {
	query := `
		SELECT account, locked, unlock_height, new_owner, locked_by, locked_at
		FROM locks
		WHERE account = $1
	`
	l := &models.LockRecord{}
	err := r.db.QueryRowContext(ctx, query, account).
		Scan(&l.Account, &l.Locked, &l.UnlockHeight, &l.NewOwner, &l.LockedBy, &l.LockedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, l *models.LockRecord) error {
	query := `
		INSERT INTO locks (account, locked, unlock_height, new_owner, locked_by, locked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (account) DO UPDATE
		SET locked = EXCLUDED.locked,
			unlock_height = EXCLUDED.unlock_height,
			new_owner = EXCLUDED.new_owner,
			locked_by = EXCLUDED.locked_by,
			locked_at = EXCLUDED.locked_at
	`
	_, err := r.db.ExecContext(ctx, query,
		l.Account, l.Locked, int64(l.UnlockHeight), l.NewOwner, l.LockedBy, int64(l.LockedAt))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, account string) error {
	query := `
		DELETE FROM locks
		WHERE account = $1
	`
	if _, err := r.db.ExecContext(ctx, query, account); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// NomineeExists reports whether newOwner is nominated by any pending lock.
func (r *PostgresRepository) NomineeExists(ctx context.Context, newOwner string) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM locks WHERE new_owner = $1)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, newOwner).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.LockRecord, error) {
	query := `
		SELECT account, locked, unlock_height, new_owner, locked_by, locked_at
		FROM locks
		ORDER BY account
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.LockRecord
	for rows.Next() {
		var l models.LockRecord
		if err := rows.Scan(&l.Account, &l.Locked, &l.UnlockHeight, &l.NewOwner, &l.LockedBy, &l.LockedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
