// Package events stores the append-only log of events emitted by committed calls.
package events

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, e *models.Event) error {
	query := `
		INSERT INTO events (id, call_id, height, kind, amount, sender, recipient, memo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.CallID, int64(e.Height), string(e.Kind), int64(e.Amount),
		e.Sender, e.Recipient, e.Memo, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByCall returns the events of one call in emission order.
func (r *PostgresRepository) ListByCall(ctx context.Context, callID string) ([]models.Event, error) {
	query := `
		SELECT id, call_id, height, kind, amount, sender, recipient, memo, created_at
		FROM events
		WHERE call_id = $1
		ORDER BY seq
	`
	return r.list(ctx, query, callID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Event
	for rows.Next() {
		var (
			e    models.Event
			kind string
		)
		if err := rows.Scan(&e.ID, &e.CallID, &e.Height, &kind, &e.Amount,
			&e.Sender, &e.Recipient, &e.Memo, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		e.Kind = models.EventKind(kind)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
