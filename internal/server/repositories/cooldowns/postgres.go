// Package cooldowns persists the height until which a member may not flag
// another account as lost.
package cooldowns

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

func (r *PostgresRepository) Get(ctx context.Context, member string) (*models.CooldownRecord, error) {
	query := `
		SELECT member, cool_down_until
		FROM cooldowns
		WHERE member = $1
	`
	c := &models.CooldownRecord{}
	if err := r.db.QueryRowContext(ctx, query, member).Scan(&c.Member, &c.CoolDownUntil); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, c *models.CooldownRecord) error {
	query := `
		INSERT INTO cooldowns (member, cool_down_until)
		VALUES ($1, $2)
		ON CONFLICT (member) DO UPDATE
		SET cool_down_until = EXCLUDED.cool_down_until
	`
	if _, err := r.db.ExecContext(ctx, query, c.Member, int64(c.CoolDownUntil)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.CooldownRecord, error) {
	query := `
		SELECT member, cool_down_until
		FROM cooldowns
		ORDER BY member
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.CooldownRecord
	for rows.Next() {
		var c models.CooldownRecord
		if err := rows.Scan(&c.Member, &c.CoolDownUntil); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
