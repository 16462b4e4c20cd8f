package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophwallet/internal/client/models"
	"github.com/dmitrijs2005/gophwallet/internal/dbx"
)

const (
	keyAccount     = "account"
	keyAccessToken = "access_token"
	keyOperator    = "operator"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) get(ctx context.Context, key string) (string, bool, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return string(value), true, nil
}

func (r *SQLiteRepository) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, []byte(value))
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

// Load reads the saved session. A half-written session (account without
// token) counts as none.
func (r *SQLiteRepository) Load(ctx context.Context) (*models.Session, error) {
	account, ok, err := r.get(ctx, keyAccount)
	if err != nil || !ok {
		return nil, err
	}
	token, ok, err := r.get(ctx, keyAccessToken)
	if err != nil || !ok {
		return nil, err
	}
	operator, _, err := r.get(ctx, keyOperator)
	if err != nil {
		return nil, err
	}
	return &models.Session{Account: account, AccessToken: token, Operator: operator == "1"}, nil
}

// Save overwrites the stored session. Run it inside dbx.WithTx to keep the
// keys consistent.
func (r *SQLiteRepository) Save(ctx context.Context, s *models.Session) error {
	operator := "0"
	if s.Operator {
		operator = "1"
	}
	if err := r.set(ctx, keyAccount, s.Account); err != nil {
		return err
	}
	if err := r.set(ctx, keyAccessToken, s.AccessToken); err != nil {
		return err
	}
	return r.set(ctx, keyOperator, operator)
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key IN (?, ?, ?)`, keyAccount, keyAccessToken, keyOperator)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
