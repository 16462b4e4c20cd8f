package receipts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/client/models"
	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Save stores r. A receipt already journaled under the same call id is kept.
// A zero RecordedAt is replaced by the current time.
func (r *SQLiteRepository) Save(ctx context.Context, rc *models.Receipt) error {
	value, err := json.Marshal(rc.Value)
	if err != nil {
		return fmt.Errorf("failed to encode receipt value: %w", err)
	}
	events := rc.Events
	if events == nil {
		events = []models.Event{}
	}
	ev, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to encode receipt events: %w", err)
	}
	if rc.RecordedAt.IsZero() {
		rc.RecordedAt = time.Now().UTC()
	}

	query := `INSERT INTO receipts (call_id, method, caller, height, result, code, error, value, events, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(call_id) DO NOTHING`
	_, err = r.db.ExecContext(ctx, query,
		rc.CallID, rc.Method, rc.Caller, int64(rc.Height), rc.Result, int64(rc.Code), rc.Error,
		string(value), string(ev), rc.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to save receipt: %w", err)
	}
	return nil
}

const selectReceipt = `SELECT call_id, method, caller, height, result, code, error, value, events, recorded_at FROM receipts`

type scanner interface {
	Scan(dest ...any) error
}

func scanReceipt(s scanner) (*models.Receipt, error) {
	var (
		rc            models.Receipt
		height, code  int64
		value, events string
	)
	if err := s.Scan(&rc.CallID, &rc.Method, &rc.Caller, &height, &rc.Result, &code, &rc.Error, &value, &events, &rc.RecordedAt); err != nil {
		return nil, err
	}
	rc.Height = uint64(height)
	rc.Code = uint32(code)
	if err := json.Unmarshal([]byte(value), &rc.Value); err != nil {
		return nil, fmt.Errorf("failed to decode receipt value: %w", err)
	}
	if err := json.Unmarshal([]byte(events), &rc.Events); err != nil {
		return nil, fmt.Errorf("failed to decode receipt events: %w", err)
	}
	return &rc, nil
}

// Get returns common.ErrorNotFound when the call was never journaled.
func (r *SQLiteRepository) Get(ctx context.Context, callID string) (*models.Receipt, error) {
	rc, err := scanReceipt(r.db.QueryRowContext(ctx, selectReceipt+` WHERE call_id = ?`, callID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return rc, nil
}

// List returns up to limit receipts, newest first.
func (r *SQLiteRepository) List(ctx context.Context, limit int) ([]models.Receipt, error) {
	rows, err := r.db.QueryContext(ctx, selectReceipt+` ORDER BY recorded_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select receipts: %w", err)
	}
	defer rows.Close()

	var result []models.Receipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
