// Package custody keeps the native-asset balances of external accounts,
// including the contract account that holds the wallet's funds.
package custody

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

// Balance returns the custody balance of account. Unknown accounts hold 0.
func (r *PostgresRepository) Balance(ctx context.Context, account string) (uint64, error) {
	query := `
		SELECT balance
		FROM custody_balances
		WHERE account = $1
	`
	var balance uint64
	if err := r.db.QueryRowContext(ctx, query, account).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return balance, nil
}

// Debit subtracts amount from account. When the row is missing or holds less
// than amount nothing changes and common.ErrorInsufficientBalance is returned.
func (r *PostgresRepository) Debit(ctx context.Context, account string, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if amount > common.MaxAmount {
		return common.ErrorInsufficientBalance
	}
	query := `
		UPDATE custody_balances
		SET balance = balance - $2
		WHERE account = $1 AND balance >= $2
	`
	res, err := r.db.ExecContext(ctx, query, account, int64(amount))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorInsufficientBalance
	}
	return nil
}

// Credit adds amount to account, creating the row on first use.
func (r *PostgresRepository) Credit(ctx context.Context, account string, amount uint64) error {
	if amount > common.MaxAmount {
		return fmt.Errorf("%w: credit above %d", common.ErrorInvalidArgument, common.MaxAmount)
	}
	query := `
		INSERT INTO custody_balances (account, balance)
		VALUES ($1, $2)
		ON CONFLICT (account) DO UPDATE
		SET balance = custody_balances.balance + EXCLUDED.balance
	`
	if _, err := r.db.ExecContext(ctx, query, account, int64(amount)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.CustodyBalance, error) {
	query := `
		SELECT account, balance
		FROM custody_balances
		ORDER BY account
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.CustodyBalance
	for rows.Next() {
		var b models.CustodyBalance
		if err := rows.Scan(&b.Account, &b.Balance); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
