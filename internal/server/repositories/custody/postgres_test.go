package custody

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

const (
	selectBalance = `(?s)^\s*SELECT\s+balance\s+FROM\s+custody_balances\s+WHERE\s+account\s*=\s*\$1\s*$`
	debit         = `(?s)^\s*UPDATE\s+custody_balances\s+SET\s+balance\s*=\s*balance\s*-\s*\$2\s+WHERE\s+account\s*=\s*\$1\s+AND\s+balance\s*>=\s*\$2\s*$`
	credit        = `(?s)^\s*INSERT\s+INTO\s+custody_balances\b.*ON\s+CONFLICT\s+\(account\)\s+DO\s+UPDATE`
)

func TestBalance(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectBalance).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(int64(77)))

	got, err := repo.Balance(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, uint64(77), got)
}

func TestBalance_UnknownIsZero(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectBalance).WithArgs("nobody").WillReturnError(sql.ErrNoRows)

	got, err := repo.Balance(context.Background(), "nobody")
	require.NoError(t, err)
	require.Zero(t, got)
}

func TestDebit(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		execErr  error
		wantErr  error
		wantText string
	}{
		{name: "ok", affected: 1},
		{name: "insufficient", affected: 0, wantErr: common.ErrorInsufficientBalance},
		{name: "db error", execErr: errors.New("down"), wantText: "db error: down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, db := newRepoWithMock(t)
			defer db.Close()

			exp := mock.ExpectExec(debit).WithArgs("alice", int64(10))
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			err := repo.Debit(context.Background(), "alice", 10)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
			case tt.wantText != "":
				require.ErrorContains(t, err, tt.wantText)
			default:
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDebit_ZeroIsNoop(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	require.NoError(t, repo.Debit(context.Background(), "alice", 0))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebitCredit_AboveBigintRange(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	err := repo.Debit(context.Background(), "alice", common.MaxAmount+1)
	require.ErrorIs(t, err, common.ErrorInsufficientBalance)

	err = repo.Credit(context.Background(), "contract", common.MaxAmount+1)
	require.ErrorIs(t, err, common.ErrorInvalidArgument)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDebit_MaxAmountReachesDatabase(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(debit).WithArgs("alice", int64(math.MaxInt64)).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Debit(context.Background(), "alice", common.MaxAmount)
	require.ErrorIs(t, err, common.ErrorInsufficientBalance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCredit(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(credit).WithArgs("contract", int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Credit(context.Background(), "contract", 5))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^\s*SELECT\s+account,\s*balance\s+FROM\s+custody_balances\s+ORDER\s+BY\s+account\s*$`).
		WillReturnRows(sqlmock.NewRows([]string{"account", "balance"}).AddRow("alice", int64(3)).AddRow("contract", int64(9)))

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, []models.CustodyBalance{{Account: "alice", Balance: 3}, {Account: "contract", Balance: 9}}, got)
}
