package events

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var columns = []string{"id", "call_id", "height", "kind", "amount", "sender", "recipient", "memo", "created_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func TestAppend(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	e := &models.Event{
		ID: uuid.New(), CallID: uuid.New(), Height: 12, Kind: models.EventTransfer,
		Amount: 100, Sender: "contract", Recipient: "alice", CreatedAt: time.Now(),
	}
	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+events\b.*VALUES\s*\(\$1,.*\$9\)\s*$`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), int64(12), "transfer", int64(100), "contract", "alice", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Append(context.Background(), e))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppend_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^\s*INSERT\s+INTO\s+events`).WillReturnError(errors.New("full"))

	err := repo.Append(context.Background(), &models.Event{Kind: models.EventMemo, Memo: []byte("hi")})
	require.ErrorContains(t, err, "db error: full")
}

func TestListByCall(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	callID := uuid.New()
	first, second := uuid.New(), uuid.New()
	now := time.Now()
	mock.ExpectQuery(`(?s)^\s*SELECT\s+id,.*FROM\s+events\s+WHERE\s+call_id\s*=\s*\$1\s+ORDER\s+BY`).
		WithArgs(callID.String()).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(first.String(), callID.String(), int64(5), "transfer", int64(9), "alice", "bob", nil, now).
			AddRow(second.String(), callID.String(), int64(5), "memo", int64(0), "", "", []byte("ref-1"), now))

	got, err := repo.ListByCall(context.Background(), callID.String())
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, first, got[0].ID)
	require.Equal(t, models.EventTransfer, got[0].Kind)
	require.Equal(t, uint64(9), got[0].Amount)
	require.Equal(t, models.EventMemo, got[1].Kind)
	require.Equal(t, []byte("ref-1"), got[1].Memo)
}
