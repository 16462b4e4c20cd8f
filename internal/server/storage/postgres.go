package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophwallet/internal/server/wallet"
)

// PostgresBackend runs every unit of work in one serializable transaction,
// replayed when PostgreSQL reports a serialization conflict.
type PostgresBackend struct {
	db *sql.DB
	rm repomanager.RepositoryManager
}

func NewPostgresBackend(db *sql.DB, rm repomanager.RepositoryManager) *PostgresBackend {
	return &PostgresBackend{db: db, rm: rm}
}

func (b *PostgresBackend) Atomic(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return dbx.WithSerializableTx(ctx, b.db, dbx.DefaultAttempts, func(ctx context.Context, q dbx.DBTX) error {
		return fn(ctx, &postgresTx{rm: b.rm, q: q})
	})
}

func (b *PostgresBackend) Close() error {
	return b.db.Close()
}

type postgresTx struct {
	rm repomanager.RepositoryManager
	q  dbx.DBTX
}

func (t *postgresTx) Wallet() wallet.Store { return (*postgresStore)(t) }
func (t *postgresTx) Custody() Custody     { return (*postgresCustody)(t) }

func (t *postgresTx) Height(ctx context.Context) (uint64, error) {
	return t.rm.Chain(t.q).Height(ctx)
}

func (t *postgresTx) SetHeight(ctx context.Context, height uint64) error {
	return t.rm.Chain(t.q).SetHeight(ctx, height)
}

func (t *postgresTx) CallEvents(ctx context.Context, callID string) ([]models.Event, error) {
	return t.rm.Events(t.q).ListByCall(ctx, callID)
}

func (t *postgresTx) Snapshot(ctx context.Context, contract string) (*models.Snapshot, error) {
	h, err := t.Height(ctx)
	if err != nil {
		return nil, err
	}
	snap := &models.Snapshot{Height: h, Contract: contract, TakenAt: time.Now().UTC()}

	if snap.Members, err = t.rm.Members(t.q).List(ctx); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	if snap.Locks, err = t.rm.Locks(t.q).List(ctx); err != nil {
		return nil, fmt.Errorf("list locks: %w", err)
	}
	if snap.Cooldowns, err = t.rm.Cooldowns(t.q).List(ctx); err != nil {
		return nil, fmt.Errorf("list cooldowns: %w", err)
	}
	if snap.Custody, err = t.rm.Custody(t.q).List(ctx); err != nil {
		return nil, fmt.Errorf("list custody: %w", err)
	}
	return snap, nil
}

type postgresStore postgresTx

func (s *postgresStore) GetMember(ctx context.Context, account string) (*models.Member, error) {
	return s.rm.Members(s.q).Get(ctx, account)
}

func (s *postgresStore) SaveMember(ctx context.Context, m *models.Member) error {
	return s.rm.Members(s.q).Upsert(ctx, m)
}

func (s *postgresStore) DeleteMember(ctx context.Context, account string) error {
	return s.rm.Members(s.q).Delete(ctx, account)
}

func (s *postgresStore) GetLock(ctx context.Context, account string) (*models.LockRecord, error) {
	return s.rm.Locks(s.q).Get(ctx, account)
}

func (s *postgresStore) SaveLock(ctx context.Context, l *models.LockRecord) error {
	return s.rm.Locks(s.q).Upsert(ctx, l)
}

func (s *postgresStore) DeleteLock(ctx context.Context, account string) error {
	return s.rm.Locks(s.q).Delete(ctx, account)
}

func (s *postgresStore) NomineePending(ctx context.Context, account string) (bool, error) {
	return s.rm.Locks(s.q).NomineeExists(ctx, account)
}

func (s *postgresStore) GetCooldown(ctx context.Context, member string) (*models.CooldownRecord, error) {
	return s.rm.Cooldowns(s.q).Get(ctx, member)
}

func (s *postgresStore) SaveCooldown(ctx context.Context, c *models.CooldownRecord) error {
	return s.rm.Cooldowns(s.q).Upsert(ctx, c)
}

func (s *postgresStore) AppendEvent(ctx context.Context, e *models.Event) error {
	return s.rm.Events(s.q).Append(ctx, e)
}

type postgresCustody postgresTx

func (c *postgresCustody) Balance(ctx context.Context, account string) (uint64, error) {
	return c.rm.Custody(c.q).Balance(ctx, account)
}

// Transfer debits from before crediting to; a failed debit leaves both rows untouched.
func (c *postgresCustody) Transfer(ctx context.Context, amount uint64, from, to string) error {
	repo := c.rm.Custody(c.q)
	if err := repo.Debit(ctx, from, amount); err != nil {
		return err
	}
	if amount == 0 {
		return nil
	}
	return repo.Credit(ctx, to, amount)
}

func (c *postgresCustody) Mint(ctx context.Context, account string, amount uint64) error {
	return c.rm.Custody(c.q).Credit(ctx, account, amount)
}
