package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, b Backend) {
	t.Helper()
	err := b.Atomic(context.Background(), func(ctx context.Context, tx Tx) error {
		if err := tx.Wallet().SaveMember(ctx, &models.Member{Account: "alice", Balance: 10}); err != nil {
			return err
		}
		if err := tx.Custody().Mint(ctx, "contract", 10); err != nil {
			return err
		}
		return tx.SetHeight(ctx, 1)
	})
	require.NoError(t, err)
}

func TestMemoryBackend_Commit(t *testing.T) {
	b := NewMemoryBackend()
	seed(t, b)

	err := b.Atomic(context.Background(), func(ctx context.Context, tx Tx) error {
		m, err := tx.Wallet().GetMember(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, uint64(10), m.Balance)

		h, err := tx.Height(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), h)
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryBackend_RollbackDiscardsEverything(t *testing.T) {
	b := NewMemoryBackend()
	seed(t, b)

	boom := errors.New("boom")
	callID := uuid.New()
	err := b.Atomic(context.Background(), func(ctx context.Context, tx Tx) error {
		s := tx.Wallet()
		require.NoError(t, s.SaveMember(ctx, &models.Member{Account: "alice", Balance: 0}))
		require.NoError(t, s.SaveMember(ctx, &models.Member{Account: "mallory", Balance: 99}))
		require.NoError(t, s.SaveLock(ctx, &models.LockRecord{Account: "alice", Locked: true}))
		require.NoError(t, s.SaveCooldown(ctx, &models.CooldownRecord{Member: "mallory", CoolDownUntil: 5}))
		require.NoError(t, s.AppendEvent(ctx, &models.Event{CallID: callID, Kind: models.EventTransfer}))
		require.NoError(t, tx.Custody().Transfer(ctx, 10, "contract", "mallory"))
		require.NoError(t, tx.SetHeight(ctx, 50))
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = b.Atomic(context.Background(), func(ctx context.Context, tx Tx) error {
		snap, err := tx.Snapshot(ctx, "contract")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), snap.Height)
		assert.Equal(t, []models.Member{{Account: "alice", Balance: 10}}, snap.Members)
		assert.Empty(t, snap.Locks)
		assert.Empty(t, snap.Cooldowns)
		assert.Equal(t, []models.CustodyBalance{{Account: "contract", Balance: 10}}, snap.Custody)

		evs, err := tx.CallEvents(ctx, callID.String())
		require.NoError(t, err)
		assert.Empty(t, evs)
		return nil
	})
	require.NoError(t, err)
}

func TestMemoryBackend_EventsSurviveOnlyOnCommit(t *testing.T) {
	b := NewMemoryBackend()
	committed, discarded := uuid.New(), uuid.New()

	require.NoError(t, b.Atomic(context.Background(), func(ctx context.Context, tx Tx) error {
		return tx.Wallet().AppendEvent(ctx, &models.Event{CallID: committed, Kind: models.EventTransfer})
	}))
	_ = b.Atomic(context.Background(), func(ctx context.Context, tx Tx) error {
		_ = tx.Wallet().AppendEvent(ctx, &models.Event{CallID: discarded, Kind: models.EventMemo})
		return errors.New("rejected")
	})
	require.NoError(t, b.Atomic(context.Background(), func(ctx context.Context, tx Tx) error {
		return tx.Wallet().AppendEvent(ctx, &models.Event{CallID: committed, Kind: models.EventMemo, Memo: []byte("x")})
	}))

	_ = b.Atomic(context.Background(), func(ctx context.Context, tx Tx) error {
		evs, _ := tx.CallEvents(ctx, committed.String())
		require.Len(t, evs, 2)
		assert.Equal(t, models.EventTransfer, evs[0].Kind)
		assert.Equal(t, models.EventMemo, evs[1].Kind)

		evs, _ = tx.CallEvents(ctx, discarded.String())
		assert.Empty(t, evs)
		return nil
	})
}

func TestMemoryBackend_GettersReturnCopies(t *testing.T) {
	b := NewMemoryBackend()
	seed(t, b)

	_ = b.Atomic(context.Background(), func(ctx context.Context, tx Tx) error {
		m, _ := tx.Wallet().GetMember(ctx, "alice")
		m.Balance = 1_000
		again, _ := tx.Wallet().GetMember(ctx, "alice")
		assert.Equal(t, uint64(10), again.Balance)

		_, err := tx.Wallet().GetLock(ctx, "alice")
		assert.ErrorIs(t, err, common.ErrorNotFound)
		_, err = tx.Wallet().GetCooldown(ctx, "alice")
		assert.ErrorIs(t, err, common.ErrorNotFound)
		return nil
	})
}

func TestMemoryStore_NomineePending(t *testing.T) {
	b := NewMemoryBackend()
	seed(t, b)

	_ = b.Atomic(context.Background(), func(ctx context.Context, tx Tx) error {
		st := tx.Wallet()
		require.NoError(t, st.SaveLock(ctx, &models.LockRecord{Account: "alice", Locked: true, NewOwner: "carol"}))

		pending, err := st.NomineePending(ctx, "carol")
		require.NoError(t, err)
		assert.True(t, pending)

		pending, err = st.NomineePending(ctx, "alice")
		require.NoError(t, err)
		assert.False(t, pending)

		require.NoError(t, st.DeleteLock(ctx, "alice"))
		pending, _ = st.NomineePending(ctx, "carol")
		assert.False(t, pending)
		return nil
	})
}

func TestMemoryCustody_Transfer(t *testing.T) {
	b := NewMemoryBackend()
	seed(t, b)

	_ = b.Atomic(context.Background(), func(ctx context.Context, tx Tx) error {
		c := tx.Custody()
		assert.ErrorIs(t, c.Transfer(ctx, 11, "contract", "bob"), common.ErrorInsufficientBalance)
		assert.ErrorIs(t, c.Transfer(ctx, 1, "nobody", "bob"), common.ErrorInsufficientBalance)
		require.NoError(t, c.Transfer(ctx, 4, "contract", "bob"))

		got, _ := c.Balance(ctx, "contract")
		assert.Equal(t, uint64(6), got)
		got, _ = c.Balance(ctx, "bob")
		assert.Equal(t, uint64(4), got)
		return nil
	})
}

func TestMemoryBackend_CanceledContext(t *testing.T) {
	b := NewMemoryBackend()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := b.Atomic(ctx, func(ctx context.Context, tx Tx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
