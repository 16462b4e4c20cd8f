package storage

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/dmitrijs2005/gophwallet/internal/server/wallet"
)

type memState struct {
	height    uint64
	members   map[string]models.Member
	locks     map[string]models.LockRecord
	cooldowns map[string]models.CooldownRecord
	custody   map[string]uint64
	events    []models.Event
}

// clone copies the maps. The events slice is shared but capped, so appends
// in the copy never write into the committed backing array.
func (s *memState) clone() *memState {
	return &memState{
		height:    s.height,
		members:   maps.Clone(s.members),
		locks:     maps.Clone(s.locks),
		cooldowns: maps.Clone(s.cooldowns),
		custody:   maps.Clone(s.custody),
		events:    s.events[:len(s.events):len(s.events)],
	}
}

// MemoryBackend keeps the whole state in process memory. Each unit of work
// runs on a copy that replaces the committed state only on success.
type MemoryBackend struct {
	mu    sync.Mutex
	state *memState
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{state: &memState{
		members:   map[string]models.Member{},
		locks:     map[string]models.LockRecord{},
		cooldowns: map[string]models.CooldownRecord{},
		custody:   map[string]uint64{},
	}}
}

func (b *MemoryBackend) Atomic(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := b.state.clone()
	if err := fn(ctx, &memTx{st: work}); err != nil {
		return err
	}
	b.state = work
	return nil
}

func (b *MemoryBackend) Close() error { return nil }

type memTx struct {
	st *memState
}

func (t *memTx) Wallet() wallet.Store { return (*memStore)(t) }
func (t *memTx) Custody() Custody     { return (*memCustody)(t) }

func (t *memTx) Height(ctx context.Context) (uint64, error) {
	return t.st.height, nil
}

func (t *memTx) SetHeight(ctx context.Context, height uint64) error {
	t.st.height = height
	return nil
}

func (t *memTx) CallEvents(ctx context.Context, callID string) ([]models.Event, error) {
	var out []models.Event
	for _, e := range t.st.events {
		if e.CallID.String() == callID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (t *memTx) Snapshot(ctx context.Context, contract string) (*models.Snapshot, error) {
	snap := &models.Snapshot{
		Height:   t.st.height,
		Contract: contract,
		TakenAt:  time.Now().UTC(),
	}
	for _, k := range slices.Sorted(maps.Keys(t.st.members)) {
		snap.Members = append(snap.Members, t.st.members[k])
	}
	for _, k := range slices.Sorted(maps.Keys(t.st.locks)) {
		snap.Locks = append(snap.Locks, t.st.locks[k])
	}
	for _, k := range slices.Sorted(maps.Keys(t.st.cooldowns)) {
		snap.Cooldowns = append(snap.Cooldowns, t.st.cooldowns[k])
	}
	for _, k := range slices.Sorted(maps.Keys(t.st.custody)) {
		snap.Custody = append(snap.Custody, models.CustodyBalance{Account: k, Balance: t.st.custody[k]})
	}
	return snap, nil
}

type memStore memTx

func (s *memStore) GetMember(ctx context.Context, account string) (*models.Member, error) {
	m, ok := s.st.members[account]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &m, nil
}

func (s *memStore) SaveMember(ctx context.Context, m *models.Member) error {
	s.st.members[m.Account] = *m
	return nil
}

func (s *memStore) DeleteMember(ctx context.Context, account string) error {
	delete(s.st.members, account)
	return nil
}

func (s *memStore) GetLock(ctx context.Context, account string) (*models.LockRecord, error) {
	l, ok := s.st.locks[account]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &l, nil
}

func (s *memStore) SaveLock(ctx context.Context, l *models.LockRecord) error {
	s.st.locks[l.Account] = *l
	return nil
}

func (s *memStore) DeleteLock(ctx context.Context, account string) error {
	delete(s.st.locks, account)
	return nil
}

func (s *memStore) NomineePending(ctx context.Context, account string) (bool, error) {
	for _, l := range s.st.locks {
		if l.NewOwner == account {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) GetCooldown(ctx context.Context, member string) (*models.CooldownRecord, error) {
	c, ok := s.st.cooldowns[member]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (s *memStore) SaveCooldown(ctx context.Context, c *models.CooldownRecord) error {
	s.st.cooldowns[c.Member] = *c
	return nil
}

func (s *memStore) AppendEvent(ctx context.Context, e *models.Event) error {
	ev := *e
	ev.Memo = slices.Clone(e.Memo)
	s.st.events = append(s.st.events, ev)
	return nil
}

type memCustody memTx

func (c *memCustody) Balance(ctx context.Context, account string) (uint64, error) {
	return c.st.custody[account], nil
}

func (c *memCustody) Transfer(ctx context.Context, amount uint64, from, to string) error {
	if c.st.custody[from] < amount {
		return common.ErrorInsufficientBalance
	}
	if amount == 0 {
		return nil
	}
	c.st.custody[from] -= amount
	c.st.custody[to] += amount
	return nil
}

func (c *memCustody) Mint(ctx context.Context, account string, amount uint64) error {
	c.st.custody[account] += amount
	return nil
}
