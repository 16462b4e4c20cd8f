package wallet

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/google/uuid"
)

const testContract = "contract"

// --- fakes ---

type fakeStore struct {
	members   map[string]models.Member
	locks     map[string]models.LockRecord
	cooldowns map[string]models.CooldownRecord
	events    []models.Event
}

func newFakeStore(members ...string) *fakeStore {
	s := &fakeStore{
		members:   map[string]models.Member{},
		locks:     map[string]models.LockRecord{},
		cooldowns: map[string]models.CooldownRecord{},
	}
	for _, m := range members {
		s.members[m] = models.Member{Account: m}
	}
	return s
}

func (s *fakeStore) GetMember(_ context.Context, a string) (*models.Member, error) {
	m, ok := s.members[a]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &m, nil
}

func (s *fakeStore) SaveMember(_ context.Context, m *models.Member) error {
	s.members[m.Account] = *m
	return nil
}

func (s *fakeStore) DeleteMember(_ context.Context, a string) error {
	delete(s.members, a)
	return nil
}

func (s *fakeStore) GetLock(_ context.Context, a string) (*models.LockRecord, error) {
	l, ok := s.locks[a]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &l, nil
}

func (s *fakeStore) SaveLock(_ context.Context, l *models.LockRecord) error {
	s.locks[l.Account] = *l
	return nil
}

func (s *fakeStore) DeleteLock(_ context.Context, a string) error {
	delete(s.locks, a)
	return nil
}

func (s *fakeStore) NomineePending(_ context.Context, a string) (bool, error) {
	for _, l := range s.locks {
		if l.NewOwner == a {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) GetCooldown(_ context.Context, m string) (*models.CooldownRecord, error) {
	c, ok := s.cooldowns[m]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (s *fakeStore) SaveCooldown(_ context.Context, c *models.CooldownRecord) error {
	s.cooldowns[c.Member] = *c
	return nil
}

func (s *fakeStore) AppendEvent(_ context.Context, e *models.Event) error {
	s.events = append(s.events, *e)
	return nil
}

type fakeCustody struct {
	balances map[string]uint64
}

func newFakeCustody(funded map[string]uint64) *fakeCustody {
	c := &fakeCustody{balances: map[string]uint64{}}
	for a, b := range funded {
		c.balances[a] = b
	}
	return c
}

func (c *fakeCustody) Transfer(_ context.Context, amount uint64, from, to string) error {
	if c.balances[from] < amount {
		return common.ErrorInsufficientBalance
	}
	c.balances[from] -= amount
	c.balances[to] += amount
	return nil
}

func (c *fakeCustody) Balance(_ context.Context, a string) (uint64, error) {
	return c.balances[a], nil
}

// --- helpers ---

type env struct {
	store   *fakeStore
	custody *fakeCustody
	last    *Wallet
}

func newEnv(t *testing.T, members ...string) *env {
	t.Helper()
	funded := map[string]uint64{}
	for _, m := range members {
		funded[m] = 1_000_000
	}
	funded["outsider"] = 1_000_000
	return &env{store: newFakeStore(members...), custody: newFakeCustody(funded)}
}

// wallet returns a fresh Wallet, as the dispatcher does for every call.
func (e *env) wallet() *Wallet {
	e.last = New(e.store, e.custody, testContract)
	return e.last
}

func at(height uint64, caller string) Call {
	return Call{ID: uuid.New(), Height: height, Caller: caller}
}

func (e *env) balance(t *testing.T, account string) uint64 {
	t.Helper()
	b, err := e.wallet().Balance(context.Background(), account)
	if err != nil {
		t.Fatalf("Balance(%s): %v", account, err)
	}
	return b
}
