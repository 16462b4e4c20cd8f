package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/server/storage"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type recordedCall struct {
	method, result, code string
}

type fakeObserver struct {
	calls  []recordedCall
	height uint64
}

func (f *fakeObserver) ObserveCall(method, result, code string, _ time.Duration) {
	f.calls = append(f.calls, recordedCall{method, result, code})
}

func (f *fakeObserver) SetHeight(h uint64) { f.height = h }

const (
	contract = "social-recovery"
	funds    = uint64(1_000)
)

type fixture struct {
	backend  *storage.MemoryBackend
	svc      *WalletService
	chain    *BlockProducer
	observer *fakeObserver
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := storage.NewMemoryBackend()
	_, err := Bootstrap(context.Background(), b, Genesis{
		Contract:     contract,
		Members:      []string{"alice", "bob", "carol"},
		Funded:       []string{"alice", "bob", "carol", "dave"},
		InitialFunds: funds,
	})
	require.NoError(t, err)

	obs := &fakeObserver{}
	return &fixture{
		backend:  b,
		svc:      NewWalletService(b, contract, nopLogger{}, obs),
		chain:    NewBlockProducer(b, 0, nopLogger{}, obs),
		observer: obs,
	}
}

func (f *fixture) balance(t *testing.T, account string) uint64 {
	t.Helper()
	r, err := f.svc.GetBalance(context.Background(), account)
	require.NoError(t, err)
	require.True(t, r.OK())
	return r.Value.(uint64)
}

func (f *fixture) custody(t *testing.T, account string) uint64 {
	t.Helper()
	r, err := f.svc.GetCustodyBalance(context.Background(), account)
	require.NoError(t, err)
	return r.Value.(uint64)
}

func (f *fixture) mine(t *testing.T, n uint64) {
	t.Helper()
	_, err := f.chain.MineBlocks(context.Background(), n)
	require.NoError(t, err)
}
