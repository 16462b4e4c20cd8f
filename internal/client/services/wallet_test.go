package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophwallet/internal/client/client"
	"github.com/dmitrijs2005/gophwallet/internal/client/models"
	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_JournalsMutatingReceipts(t *testing.T) {
	fc := &fakeClient{reply: map[string]any{
		"call_id": "c-1",
		"method":  "withdraw",
		"caller":  "alice",
		"height":  float64(9),
		"result":  "ok",
		"events": []any{
			map[string]any{"id": "e-1", "kind": "transfer", "amount": "5", "sender": "social-recovery", "recipient": "alice"},
		},
	}}
	svc := NewWalletService(fc, setupDB(t))
	ctx := context.Background()

	r, err := svc.Execute(ctx, "Withdraw", map[string]any{"amount": "5"})
	require.NoError(t, err)
	assert.True(t, r.OK())
	assert.Equal(t, "Withdraw", fc.lastMethod)
	assert.Equal(t, map[string]any{"amount": "5"}, fc.lastArgs)

	saved, err := svc.Receipt(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, r.Events, saved.Events)

	history, err := svc.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "c-1", history[0].CallID)
}

func TestExecute_QueriesAreNotJournaled(t *testing.T) {
	fc := &fakeClient{reply: map[string]any{
		"call_id": "c-2",
		"method":  "get-balance",
		"height":  float64(9),
		"result":  "ok",
		"value":   "100",
	}}
	svc := NewWalletService(fc, setupDB(t))
	ctx := context.Background()

	r, err := svc.Execute(ctx, "GetBalance", map[string]any{"account": "alice"})
	require.NoError(t, err)
	assert.Equal(t, "100", r.Value)

	_, err = svc.Receipt(ctx, "c-2")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestExecute_Errors(t *testing.T) {
	svc := NewWalletService(&fakeClient{callErr: client.ErrUnavailable}, setupDB(t))
	_, err := svc.Execute(context.Background(), "Deposit", nil)
	require.ErrorIs(t, err, client.ErrUnavailable)

	svc = NewWalletService(&fakeClient{reply: map[string]any{"status": "OK"}}, setupDB(t))
	_, err = svc.Execute(context.Background(), "Ping", nil)
	require.ErrorIs(t, err, models.ErrNotReceipt)
}

func TestCallEvents(t *testing.T) {
	fc := &fakeClient{reply: map[string]any{"events": []any{
		map[string]any{"id": "e-1", "kind": "memo", "memo_hex": "ab"},
	}}}
	svc := NewWalletService(fc, setupDB(t))

	events, err := svc.CallEvents(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "GetCallEvents", fc.lastMethod)
	assert.Equal(t, map[string]any{"call_id": "c-1"}, fc.lastArgs)
	assert.Equal(t, []models.Event{{ID: "e-1", Kind: "memo", MemoHex: "ab"}}, events)
}

func TestMineBlocks(t *testing.T) {
	fc := &fakeClient{reply: map[string]any{"height": float64(250)}}
	svc := NewWalletService(fc, setupDB(t))

	h, err := svc.MineBlocks(context.Background(), 200)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), h)
	assert.Equal(t, map[string]any{"count": "200"}, fc.lastArgs)

	fc.reply = map[string]any{}
	_, err = svc.MineBlocks(context.Background(), 1)
	require.Error(t, err)
}
