// Package wallet implements the custodial member ledger and the social-recovery
// lock that gates it. A Wallet is bound to one unit of work: it reads and writes
// through a Store and a Custody that the caller commits or discards as a whole.
// Every guard runs before the first write, so a rejected call leaves no trace
// even before the surrounding transaction is rolled back.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/google/uuid"
)

// Call describes the context a single entry point executes in.
type Call struct {
	ID     uuid.UUID
	Height uint64
	Caller string
}

// Wallet runs ledger and recovery operations for one call.
type Wallet struct {
	store    Store
	custody  Custody
	contract string
	events   []models.Event
}

// New returns a Wallet whose custodied funds are held by the contract account.
func New(store Store, custody Custody, contract string) *Wallet {
	return &Wallet{store: store, custody: custody, contract: contract}
}

// Contract returns the account that holds the custodied funds.
func (w *Wallet) Contract() string {
	return w.contract
}

// Events returns the events emitted so far, in emission order.
func (w *Wallet) Events() []models.Event {
	out := make([]models.Event, len(w.events))
	copy(out, w.events)
	return out
}

func (w *Wallet) emit(ctx context.Context, call Call, e models.Event) error {
	e.ID = uuid.New()
	e.CallID = call.ID
	e.Height = call.Height
	e.CreatedAt = time.Now().UTC()
	if err := w.store.AppendEvent(ctx, &e); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	w.events = append(w.events, e)
	return nil
}

func (w *Wallet) emitTransfer(ctx context.Context, call Call, amount uint64, from, to string) error {
	return w.emit(ctx, call, models.Event{Kind: models.EventTransfer, Amount: amount, Sender: from, Recipient: to})
}

func (w *Wallet) emitMemo(ctx context.Context, call Call, memo []byte) error {
	if memo == nil {
		return nil
	}
	return w.emit(ctx, call, models.Event{Kind: models.EventMemo, Memo: memo})
}

// member loads a member or reports ErrNotMember.
func (w *Wallet) member(ctx context.Context, account string) (*models.Member, error) {
	m, err := w.store.GetMember(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrNotMember
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return m, nil
}

func (w *Wallet) isMember(ctx context.Context, account string) (bool, error) {
	_, err := w.member(ctx, account)
	if errors.Is(err, ErrNotMember) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// lock returns the lock record of account, or nil when there is none.
func (w *Wallet) lock(ctx context.Context, account string) (*models.LockRecord, error) {
	l, err := w.store.GetLock(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lock: %w", err)
	}
	if !l.Locked {
		return nil, nil
	}
	return l, nil
}

// isLocked is the predicate gating withdraw and both transfers.
func (w *Wallet) isLocked(ctx context.Context, account string) (bool, error) {
	l, err := w.lock(ctx, account)
	if err != nil {
		return false, err
	}
	return l != nil, nil
}
