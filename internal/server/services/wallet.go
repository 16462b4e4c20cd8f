// Package services contains server-side business logic. WalletService is the
// dispatcher of the wallet: it runs every entry point serially, each in its
// own unit of work, and reports the outcome as a Receipt.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/dmitrijs2005/gophwallet/internal/server/storage"
	"github.com/dmitrijs2005/gophwallet/internal/server/wallet"
	"github.com/google/uuid"
)

// Receipt is the outcome of one call. A rejected call carries Err and no
// events; its effects were rolled back.
type Receipt struct {
	CallID uuid.UUID
	Height uint64
	Method string
	Caller string
	Value  any
	Err    *wallet.Error
	Events []models.Event
}

// OK reports whether the call committed.
func (r *Receipt) OK() bool { return r.Err == nil }

// MemberView is the value returned by GetMember.
type MemberView struct {
	Account string
	Balance uint64
}

type WalletService struct {
	mu       sync.Mutex
	backend  storage.Backend
	contract string
	logger   logging.Logger
	observer Observer
}

func NewWalletService(backend storage.Backend, contract string, logger logging.Logger, observer Observer) *WalletService {
	if observer == nil {
		observer = nopObserver{}
	}
	return &WalletService{
		backend:  backend,
		contract: contract,
		logger:   logger.With("module", "wallet"),
		observer: observer,
	}
}

// Contract returns the account holding the custodied funds.
func (s *WalletService) Contract() string { return s.contract }

type callFunc func(ctx context.Context, w *wallet.Wallet, call wallet.Call) (any, error)

func (s *WalletService) exec(ctx context.Context, method, caller string, fn callFunc) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	started := time.Now()
	r := &Receipt{CallID: uuid.New(), Method: method, Caller: caller}

	err := s.backend.Atomic(ctx, func(ctx context.Context, tx storage.Tx) error {
		h, err := tx.Height(ctx)
		if err != nil {
			return fmt.Errorf("read height: %w", err)
		}
		r.Height = h

		w := wallet.New(tx.Wallet(), tx.Custody(), s.contract)
		v, err := fn(ctx, w, wallet.Call{ID: r.CallID, Height: h, Caller: caller})
		if err != nil {
			return err
		}
		r.Value = v
		r.Events = w.Events()
		return nil
	})

	if err != nil {
		var rejected *wallet.Error
		if errors.As(err, &rejected) {
			r.Err = rejected
			r.Value = nil
			r.Events = nil
			code := strconv.FormatUint(uint64(rejected.Code), 10)
			s.observer.ObserveCall(method, "err", code, time.Since(started))
			s.logger.Debug(ctx, "call rejected", "method", method, "caller", caller, "code", code)
			return r, nil
		}
		s.observer.ObserveCall(method, "failed", "", time.Since(started))
		s.logger.Error(ctx, "call failed", "method", method, "caller", caller, "error", err)
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	s.observer.ObserveCall(method, "ok", "", time.Since(started))
	s.logger.Debug(ctx, "call committed", "method", method, "caller", caller, "height", r.Height, "events", len(r.Events))
	return r, nil
}

func (s *WalletService) Deposit(ctx context.Context, caller string, amount uint64, recipient string) (*Receipt, error) {
	if err := checkAccount("recipient", recipient); err != nil {
		return nil, err
	}
	return s.exec(ctx, "deposit", caller, func(ctx context.Context, w *wallet.Wallet, call wallet.Call) (any, error) {
		return nil, w.Deposit(ctx, call, amount, recipient)
	})
}

func (s *WalletService) Withdraw(ctx context.Context, caller string, amount uint64) (*Receipt, error) {
	return s.exec(ctx, "withdraw", caller, func(ctx context.Context, w *wallet.Wallet, call wallet.Call) (any, error) {
		return nil, w.Withdraw(ctx, call, amount)
	})
}

func (s *WalletService) InternalTransfer(ctx context.Context, caller string, amount uint64, sender, recipient string, memo []byte) (*Receipt, error) {
	if err := checkMemo(memo); err != nil {
		return nil, err
	}
	return s.exec(ctx, "internal-transfer", caller, func(ctx context.Context, w *wallet.Wallet, call wallet.Call) (any, error) {
		return nil, w.InternalTransfer(ctx, call, amount, sender, recipient, memo)
	})
}

func (s *WalletService) ExternalTransfer(ctx context.Context, caller string, amount uint64, sender, recipient string, memo []byte) (*Receipt, error) {
	if err := checkMemo(memo); err != nil {
		return nil, err
	}
	if err := checkAccount("recipient", recipient); err != nil {
		return nil, err
	}
	return s.exec(ctx, "external-transfer", caller, func(ctx context.Context, w *wallet.Wallet, call wallet.Call) (any, error) {
		return nil, w.ExternalTransfer(ctx, call, amount, sender, recipient, memo)
	})
}

func (s *WalletService) MarkAsLost(ctx context.Context, caller, lost, newOwner string) (*Receipt, error) {
	if err := checkAccount("new_owner", newOwner); err != nil {
		return nil, err
	}
	return s.exec(ctx, "mark-as-lost", caller, func(ctx context.Context, w *wallet.Wallet, call wallet.Call) (any, error) {
		return nil, w.MarkAsLost(ctx, call, lost, newOwner)
	})
}

func (s *WalletService) Dissent(ctx context.Context, caller, lost string) (*Receipt, error) {
	return s.exec(ctx, "dissent", caller, func(ctx context.Context, w *wallet.Wallet, call wallet.Call) (any, error) {
		return nil, w.Dissent(ctx, call, lost)
	})
}

func (s *WalletService) ExecuteRecovery(ctx context.Context, caller, lost string) (*Receipt, error) {
	return s.exec(ctx, "execute-recovery", caller, func(ctx context.Context, w *wallet.Wallet, call wallet.Call) (any, error) {
		return nil, w.ExecuteRecovery(ctx, call, lost)
	})
}

// GetBalance returns 0 for accounts that are not members.
func (s *WalletService) GetBalance(ctx context.Context, account string) (*Receipt, error) {
	return s.exec(ctx, "get-balance", "", func(ctx context.Context, w *wallet.Wallet, _ wallet.Call) (any, error) {
		return w.Balance(ctx, account)
	})
}

func (s *WalletService) GetMember(ctx context.Context, account string) (*Receipt, error) {
	return s.exec(ctx, "get-member", "", func(ctx context.Context, w *wallet.Wallet, _ wallet.Call) (any, error) {
		m, err := w.Member(ctx, account)
		if err != nil {
			return nil, err
		}
		return MemberView{Account: m.Account, Balance: m.Balance}, nil
	})
}

// GetUnlockTime yields a nil value when the account carries no lock.
func (s *WalletService) GetUnlockTime(ctx context.Context, account string) (*Receipt, error) {
	return s.exec(ctx, "get-unlock-time", "", func(ctx context.Context, w *wallet.Wallet, _ wallet.Call) (any, error) {
		return optional(w.UnlockTime(ctx, account))
	})
}

// GetLockingCoolDown yields a nil value when the member never flagged an account.
func (s *WalletService) GetLockingCoolDown(ctx context.Context, member string) (*Receipt, error) {
	return s.exec(ctx, "get-locking-cool-down", "", func(ctx context.Context, w *wallet.Wallet, _ wallet.Call) (any, error) {
		return optional(w.LockingCoolDown(ctx, member))
	})
}

func (s *WalletService) IsAccountUnlocked(ctx context.Context, account string) (*Receipt, error) {
	return s.exec(ctx, "is-account-unlocked", "", func(ctx context.Context, w *wallet.Wallet, _ wallet.Call) (any, error) {
		if err := w.IsAccountUnlocked(ctx, account); err != nil {
			return nil, err
		}
		return true, nil
	})
}

func (s *WalletService) GetCustodyBalance(ctx context.Context, account string) (*Receipt, error) {
	return s.exec(ctx, "get-custody-balance", "", func(ctx context.Context, w *wallet.Wallet, _ wallet.Call) (any, error) {
		return w.CustodyBalance(ctx, account)
	})
}

func (s *WalletService) GetHeight(ctx context.Context) (*Receipt, error) {
	return s.exec(ctx, "get-height", "", func(ctx context.Context, _ *wallet.Wallet, call wallet.Call) (any, error) {
		return call.Height, nil
	})
}

// CallEvents returns the events a committed call recorded.
func (s *WalletService) CallEvents(ctx context.Context, callID string) ([]models.Event, error) {
	if _, err := uuid.Parse(callID); err != nil {
		return nil, fmt.Errorf("%w: malformed call id", common.ErrorInvalidArgument)
	}
	var out []models.Event
	err := s.backend.Atomic(ctx, func(ctx context.Context, tx storage.Tx) error {
		var err error
		out, err = tx.CallEvents(ctx, callID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("call events: %w", err)
	}
	return out, nil
}

func optional(v uint64, ok bool, err error) (any, error) {
	if err != nil || !ok {
		return nil, err
	}
	return v, nil
}
