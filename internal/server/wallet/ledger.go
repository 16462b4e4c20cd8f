package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
)

// Deposit moves amount from the caller's external account into custody and
// credits recipient. The recipient's lock state is not consulted: funds may
// always be sent to a member, including one that is being recovered. The
// contract account cannot pay in, since its custody already backs the ledger.
func (w *Wallet) Deposit(ctx context.Context, call Call, amount uint64, recipient string) error {
	m, err := w.member(ctx, recipient)
	if err != nil {
		return err
	}
	if call.Caller == w.contract {
		return ErrNotAuthorized
	}
	if amount == 0 || amount > common.MaxAmount || m.Balance > common.MaxAmount-amount {
		return ErrInvalidAmount
	}

	if err := w.moveCustody(ctx, amount, call.Caller, w.contract); err != nil {
		return err
	}

	m.Balance += amount
	if err := w.store.SaveMember(ctx, m); err != nil {
		return fmt.Errorf("save member: %w", err)
	}

	return w.emitTransfer(ctx, call, amount, call.Caller, w.contract)
}

// Withdraw pays amount of the caller's ledger balance out to the caller's
// external account.
func (w *Wallet) Withdraw(ctx context.Context, call Call, amount uint64) error {
	if call.Caller == w.contract {
		return ErrNotAuthorized
	}
	m, err := w.spendable(ctx, call.Caller, amount)
	if err != nil {
		return err
	}

	m.Balance -= amount
	if err := w.store.SaveMember(ctx, m); err != nil {
		return fmt.Errorf("save member: %w", err)
	}
	if err := w.moveCustody(ctx, amount, w.contract, m.Account); err != nil {
		return err
	}

	return w.emitTransfer(ctx, call, amount, w.contract, m.Account)
}

// InternalTransfer moves amount between two member balances. No custody
// movement takes place.
func (w *Wallet) InternalTransfer(ctx context.Context, call Call, amount uint64, sender, recipient string, memo []byte) error {
	if err := w.authorizeSender(ctx, call, sender); err != nil {
		return err
	}
	to, err := w.member(ctx, recipient)
	if err != nil {
		return err
	}
	from, err := w.spendable(ctx, sender, amount)
	if err != nil {
		return err
	}

	from.Balance -= amount
	if from.Account == to.Account {
		to = from
	}
	to.Balance += amount

	if err := w.store.SaveMember(ctx, from); err != nil {
		return fmt.Errorf("save member: %w", err)
	}
	if to != from {
		if err := w.store.SaveMember(ctx, to); err != nil {
			return fmt.Errorf("save member: %w", err)
		}
	}

	return w.emitMemo(ctx, call, memo)
}

// ExternalTransfer debits sender and pays amount out of custody to recipient,
// who does not need to be a member but cannot be the contract account.
func (w *Wallet) ExternalTransfer(ctx context.Context, call Call, amount uint64, sender, recipient string, memo []byte) error {
	if err := w.authorizeSender(ctx, call, sender); err != nil {
		return err
	}
	if recipient == w.contract {
		return ErrNotAuthorized
	}
	from, err := w.spendable(ctx, sender, amount)
	if err != nil {
		return err
	}

	from.Balance -= amount
	if err := w.store.SaveMember(ctx, from); err != nil {
		return fmt.Errorf("save member: %w", err)
	}
	if err := w.moveCustody(ctx, amount, w.contract, recipient); err != nil {
		return err
	}

	if err := w.emitTransfer(ctx, call, amount, w.contract, recipient); err != nil {
		return err
	}
	return w.emitMemo(ctx, call, memo)
}

// Balance returns the ledger balance of account. Accounts that are not
// members have a balance of zero.
func (w *Wallet) Balance(ctx context.Context, account string) (uint64, error) {
	m, err := w.member(ctx, account)
	if errors.Is(err, ErrNotMember) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return m.Balance, nil
}

// Member returns the member record of account.
func (w *Wallet) Member(ctx context.Context, account string) (*models.Member, error) {
	return w.member(ctx, account)
}

// CustodyBalance returns the native asset held by an external account.
func (w *Wallet) CustodyBalance(ctx context.Context, account string) (uint64, error) {
	b, err := w.custody.Balance(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("custody balance: %w", err)
	}
	return b, nil
}

// authorizeSender requires the caller to be a member acting on its own funds.
func (w *Wallet) authorizeSender(ctx context.Context, call Call, sender string) error {
	if call.Caller == w.contract {
		return ErrNotAuthorized
	}
	if _, err := w.member(ctx, call.Caller); err != nil {
		return err
	}
	if call.Caller != sender {
		return ErrNotAuthorized
	}
	return nil
}

// spendable runs the shared guard chain of every debit: membership, lock,
// amount, funds.
func (w *Wallet) spendable(ctx context.Context, account string, amount uint64) (*models.Member, error) {
	m, err := w.member(ctx, account)
	if err != nil {
		return nil, err
	}
	locked, err := w.isLocked(ctx, account)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, ErrAccountLocked
	}
	if amount == 0 {
		return nil, ErrInvalidAmount
	}
	if m.Balance < amount {
		return nil, ErrInsufficientFunds
	}
	return m, nil
}

func (w *Wallet) moveCustody(ctx context.Context, amount uint64, from, to string) error {
	if err := w.custody.Transfer(ctx, amount, from, to); err != nil {
		if errors.Is(err, common.ErrorInsufficientBalance) {
			return ErrInsufficientFunds
		}
		return fmt.Errorf("custody transfer: %w", err)
	}
	return nil
}
