package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophwallet/internal/common"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
)

const (
	// LockWindow is the number of blocks a flagged account stays open to dissent.
	LockWindow uint64 = 200
	// CoolDownWindow is the number of blocks a locker waits before flagging again.
	CoolDownWindow uint64 = 2000
)

// MarkAsLost flags lost as compromised and nominates newOwner to take it over
// once the lock window passes without dissent. The caller becomes the locker
// and enters its cooldown.
func (w *Wallet) MarkAsLost(ctx context.Context, call Call, lost, newOwner string) error {
	locker := call.Caller

	if _, err := w.member(ctx, locker); err != nil {
		return err
	}

	taken, err := w.isMember(ctx, newOwner)
	if err != nil {
		return err
	}
	if taken {
		return ErrAlreadyAMember
	}
	if newOwner == w.contract {
		return ErrNotAuthorized
	}
	pending, err := w.store.NomineePending(ctx, newOwner)
	if err != nil {
		return fmt.Errorf("nominee lookup: %w", err)
	}
	if pending {
		return ErrAlreadyAMember
	}

	until, cooling, err := w.LockingCoolDown(ctx, locker)
	if err != nil {
		return err
	}
	if cooling && until > call.Height {
		return ErrLockingUnavailable
	}

	if _, err := w.member(ctx, lost); err != nil {
		return err
	}

	locked, err := w.isLocked(ctx, lost)
	if err != nil {
		return err
	}
	if locked {
		return ErrAlreadyLocked
	}

	lock := &models.LockRecord{
		Account:      lost,
		Locked:       true,
		UnlockHeight: call.Height + LockWindow,
		NewOwner:     newOwner,
		LockedBy:     locker,
		LockedAt:     call.Height,
	}
	if err := w.store.SaveLock(ctx, lock); err != nil {
		return fmt.Errorf("save lock: %w", err)
	}

	cd := &models.CooldownRecord{Member: locker, CoolDownUntil: call.Height + CoolDownWindow}
	if err := w.store.SaveCooldown(ctx, cd); err != nil {
		return fmt.Errorf("save cooldown: %w", err)
	}

	return nil
}

// Dissent cancels a pending lock on lost. Any member may dissent, the
// original locker included, up to and including the unlock height. The
// locker's cooldown is left in place. Dissenting on an account that is not
// locked changes nothing.
func (w *Wallet) Dissent(ctx context.Context, call Call, lost string) error {
	if _, err := w.member(ctx, call.Caller); err != nil {
		return err
	}

	lock, err := w.lock(ctx, lost)
	if err != nil {
		return err
	}
	if lock == nil {
		return nil
	}
	if call.Height > lock.UnlockHeight {
		return ErrDissentExpired
	}

	if err := w.store.DeleteLock(ctx, lost); err != nil {
		return fmt.Errorf("delete lock: %w", err)
	}
	return nil
}

// ExecuteRecovery finalizes an uncontested lock: the nominated owner replaces
// lost as a member and inherits its balance. Only a member or the nominated
// owner may execute it, and only once the unlock height is reached.
func (w *Wallet) ExecuteRecovery(ctx context.Context, call Call, lost string) error {
	lock, err := w.lock(ctx, lost)
	if err != nil {
		return err
	}
	if lock == nil {
		return ErrNotAuthorized
	}

	if call.Caller != lock.NewOwner {
		ok, err := w.isMember(ctx, call.Caller)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotAuthorized
		}
	}

	if call.Height < lock.UnlockHeight {
		return ErrDissentActive
	}

	taken, err := w.isMember(ctx, lock.NewOwner)
	if err != nil {
		return err
	}
	if taken {
		return ErrAlreadyAMember
	}

	old, err := w.member(ctx, lost)
	if err != nil {
		return err
	}

	if err := w.store.DeleteMember(ctx, lost); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	if err := w.store.SaveMember(ctx, &models.Member{Account: lock.NewOwner, Balance: old.Balance}); err != nil {
		return fmt.Errorf("save member: %w", err)
	}
	if err := w.store.DeleteLock(ctx, lost); err != nil {
		return fmt.Errorf("delete lock: %w", err)
	}

	return w.emit(ctx, call, models.Event{
		Kind:      models.EventRecovery,
		Amount:    old.Balance,
		Sender:    lost,
		Recipient: lock.NewOwner,
	})
}

// IsAccountUnlocked returns ErrAccountLocked while account carries a lock
// that has been neither dissented nor recovered.
func (w *Wallet) IsAccountUnlocked(ctx context.Context, account string) error {
	locked, err := w.isLocked(ctx, account)
	if err != nil {
		return err
	}
	if locked {
		return ErrAccountLocked
	}
	return nil
}

// UnlockTime returns the unlock height of account's lock, if it has one.
func (w *Wallet) UnlockTime(ctx context.Context, account string) (uint64, bool, error) {
	l, err := w.store.GetLock(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get lock: %w", err)
	}
	return l.UnlockHeight, true, nil
}

// LockingCoolDown returns the height until which member may not flag another
// account, if member has ever flagged one.
func (w *Wallet) LockingCoolDown(ctx context.Context, member string) (uint64, bool, error) {
	c, err := w.store.GetCooldown(ctx, member)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get cooldown: %w", err)
	}
	return c.CoolDownUntil, true, nil
}
