package wallet

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/server/models"
)

// Store is the keyed state a Wallet operates on. Getters return
// common.ErrorNotFound for absent keys and fresh copies otherwise, so callers
// may mutate the returned values freely before saving them back.
type Store interface {
	GetMember(ctx context.Context, account string) (*models.Member, error)
	SaveMember(ctx context.Context, m *models.Member) error
	DeleteMember(ctx context.Context, account string) error

	GetLock(ctx context.Context, account string) (*models.LockRecord, error)
	SaveLock(ctx context.Context, l *models.LockRecord) error
	DeleteLock(ctx context.Context, account string) error
	// NomineePending reports whether account is the new owner named by any lock.
	NomineePending(ctx context.Context, account string) (bool, error)

	GetCooldown(ctx context.Context, member string) (*models.CooldownRecord, error)
	SaveCooldown(ctx context.Context, c *models.CooldownRecord) error

	AppendEvent(ctx context.Context, e *models.Event) error
}

// Custody moves native asset between external accounts. Transfer returns
// common.ErrorInsufficientBalance when from cannot cover amount.
type Custody interface {
	Transfer(ctx context.Context, amount uint64, from, to string) error
	Balance(ctx context.Context, account string) (uint64, error)
}
