// Package storage provides the units of work the wallet runs in. A Backend
// executes a function against a Tx and either commits everything the function
// wrote or, when it returns an error, discards all of it.
package storage

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/dmitrijs2005/gophwallet/internal/server/wallet"
)

// Custody extends wallet.Custody with minting, used only by bootstrap.
type Custody interface {
	wallet.Custody
	Mint(ctx context.Context, account string, amount uint64) error
}

// Tx is the view of the whole state inside one unit of work.
type Tx interface {
	Wallet() wallet.Store
	Custody() Custody
	Height(ctx context.Context) (uint64, error)
	SetHeight(ctx context.Context, height uint64) error
	// CallEvents returns the events recorded by callID in emission order.
	CallEvents(ctx context.Context, callID string) ([]models.Event, error)
	// Snapshot copies members, locks, cooldowns and custody balances at the current height.
	Snapshot(ctx context.Context, contract string) (*models.Snapshot, error)
}

type Backend interface {
	Atomic(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Close() error
}
