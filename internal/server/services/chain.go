package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/server/storage"
	"github.com/dmitrijs2005/gophwallet/internal/server/wallet"
)

// MaxBlocksPerCall bounds a single MineBlocks request.
const MaxBlocksPerCall = 100_000

// BlockHook runs after a block has been committed.
type BlockHook func(ctx context.Context, height uint64)

// BlockProducer owns the block height. It advances it on a ticker and on demand.
type BlockProducer struct {
	backend  storage.Backend
	interval time.Duration
	logger   logging.Logger
	observer Observer
	hooks    []BlockHook
}

func NewBlockProducer(backend storage.Backend, interval time.Duration, logger logging.Logger, observer Observer) *BlockProducer {
	if observer == nil {
		observer = nopObserver{}
	}
	return &BlockProducer{
		backend:  backend,
		interval: interval,
		logger:   logger.With("module", "chain"),
		observer: observer,
	}
}

// OnBlock registers a hook. Hooks must be registered before Run.
func (p *BlockProducer) OnBlock(h BlockHook) {
	p.hooks = append(p.hooks, h)
}

// MineBlocks advances the height by n and returns the new height.
func (p *BlockProducer) MineBlocks(ctx context.Context, n uint64) (uint64, error) {
	if n == 0 || n > MaxBlocksPerCall {
		return 0, fmt.Errorf("block count must be within 1..%d", MaxBlocksPerCall)
	}

	var from, to uint64
	err := p.backend.Atomic(ctx, func(ctx context.Context, tx storage.Tx) error {
		h, err := tx.Height(ctx)
		if err != nil {
			return err
		}
		from, to = h, h+n
		return tx.SetHeight(ctx, to)
	})
	if err != nil {
		return 0, fmt.Errorf("mine blocks: %w", err)
	}

	p.observer.SetHeight(to)
	for h := from + 1; h <= to; h++ {
		for _, hook := range p.hooks {
			hook(ctx, h)
		}
	}
	return to, nil
}

// Run produces one block per interval until ctx is done. A non-positive
// interval disables timed production.
func (p *BlockProducer) Run(ctx context.Context) error {
	if p.interval <= 0 {
		p.logger.Info(ctx, "timed block production disabled")
		return nil
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := p.MineBlocks(ctx, 1); err != nil {
				p.logger.Error(ctx, "block production failed", "error", err)
			}
		}
	}
}

// Genesis describes the initial state seeded into an empty backend.
type Genesis struct {
	Contract     string
	Members      []string
	Funded       []string
	InitialFunds uint64
}

// Bootstrap seeds the genesis state when the backend is still at height 0
// and moves it to height 1. It reports whether seeding took place.
func Bootstrap(ctx context.Context, backend storage.Backend, g Genesis) (bool, error) {
	seeded := false
	err := backend.Atomic(ctx, func(ctx context.Context, tx storage.Tx) error {
		h, err := tx.Height(ctx)
		if err != nil {
			return err
		}
		if h > 0 {
			return nil
		}

		store := tx.Wallet()
		for _, m := range wallet.Genesis(g.Members, g.Contract) {
			if err := store.SaveMember(ctx, &m); err != nil {
				return fmt.Errorf("seed member %s: %w", m.Account, err)
			}
		}
		if g.InitialFunds > 0 {
			for _, acct := range g.Funded {
				if acct == "" || acct == g.Contract {
					continue
				}
				if err := tx.Custody().Mint(ctx, acct, g.InitialFunds); err != nil {
					return fmt.Errorf("fund %s: %w", acct, err)
				}
			}
		}
		seeded = true
		return tx.SetHeight(ctx, 1)
	})
	if err != nil {
		return false, fmt.Errorf("bootstrap: %w", err)
	}
	return seeded, nil
}
