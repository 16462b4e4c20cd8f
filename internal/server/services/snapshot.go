package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/dmitrijs2005/gophwallet/internal/server/storage"
	"github.com/dmitrijs2005/gophwallet/internal/server/wallet"
)

// Exporter ships a snapshot somewhere durable and returns where it went.
type Exporter interface {
	Export(ctx context.Context, snap *models.Snapshot) (string, error)
}

// SnapshotService audits the wallet state and exports it every `every` blocks.
type SnapshotService struct {
	backend  storage.Backend
	contract string
	every    uint64
	exporter Exporter
	logger   logging.Logger
}

func NewSnapshotService(backend storage.Backend, contract string, every uint64, exporter Exporter, logger logging.Logger) *SnapshotService {
	return &SnapshotService{
		backend:  backend,
		contract: contract,
		every:    every,
		exporter: exporter,
		logger:   logger.With("module", "snapshot"),
	}
}

// Take copies the current state and verifies that member balances are
// backed by the contract's custody.
func (s *SnapshotService) Take(ctx context.Context) (*models.Snapshot, error) {
	var snap *models.Snapshot
	err := s.backend.Atomic(ctx, func(ctx context.Context, tx storage.Tx) error {
		var err error
		snap, err = tx.Snapshot(ctx, s.contract)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("take snapshot: %w", err)
	}
	if err := wallet.CheckConservation(snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// Export takes a snapshot and hands it to the exporter.
func (s *SnapshotService) Export(ctx context.Context) (string, error) {
	snap, err := s.Take(ctx)
	if err != nil {
		return "", err
	}
	location, err := s.exporter.Export(ctx, snap)
	if err != nil {
		return "", fmt.Errorf("export snapshot at %d: %w", snap.Height, err)
	}
	s.logger.Info(ctx, "snapshot exported", "height", snap.Height, "location", location)
	return location, nil
}

// OnBlock is a BlockHook exporting a snapshot on every multiple of `every`.
func (s *SnapshotService) OnBlock(ctx context.Context, height uint64) {
	if s.every == 0 || s.exporter == nil || height%s.every != 0 {
		return
	}
	if _, err := s.Export(ctx); err != nil {
		s.logger.Error(ctx, "snapshot failed", "height", height, "error", err)
	}
}
