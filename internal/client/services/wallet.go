package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/gophwallet/internal/client/client"
	"github.com/dmitrijs2005/gophwallet/internal/client/models"
	"github.com/dmitrijs2005/gophwallet/internal/client/repositories/receipts"
)

// WalletService runs wallet calls and journals the receipts of mutating ones.
type WalletService interface {
	Execute(ctx context.Context, method string, args map[string]any) (*models.Receipt, error)
	CallEvents(ctx context.Context, callID string) ([]models.Event, error)
	MineBlocks(ctx context.Context, count uint64) (uint64, error)
	History(ctx context.Context, limit int) ([]models.Receipt, error)
	Receipt(ctx context.Context, callID string) (*models.Receipt, error)
}

type walletService struct {
	client  client.Client
	journal receipts.Repository
}

func NewWalletService(client client.Client, db *sql.DB) WalletService {
	return &walletService{client: client, journal: receipts.NewSQLiteRepository(db)}
}

// Execute returns the receipt of method. Receipts that carry a caller come
// from mutating calls and are written to the journal.
func (s *walletService) Execute(ctx context.Context, method string, args map[string]any) (*models.Receipt, error) {
	out, err := s.client.Call(ctx, method, args)
	if err != nil {
		return nil, err
	}

	r, err := models.ReceiptFromMap(out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	if r.Caller != "" {
		if err := s.journal.Save(ctx, r); err != nil {
			return r, fmt.Errorf("journal error: %w", err)
		}
	}
	return r, nil
}

func (s *walletService) CallEvents(ctx context.Context, callID string) ([]models.Event, error) {
	out, err := s.client.Call(ctx, "GetCallEvents", map[string]any{"call_id": callID})
	if err != nil {
		return nil, err
	}
	return models.EventsFromList(out["events"])
}

// MineBlocks returns the new height. The count travels as a decimal string.
func (s *walletService) MineBlocks(ctx context.Context, count uint64) (uint64, error) {
	out, err := s.client.Call(ctx, "MineBlocks", map[string]any{"count": strconv.FormatUint(count, 10)})
	if err != nil {
		return 0, err
	}
	h, ok := out["height"].(float64)
	if !ok {
		return 0, fmt.Errorf("MineBlocks: unexpected height %v", out["height"])
	}
	return uint64(h), nil
}

func (s *walletService) History(ctx context.Context, limit int) ([]models.Receipt, error) {
	return s.journal.List(ctx, limit)
}

func (s *walletService) Receipt(ctx context.Context, callID string) (*models.Receipt, error) {
	return s.journal.Get(ctx, callID)
}
