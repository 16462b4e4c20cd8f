package custody

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/server/models"
)

type Repository interface {
	Balance(ctx context.Context, account string) (uint64, error)
	Debit(ctx context.Context, account string, amount uint64) error
	Credit(ctx context.Context, account string, amount uint64) error
	List(ctx context.Context) ([]models.CustodyBalance, error)
}
