package receipts

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/client/models"
)

type Repository interface {
	Save(ctx context.Context, r *models.Receipt) error
	Get(ctx context.Context, callID string) (*models.Receipt, error)
	List(ctx context.Context, limit int) ([]models.Receipt, error)
}
