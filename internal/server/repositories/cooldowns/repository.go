package cooldowns

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, member string) (*models.CooldownRecord, error)
	Upsert(ctx context.Context, c *models.CooldownRecord) error
	List(ctx context.Context) ([]models.CooldownRecord, error)
}
