package members

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, account string) (*models.Member, error)
	Upsert(ctx context.Context, m *models.Member) error
	Delete(ctx context.Context, account string) error
	List(ctx context.Context) ([]models.Member, error)
}
