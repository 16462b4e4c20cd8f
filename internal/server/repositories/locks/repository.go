package locks

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, account string) (*models.LockRecord, error)
	Upsert(ctx context.Context, l *models.LockRecord) error
	Delete(ctx context.Context, account string) error
	NomineeExists(ctx context.Context, newOwner string) (bool, error)
	List(ctx context.Context) ([]models.LockRecord, error)
}
