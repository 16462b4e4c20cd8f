package events

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, e *models.Event) error
	ListByCall(ctx context.Context, callID string) ([]models.Event, error)
}
