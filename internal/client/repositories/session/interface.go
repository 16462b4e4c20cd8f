// Package session persists the CLI login between runs in the metadata table.
package session

import (
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/client/models"
)

// Repository stores at most one session. Load returns (nil, nil) when no
// session was saved.
type Repository interface {
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}
