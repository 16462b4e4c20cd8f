package chain

import "context"

type Repository interface {
	Height(ctx context.Context) (uint64, error)
	SetHeight(ctx context.Context, height uint64) error
}
