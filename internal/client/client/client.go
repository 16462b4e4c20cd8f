package client

import (
	"context"
)

// Client is the transport the CLI services talk to.
//
// Call invokes a wallet method with plain JSON-like arguments and returns the
// decoded response. SetAccessToken changes the token attached to later calls;
// an empty token sends none.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	SetAccessToken(token string)
	Call(ctx context.Context, method string, args map[string]any) (map[string]any, error)
}
