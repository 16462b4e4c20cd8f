package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophwallet/internal/client/client"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "wallet.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeClient implements client.Client for unit tests.
type fakeClient struct {
	token string

	lastMethod string
	lastArgs   map[string]any

	reply   map[string]any
	callErr error
	pingErr error

	closed bool
}

func (f *fakeClient) Close() error                   { f.closed = true; return nil }
func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeClient) SetAccessToken(token string)    { f.token = token }

func (f *fakeClient) Call(ctx context.Context, method string, args map[string]any) (map[string]any, error) {
	f.lastMethod = method
	f.lastArgs = args
	return f.reply, f.callErr
}
