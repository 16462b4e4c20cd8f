package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/server/config"
	"github.com/dmitrijs2005/gophwallet/internal/server/models"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophwallet/internal/server/services"
	"github.com/dmitrijs2005/gophwallet/internal/server/snapshot"
	"github.com/dmitrijs2005/gophwallet/internal/server/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExporter struct{}

func (fakeExporter) Export(context.Context, *models.Snapshot) (string, error) {
	return "mem://snapshot", nil
}

type fakeManager struct {
	repomanager.RepositoryManager
	err error
}

func (m fakeManager) RunMigrations(context.Context, *sql.DB) error { return m.err }

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.MetricsAddr = "127.0.0.1:0"
	c.BlockInterval = 0
	c.LogLevel = "error"
	c.GenesisMembers = []string{"alice", "bob"}
	c.FundedAccounts = []string{"dave"}
	c.InitialFunds = 100
	return c
}

func TestNewApp_MemoryBackendSeedsGenesis(t *testing.T) {
	ctx := context.Background()
	app, err := NewApp(ctx, testConfig())
	require.NoError(t, err)
	defer app.backend.Close()

	assert.IsType(t, &storage.MemoryBackend{}, app.backend)
	assert.Nil(t, app.snapshots)

	r, err := app.wallet.GetMember(ctx, "alice")
	require.NoError(t, err)
	require.True(t, r.OK())
	assert.Equal(t, services.MemberView{Account: "alice"}, r.Value)

	r, err = app.wallet.GetCustodyBalance(ctx, "dave")
	require.NoError(t, err)
	assert.Equal(t, uint64(100), r.Value)

	r, err = app.wallet.GetHeight(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), r.Value)
}

func TestNewApp_Snapshots(t *testing.T) {
	orig := newExporter
	t.Cleanup(func() { newExporter = orig })

	c := testConfig()
	c.SnapshotEvery = 10

	t.Run("exporter wired", func(t *testing.T) {
		var got snapshot.Settings
		newExporter = func(_ context.Context, st snapshot.Settings) (services.Exporter, error) {
			got = st
			return fakeExporter{}, nil
		}
		app, err := NewApp(context.Background(), c)
		require.NoError(t, err)
		assert.NotNil(t, app.snapshots)
		assert.Equal(t, c.S3Bucket, got.Bucket)
		assert.Equal(t, c.S3BaseEndpoint, got.BaseEndpoint)
		assert.Nil(t, got.SealKey)
	})

	t.Run("passphrase derives seal key", func(t *testing.T) {
		var got snapshot.Settings
		newExporter = func(_ context.Context, st snapshot.Settings) (services.Exporter, error) {
			got = st
			return fakeExporter{}, nil
		}
		pc := *c
		pc.SnapshotPassphrase = "phrase"
		_, err := NewApp(context.Background(), &pc)
		require.NoError(t, err)
		assert.Len(t, got.SealKey, 32)
		assert.Equal(t, snapshotKey(&pc), got.SealKey)
	})

	t.Run("exporter error", func(t *testing.T) {
		newExporter = func(context.Context, snapshot.Settings) (services.Exporter, error) {
			return nil, errors.New("no bucket")
		}
		_, err := NewApp(context.Background(), c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "snapshot exporter init error")
	})
}

func TestOpenBackend_Postgres(t *testing.T) {
	origOpen, origManager := sqlOpen, newRepositoryManager
	t.Cleanup(func() { sqlOpen, newRepositoryManager = origOpen, origManager })

	logger := logging.NewJSONLogger(nopWriter{}, "error")
	c := testConfig()
	c.DatabaseDSN = "postgres://wallet"

	t.Run("ok", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		sqlOpen = func(driver, dsn string) (*sql.DB, error) {
			assert.Equal(t, "pgx", driver)
			assert.Equal(t, "postgres://wallet", dsn)
			return db, nil
		}
		newRepositoryManager = func() repomanager.RepositoryManager { return fakeManager{} }

		b, err := openBackend(context.Background(), c, logger)
		require.NoError(t, err)
		assert.IsType(t, &storage.PostgresBackend{}, b)
		require.NoError(t, b.Close())
	})

	t.Run("migrations fail", func(t *testing.T) {
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		sqlOpen = func(string, string) (*sql.DB, error) { return db, nil }
		newRepositoryManager = func() repomanager.RepositoryManager {
			return fakeManager{err: errors.New("boom")}
		}

		_, err = openBackend(context.Background(), c, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db migrations error")
	})

	t.Run("open fails", func(t *testing.T) {
		sqlOpen = func(string, string) (*sql.DB, error) { return nil, errors.New("bad dsn") }

		_, err := openBackend(context.Background(), c, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db init error")
	})
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
