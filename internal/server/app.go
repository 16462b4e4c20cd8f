// Package server wires the wallet together: storage backend, genesis,
// block production, snapshot exports, metrics and the gRPC endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophwallet/internal/cryptox"
	"github.com/dmitrijs2005/gophwallet/internal/logging"
	"github.com/dmitrijs2005/gophwallet/internal/server/config"
	"github.com/dmitrijs2005/gophwallet/internal/server/metrics"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophwallet/internal/server/services"
	"github.com/dmitrijs2005/gophwallet/internal/server/snapshot"
	"github.com/dmitrijs2005/gophwallet/internal/server/storage"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/gophwallet/internal/server/grpc"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	sqlOpen = sql.Open

	newRepositoryManager = repomanager.NewPostgresRepositoryManager

	newExporter = func(ctx context.Context, st snapshot.Settings) (services.Exporter, error) {
		return snapshot.NewS3Exporter(ctx, st)
	}
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	backend   storage.Backend
	metrics   *metrics.Metrics
	wallet    *services.WalletService
	producer  *services.BlockProducer
	snapshots *services.SnapshotService
}

// NewApp opens the storage backend, seeds genesis state into an empty store
// and builds the services on top of it.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	backend, err := openBackend(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	seeded, err := services.Bootstrap(ctx, backend, services.Genesis{
		Contract:     c.ContractAccount,
		Members:      c.GenesisMembers,
		Funded:       c.FundedAccounts,
		InitialFunds: c.InitialFunds,
	})
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	if seeded {
		logger.Info(ctx, "Genesis state seeded", "members", len(c.GenesisMembers), "funded", len(c.FundedAccounts))
	}

	m := metrics.New()
	app := &App{
		config:   c,
		logger:   logger,
		backend:  backend,
		metrics:  m,
		wallet:   services.NewWalletService(backend, c.ContractAccount, logger, m),
		producer: services.NewBlockProducer(backend, c.BlockInterval, logger, m),
	}

	if c.SnapshotEvery > 0 && c.S3Bucket != "" {
		exp, err := newExporter(ctx, snapshot.Settings{
			User:         c.S3RootUser,
			Password:     c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
			SealKey:      snapshotKey(c),
		})
		if err != nil {
			_ = backend.Close()
			return nil, fmt.Errorf("snapshot exporter init error: %w", err)
		}
		app.snapshots = services.NewSnapshotService(backend, c.ContractAccount, c.SnapshotEvery, exp, logger)
		app.producer.OnBlock(app.snapshots.OnBlock)
	}

	return app, nil
}

// snapshotKey is nil when no passphrase is configured, leaving objects in plain JSON.
func snapshotKey(c *config.Config) []byte {
	if c.SnapshotPassphrase == "" {
		return nil
	}
	return cryptox.DeriveKey([]byte(c.SnapshotPassphrase), "gophwallet-snapshot:"+c.ContractAccount)
}

func openBackend(ctx context.Context, c *config.Config, logger logging.Logger) (storage.Backend, error) {
	if c.DatabaseDSN == "" {
		logger.Info(ctx, "Using in-memory storage")
		return storage.NewMemoryBackend(), nil
	}

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm := newRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migrations error: %w", err)
	}
	logger.Info(ctx, "Using PostgreSQL storage")
	return storage.NewPostgresBackend(db, rm), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a signal arrives or one of the components fails.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.wallet, app.producer, app.config.SecretKey, app.config.TokenCacheSize)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.Run(ctx) })
	g.Go(func() error { return app.producer.Run(ctx) })
	if app.config.MetricsAddr != "" {
		g.Go(func() error { return app.metrics.Serve(ctx, app.config.MetricsAddr, app.logger) })
	}

	err = g.Wait()
	if cerr := app.backend.Close(); cerr != nil {
		app.logger.Error(ctx, "closing storage", "error", cerr)
	}
	app.logger.Info(context.Background(), "App stopped")
	return err
}
