// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/server/migrations"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/chain"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/cooldowns"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/custody"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/events"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/locks"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/members"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Members(db dbx.DBTX) members.Repository {
	return members.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Locks(db dbx.DBTX) locks.Repository {
	return locks.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Cooldowns(db dbx.DBTX) cooldowns.Repository {
	return cooldowns.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Custody(db dbx.DBTX) custody.Repository {
	return custody.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Events(db dbx.DBTX) events.Repository {
	return events.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Chain(db dbx.DBTX) chain.Repository {
	return chain.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
