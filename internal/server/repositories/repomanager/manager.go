package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/gophwallet/internal/dbx"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/chain"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/cooldowns"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/custody"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/events"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/locks"
	"github.com/dmitrijs2005/gophwallet/internal/server/repositories/members"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Members(db dbx.DBTX) members.Repository
	Locks(db dbx.DBTX) locks.Repository
	Cooldowns(db dbx.DBTX) cooldowns.Repository
	Custody(db dbx.DBTX) custody.Repository
	Events(db dbx.DBTX) events.Repository
	Chain(db dbx.DBTX) chain.Repository
}
