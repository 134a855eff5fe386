// Package repomanager defines the seam through which services obtain
// repositories, so the same service code runs against PostgreSQL in
// production and the in-memory manager in tests.
package repomanager

import (
	"context"

	"github.com/natekim416/tuckserver/internal/dbx"
	"github.com/natekim416/tuckserver/internal/server/repositories/bookmarks"
	"github.com/natekim416/tuckserver/internal/server/repositories/folders"
	"github.com/natekim416/tuckserver/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX and runs multi-step
// writes atomically. Passing the transactional handle back through the
// vending methods lets one repository set participate in one transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Folders(db dbx.DBTX) folders.Repository
	Bookmarks(db dbx.DBTX) bookmarks.Repository

	// WithinTx runs fn atomically. The DBTX handed to fn must be used for
	// every repository access inside fn.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error

	// RunMigrations brings the schema up to date.
	RunMigrations(ctx context.Context) error
}
