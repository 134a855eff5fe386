// PostgreSQL RepositoryManager: wires repository constructors together and
// runs database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/natekim416/tuckserver/internal/dbx"
	"github.com/natekim416/tuckserver/internal/server/migrations"
	"github.com/natekim416/tuckserver/internal/server/repositories/bookmarks"
	"github.com/natekim416/tuckserver/internal/server/repositories/folders"
	"github.com/natekim416/tuckserver/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations over one connection pool.
type PostgresRepositoryManager struct {
	db *sql.DB
}

// NewPostgresRepositoryManager opens the pgx connection pool for dsn.
func NewPostgresRepositoryManager(dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return &PostgresRepositoryManager{db: db}, nil
}

// Conn exposes the underlying pool (used for shutdown).
func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Folders returns a folders.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Folders(db dbx.DBTX) folders.Repository {
	return folders.NewPostgresRepository(db)
}

// Bookmarks returns a bookmarks.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Bookmarks(db dbx.DBTX) bookmarks.Repository {
	return bookmarks.NewPostgresRepository(db)
}

// WithinTx runs fn inside a database transaction.
func (m *PostgresRepositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return dbx.WithTx(ctx, m.db, nil, fn)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the pool.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}
