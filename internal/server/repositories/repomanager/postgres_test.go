package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"

	"github.com/natekim416/tuckserver/internal/dbx"
	"github.com/natekim416/tuckserver/internal/server/repositories/bookmarks"
	"github.com/natekim416/tuckserver/internal/server/repositories/folders"
	"github.com/natekim416/tuckserver/internal/server/repositories/users"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	m, err := NewPostgresRepositoryManager("postgres://localhost/test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.Conn().Close()
	var _ RepositoryManager = m
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := &PostgresRepositoryManager{}

	if u := m.Users(db); u == nil {
		t.Fatal("Users() nil")
	}
	if f := m.Folders(db); f == nil {
		t.Fatal("Folders() nil")
	}
	if b := m.Bookmarks(db); b == nil {
		t.Fatal("Bookmarks() nil")
	}

	var _ users.Repository = m.Users(db)
	var _ folders.Repository = m.Folders(db)
	var _ bookmarks.Repository = m.Bookmarks(db)
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{db: db}
	if err := m.RunMigrations(context.Background()); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{db: db}
	if err := m.RunMigrations(context.Background()); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestWithinTx_Commit(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM bookmarks").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	m := &PostgresRepositoryManager{db: db}
	err := m.WithinTx(context.Background(), func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM bookmarks WHERE folder_id = $1 AND user_id = $2", "f-1", "u-1")
		return err
	})
	if err != nil {
		t.Fatalf("WithinTx error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	m := &PostgresRepositoryManager{db: db}
	err := m.WithinTx(context.Background(), func(ctx context.Context, tx dbx.DBTX) error {
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
