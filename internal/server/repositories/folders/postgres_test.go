package folders

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/natekim416/tuckserver/internal/common"
	"github.com/natekim416/tuckserver/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func testFolder() *models.Folder {
	color := "#00ff00"
	return &models.Folder{
		ID:        "f-1",
		UserID:    "u-1",
		Name:      "Travel",
		Color:     &color,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

const insertQ = `(?s)^\s*INSERT\s+INTO\s+folders\s*\(id,\s*user_id,\s*name,\s*color,\s*created_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*$`

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	f := testFolder()
	mock.ExpectExec(insertQ).
		WithArgs(f.ID, f.UserID, f.Name, f.Color, f.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := repo.Create(context.Background(), f)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.Name != "Travel" {
		t.Fatalf("unexpected folder: %+v", got)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	f := testFolder()
	mock.ExpectExec(insertQ).
		WithArgs(f.ID, f.UserID, f.Name, f.Color, f.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "folders_user_id_name_idx"})

	_, err := repo.Create(context.Background(), f)
	if !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("want common.ErrorConflict, got %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	f := testFolder()
	mock.ExpectExec(insertQ).
		WithArgs(f.ID, f.UserID, f.Name, f.Color, f.CreatedAt).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), f)
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

const findByNameQ = `(?s)^\s*SELECT\s+id,\s*user_id,\s*name,\s*color,\s*created_at\s+FROM\s+folders\s+WHERE\s+user_id\s*=\s*\$1\s+AND\s+name\s*=\s*\$2\s*$`

func TestFindByName_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	f := testFolder()
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "color", "created_at"}).
		AddRow(f.ID, f.UserID, f.Name, f.Color, f.CreatedAt)
	mock.ExpectQuery(findByNameQ).
		WithArgs(f.UserID, f.Name).
		WillReturnRows(rows)

	got, err := repo.FindByName(context.Background(), f.UserID, f.Name)
	if err != nil {
		t.Fatalf("FindByName error: %v", err)
	}
	if got.ID != f.ID {
		t.Fatalf("unexpected folder: %+v", got)
	}
}

func TestFindByName_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(findByNameQ).
		WithArgs("u-1", "Missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByName(context.Background(), "u-1", "Missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestListByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+id,\s*user_id,\s*name,\s*color,\s*created_at\s+FROM\s+folders\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC\s*$`

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "color", "created_at"}).
		AddRow("f-2", "u-1", "Recipes", nil, now).
		AddRow("f-1", "u-1", "Travel", nil, now.Add(-time.Hour))
	mock.ExpectQuery(q).
		WithArgs("u-1").
		WillReturnRows(rows)

	got, err := repo.ListByOwner(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("ListByOwner error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Recipes" || got[1].Name != "Travel" {
		t.Fatalf("unexpected folders: %+v", got)
	}
}

const updateQ = `(?s)^\s*UPDATE\s+folders\s+SET\s+name\s*=\s*\$1,\s*color\s*=\s*\$2\s+WHERE\s+id\s*=\s*\$3\s+AND\s+user_id\s*=\s*\$4\s*$`

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	f := testFolder()
	mock.ExpectExec(updateQ).
		WithArgs(f.Name, f.Color, f.ID, f.UserID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), f); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestUpdate_NoRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	f := testFolder()
	mock.ExpectExec(updateQ).
		WithArgs(f.Name, f.Color, f.ID, f.UserID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), f); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdate_DuplicateName(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	f := testFolder()
	mock.ExpectExec(updateQ).
		WithArgs(f.Name, f.Color, f.ID, f.UserID).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	if err := repo.Update(context.Background(), f); !errors.Is(err, common.ErrorConflict) {
		t.Fatalf("want common.ErrorConflict, got %v", err)
	}
}

const deleteQ = `(?s)^\s*DELETE\s+FROM\s+folders\s+WHERE\s+id\s*=\s*\$1\s+AND\s+user_id\s*=\s*\$2\s*$`

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).
		WithArgs("f-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "f-1", "u-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_WrongOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(deleteQ).
		WithArgs("f-1", "u-2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "f-1", "u-2"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
