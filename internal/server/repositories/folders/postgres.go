// Package folders provides the PostgreSQL-backed repository for folder
// persistence. Every owner-facing query is scoped by user_id.
package folders

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/natekim416/tuckserver/internal/common"
	"github.com/natekim416/tuckserver/internal/dbx"
	"github.com/natekim416/tuckserver/internal/server/models"
)

// PostgresRepository implements folder storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a folder. The unique index on (user_id, name) turns a
// concurrent duplicate into common.ErrorConflict instead of a second row.
func (r *PostgresRepository) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	query := `
		INSERT INTO folders (id, user_id, name, color, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		folder.ID, folder.UserID, folder.Name, folder.Color, folder.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return folder, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := `
		SELECT id, user_id, name, color, created_at FROM folders
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// FindByName looks up the owner's folder with exactly the supplied name
// (case-sensitive).
func (r *PostgresRepository) FindByName(ctx context.Context, ownerID, name string) (*models.Folder, error) {
	query := `
		SELECT id, user_id, name, color, created_at FROM folders
		WHERE user_id = $1 AND name = $2
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, ownerID, name))
}

// ListByOwner returns the owner's folders, newest first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Folder, error) {
	query := `
		SELECT id, user_id, name, color, created_at FROM folders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Folder
	for rows.Next() {
		var item models.Folder
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Color, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Update rewrites name and color, scoped by the folder's owner.
func (r *PostgresRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := `
		UPDATE folders SET name = $1, color = $2
		WHERE id = $3 AND user_id = $4
	`
	res, err := r.db.ExecContext(ctx, query, folder.Name, folder.Color, folder.ID, folder.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrorConflict
		}
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

// Delete removes the owner's folder. Missing or foreign rows report
// common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `
		DELETE FROM folders
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return requireOneRow(res)
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Folder, error) {
	folder := &models.Folder{}
	err := row.Scan(&folder.ID, &folder.UserID, &folder.Name, &folder.Color, &folder.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return folder, nil
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
