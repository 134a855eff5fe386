// Package bookmarks provides the PostgreSQL-backed repository for bookmark
// persistence. Every owner-facing query is scoped by user_id.
package bookmarks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/natekim416/tuckserver/internal/common"
	"github.com/natekim416/tuckserver/internal/dbx"
	"github.com/natekim416/tuckserver/internal/server/models"
)

// PostgresRepository implements bookmark storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	query := `
		INSERT INTO bookmarks (id, user_id, folder_id, url, title, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		bookmark.ID, bookmark.UserID, bookmark.FolderID,
		bookmark.URL, bookmark.Title, bookmark.Notes, bookmark.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return bookmark, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Bookmark, error) {
	query := `
		SELECT id, user_id, folder_id, url, title, notes, created_at FROM bookmarks
		WHERE id = $1
	`
	bookmark := &models.Bookmark{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&bookmark.ID, &bookmark.UserID, &bookmark.FolderID,
		&bookmark.URL, &bookmark.Title, &bookmark.Notes, &bookmark.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return bookmark, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Bookmark, error) {
	query := `
		SELECT id, user_id, folder_id, url, title, notes, created_at FROM bookmarks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, ownerID)
}

func (r *PostgresRepository) ListByOwnerAndFolder(ctx context.Context, ownerID, folderID string) ([]*models.Bookmark, error) {
	query := `
		SELECT id, user_id, folder_id, url, title, notes, created_at FROM bookmarks
		WHERE user_id = $1 AND folder_id = $2
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, ownerID, folderID)
}

// Delete removes the owner's bookmark. Missing or foreign rows report
// common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id, ownerID string) error {
	query := `
		DELETE FROM bookmarks
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// DeleteByFolder removes the owner's bookmarks in a folder. Zero rows is
// fine here: an empty folder deletes nothing.
func (r *PostgresRepository) DeleteByFolder(ctx context.Context, folderID, ownerID string) error {
	query := `
		DELETE FROM bookmarks
		WHERE folder_id = $1 AND user_id = $2
	`
	if _, err := r.db.ExecContext(ctx, query, folderID, ownerID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Bookmark
	for rows.Next() {
		var item models.Bookmark
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.FolderID,
			&item.URL, &item.Title, &item.Notes, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
