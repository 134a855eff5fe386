package bookmarks

import (
	"context"

	"github.com/natekim416/tuckserver/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error)
	GetByID(ctx context.Context, id string) (*models.Bookmark, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Bookmark, error)
	ListByOwnerAndFolder(ctx context.Context, ownerID, folderID string) ([]*models.Bookmark, error)
	Delete(ctx context.Context, id, ownerID string) error
	// DeleteByFolder removes the owner's bookmarks in a folder. The owner
	// scope matters: the folder id alone must not be able to reach another
	// owner's rows.
	DeleteByFolder(ctx context.Context, folderID, ownerID string) error
}
