package folders

import (
	"context"

	"github.com/natekim416/tuckserver/internal/server/models"
)

type Repository interface {
	// Create inserts a folder. A (owner, name) collision with an existing
	// row reports common.ErrorConflict so the resolver can re-read.
	Create(ctx context.Context, folder *models.Folder) (*models.Folder, error)
	GetByID(ctx context.Context, id string) (*models.Folder, error)
	FindByName(ctx context.Context, ownerID, name string) (*models.Folder, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Folder, error)
	Update(ctx context.Context, folder *models.Folder) error
	Delete(ctx context.Context, id, ownerID string) error
}
