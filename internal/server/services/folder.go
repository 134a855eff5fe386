package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/natekim416/tuckserver/internal/common"
	"github.com/natekim416/tuckserver/internal/dbx"
	"github.com/natekim416/tuckserver/internal/server/models"
	"github.com/natekim416/tuckserver/internal/server/repositories/repomanager"
)

// DefaultFolderName is where bookmarks land when classification yields no
// category.
const DefaultFolderName = "Uncategorized"

// FolderService handles folder CRUD and the find-or-create resolution used
// by smart save. It holds no in-process lock: the (owner, name) uniqueness
// constraint in the store is what keeps concurrent resolvers from creating
// duplicates, and it keeps working with several server instances running.
type FolderService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
}

// NewFolderService constructs a FolderService over the given repositories.
func NewFolderService(db dbx.DBTX, m repomanager.RepositoryManager) *FolderService {
	return &FolderService{db: db, repomanager: m}
}

// List returns the owner's folders, newest first.
func (s *FolderService) List(ctx context.Context, ownerID string) ([]*models.Folder, error) {
	folders, err := s.repomanager.Folders(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing folders: %w", err)
	}
	return folders, nil
}

// NameExamples renders the owner's folder names as a single line of
// classifier context, or "" when the owner has no folders yet.
func (s *FolderService) NameExamples(ctx context.Context, ownerID string) (string, error) {
	folders, err := s.List(ctx, ownerID)
	if err != nil {
		return "", err
	}
	if len(folders) == 0 {
		return "", nil
	}
	names := make([]string, 0, len(folders))
	for _, f := range folders {
		names = append(names, f.Name)
	}
	return "Existing folders: " + strings.Join(names, ", "), nil
}

// Create makes a new folder for the owner. A name the owner already uses
// reports common.ErrorConflict.
func (s *FolderService) Create(ctx context.Context, ownerID, name string, color *string) (*models.Folder, error) {
	folder := &models.Folder{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}

	folder, err := s.repomanager.Folders(s.db).Create(ctx, folder)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error creating folder: %w", err)
	}
	return folder, nil
}

// FindOrCreate resolves candidateName to the owner's folder with exactly
// that name, creating it (with no color) when absent. The name is matched
// case-sensitively, as supplied; an empty name falls back to
// DefaultFolderName. Repeated resolution returns the existing folder
// unchanged.
//
// Lookup-then-create is not atomic, so two concurrent resolvers can both
// miss. The store's uniqueness constraint then rejects the second insert
// with common.ErrorConflict and the loser re-reads the winner's row, which
// is why exactly one folder per (owner, name) survives.
func (s *FolderService) FindOrCreate(ctx context.Context, ownerID, candidateName string) (*models.Folder, error) {
	if candidateName == "" {
		candidateName = DefaultFolderName
	}

	repo := s.repomanager.Folders(s.db)

	folder, err := repo.FindByName(ctx, ownerID, candidateName)
	if err == nil {
		return folder, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error resolving folder: %w", err)
	}

	folder, err = repo.Create(ctx, &models.Folder{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		Name:      candidateName,
		CreatedAt: time.Now().UTC(),
	})
	if err == nil {
		return folder, nil
	}
	if !errors.Is(err, common.ErrorConflict) {
		return nil, fmt.Errorf("error creating folder: %w", err)
	}

	// Lost the race: a concurrent resolver created the row between our
	// lookup and insert. Read theirs.
	folder, err = repo.FindByName(ctx, ownerID, candidateName)
	if err != nil {
		return nil, fmt.Errorf("error re-reading folder after conflict: %w", err)
	}
	return folder, nil
}

// Update patches the owner's folder name and/or color. A missing folder
// reports common.ErrorNotFound, a foreign one common.ErrorForbidden.
func (s *FolderService) Update(ctx context.Context, ownerID, folderID string, name, color *string) (*models.Folder, error) {
	repo := s.repomanager.Folders(s.db)

	folder, err := repo.GetByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading folder: %w", err)
	}
	if folder.UserID != ownerID {
		return nil, common.ErrorForbidden
	}

	if name != nil {
		folder.Name = *name
	}
	if color != nil {
		folder.Color = color
	}

	if err := repo.Update(ctx, folder); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("error updating folder: %w", err)
	}
	return folder, nil
}

// Delete removes the owner's folder together with the bookmarks filed in
// it. The bookmark sweep runs first and both statements are scoped by the
// owner id, inside one transaction: a crafted folder id must never reach
// another owner's bookmarks, and a half-deleted folder must not survive a
// crash.
func (s *FolderService) Delete(ctx context.Context, ownerID, folderID string) error {
	folder, err := s.repomanager.Folders(s.db).GetByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error loading folder: %w", err)
	}
	if folder.UserID != ownerID {
		return common.ErrorForbidden
	}

	return s.repomanager.WithinTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Bookmarks(tx).DeleteByFolder(ctx, folderID, ownerID); err != nil {
			return fmt.Errorf("error deleting folder bookmarks: %w", err)
		}
		if err := s.repomanager.Folders(tx).Delete(ctx, folderID, ownerID); err != nil {
			return fmt.Errorf("error deleting folder: %w", err)
		}
		return nil
	})
}

// ListBookmarks returns the owner's bookmarks filed in the given folder.
// The query is scoped by both owner and folder, so a foreign folder id
// simply yields nothing.
func (s *FolderService) ListBookmarks(ctx context.Context, ownerID, folderID string) ([]*models.Bookmark, error) {
	items, err := s.repomanager.Bookmarks(s.db).ListByOwnerAndFolder(ctx, ownerID, folderID)
	if err != nil {
		return nil, fmt.Errorf("error listing folder bookmarks: %w", err)
	}
	return items, nil
}
