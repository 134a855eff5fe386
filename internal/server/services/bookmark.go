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
	"github.com/natekim416/tuckserver/internal/server/smartsort"
)

// Classifier is the outbound text-classification call smart save depends
// on. userExamples is free-form context handed to the provider, typically
// the caller's existing folder names.
type Classifier interface {
	Classify(ctx context.Context, text, userExamples string) (*smartsort.Result, error)
}

// SavedBookmark is the result of a smart save: the stored bookmark, the
// folder it was filed into and the raw classification it was filed by.
type SavedBookmark struct {
	Bookmark *models.Bookmark  `json:"bookmark"`
	Folder   *models.Folder    `json:"folder"`
	Analysis *smartsort.Result `json:"analysis"`
}

// BookmarkService handles bookmark listing, deletion and the smart-save
// flow that classifies a bookmark and files it into a resolved folder.
type BookmarkService struct {
	db          dbx.DBTX
	repomanager repomanager.RepositoryManager
	folders     *FolderService
	classifier  Classifier
}

// NewBookmarkService constructs a BookmarkService over the given
// repositories, folder resolver and classifier.
func NewBookmarkService(db dbx.DBTX, m repomanager.RepositoryManager, folders *FolderService, classifier Classifier) *BookmarkService {
	return &BookmarkService{
		db:          db,
		repomanager: m,
		folders:     folders,
		classifier:  classifier,
	}
}

// List returns the owner's bookmarks. The query is structurally scoped by
// the owner id; there is no unscoped fetch to filter afterwards.
func (s *BookmarkService) List(ctx context.Context, ownerID string) ([]*models.Bookmark, error) {
	items, err := s.repomanager.Bookmarks(s.db).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing bookmarks: %w", err)
	}
	return items, nil
}

// Delete removes the owner's bookmark. A missing bookmark reports
// common.ErrorNotFound, a foreign one common.ErrorForbidden; the HTTP
// boundary collapses both to not-found.
func (s *BookmarkService) Delete(ctx context.Context, ownerID, bookmarkID string) error {
	repo := s.repomanager.Bookmarks(s.db)

	bookmark, err := repo.GetByID(ctx, bookmarkID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error loading bookmark: %w", err)
	}
	if bookmark.UserID != ownerID {
		return common.ErrorForbidden
	}

	if err := repo.Delete(ctx, bookmarkID, ownerID); err != nil {
		return fmt.Errorf("error deleting bookmark: %w", err)
	}
	return nil
}

// SmartSave classifies the bookmark text, resolves the first returned
// category to one of the owner's folders (creating it when absent) and
// stores the bookmark there.
//
// The classification call runs before any write, so a failed call leaves
// nothing behind: no folder, no bookmark. A folder created by a resolved
// classification survives even if the bookmark insert afterwards fails or
// the caller disconnects; that side effect is accepted.
func (s *BookmarkService) SmartSave(ctx context.Context, ownerID, url string, title, notes *string) (*SavedBookmark, error) {
	examples, err := s.folders.NameExamples(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	analysis, err := s.classifier.Classify(ctx, smartSaveText(url, title, notes), examples)
	if err != nil {
		return nil, err
	}

	var category string
	if len(analysis.Folders) > 0 {
		category = analysis.Folders[0]
	}

	folder, err := s.folders.FindOrCreate(ctx, ownerID, category)
	if err != nil {
		return nil, err
	}

	bookmark := &models.Bookmark{
		ID:        uuid.New().String(),
		UserID:    ownerID,
		FolderID:  &folder.ID,
		URL:       url,
		Title:     title,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}

	bookmark, err = s.repomanager.Bookmarks(s.db).Create(ctx, bookmark)
	if err != nil {
		return nil, fmt.Errorf("error saving bookmark: %w", err)
	}

	return &SavedBookmark{Bookmark: bookmark, Folder: folder, Analysis: analysis}, nil
}

// smartSaveText joins the url with any title and notes into the text sent
// to the classifier.
func smartSaveText(url string, title, notes *string) string {
	parts := []string{url}
	if title != nil && *title != "" {
		parts = append(parts, *title)
	}
	if notes != nil && *notes != "" {
		parts = append(parts, *notes)
	}
	return strings.Join(parts, " ")
}
