// Package memory implements an in-memory RepositoryManager for development
// and tests. It upholds the same invariants as the PostgreSQL schema, most
// importantly the (owner, name) uniqueness of folders, so the find-or-create
// race behaves the same way it does against the real store.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/natekim416/tuckserver/internal/common"
	"github.com/natekim416/tuckserver/internal/dbx"
	"github.com/natekim416/tuckserver/internal/server/models"
	"github.com/natekim416/tuckserver/internal/server/repositories/bookmarks"
	"github.com/natekim416/tuckserver/internal/server/repositories/folders"
	"github.com/natekim416/tuckserver/internal/server/repositories/repomanager"
	"github.com/natekim416/tuckserver/internal/server/repositories/users"
)

// Manager keeps all three entity kinds behind one mutex. WithinTx serializes
// through the same mutex, which is a stronger guarantee than PostgreSQL
// gives, but the uniqueness checks below are what the race tests exercise.
type Manager struct {
	mu        sync.Mutex
	users     []*models.User
	folders   []*models.Folder
	bookmarks []*models.Bookmark
}

// Ensure interfaces are met.
var _ repomanager.RepositoryManager = (*Manager)(nil)
var _ users.Repository = (*userRepo)(nil)
var _ folders.Repository = (*folderRepo)(nil)
var _ bookmarks.Repository = (*bookmarkRepo)(nil)

// NewManager creates an empty in-memory manager.
func NewManager() *Manager {
	return &Manager{}
}

// Users returns the in-memory users.Repository. The DBTX is ignored.
func (m *Manager) Users(_ dbx.DBTX) users.Repository { return &userRepo{m: m} }

// Folders returns the in-memory folders.Repository. The DBTX is ignored.
func (m *Manager) Folders(_ dbx.DBTX) folders.Repository { return &folderRepo{m: m} }

// Bookmarks returns the in-memory bookmarks.Repository. The DBTX is ignored.
func (m *Manager) Bookmarks(_ dbx.DBTX) bookmarks.Repository { return &bookmarkRepo{m: m} }

// WithinTx runs fn. There is no rollback: in-memory state mutated before a
// returned error stays mutated, which tests must keep in mind when they
// assert all-or-nothing flows (the services order their side effects so that
// fallible steps come first).
func (m *Manager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return fn(ctx, nil)
}

// RunMigrations is a no-op for the in-memory manager.
func (m *Manager) RunMigrations(ctx context.Context) error { return nil }

// --- users.Repository ---

type userRepo struct{ m *Manager }

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, u := range r.m.users {
		if u.Email == user.Email {
			return nil, common.ErrorConflict
		}
	}
	cp := *user
	r.m.users = append(r.m.users, &cp)
	return user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, u := range r.m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, u := range r.m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

// --- folders.Repository ---

type folderRepo struct{ m *Manager }

func (r *folderRepo) Create(ctx context.Context, folder *models.Folder) (*models.Folder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	// Same invariant as the folders_user_id_name_idx unique index.
	for _, f := range r.m.folders {
		if f.UserID == folder.UserID && f.Name == folder.Name {
			return nil, common.ErrorConflict
		}
	}
	cp := *folder
	r.m.folders = append(r.m.folders, &cp)
	return folder, nil
}

func (r *folderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, f := range r.m.folders {
		if f.ID == id {
			cp := *f
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *folderRepo) FindByName(ctx context.Context, ownerID, name string) (*models.Folder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, f := range r.m.folders {
		if f.UserID == ownerID && f.Name == name {
			cp := *f
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *folderRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Folder, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	var result []*models.Folder
	for _, f := range r.m.folders {
		if f.UserID == ownerID {
			cp := *f
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *folderRepo) Update(ctx context.Context, folder *models.Folder) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, f := range r.m.folders {
		if f.UserID == folder.UserID && f.Name == folder.Name && f.ID != folder.ID {
			return common.ErrorConflict
		}
	}
	for _, f := range r.m.folders {
		if f.ID == folder.ID && f.UserID == folder.UserID {
			f.Name = folder.Name
			f.Color = folder.Color
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *folderRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for i, f := range r.m.folders {
		if f.ID == id && f.UserID == ownerID {
			r.m.folders = append(r.m.folders[:i], r.m.folders[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

// --- bookmarks.Repository ---

type bookmarkRepo struct{ m *Manager }

func (r *bookmarkRepo) Create(ctx context.Context, bookmark *models.Bookmark) (*models.Bookmark, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	cp := *bookmark
	r.m.bookmarks = append(r.m.bookmarks, &cp)
	return bookmark, nil
}

func (r *bookmarkRepo) GetByID(ctx context.Context, id string) (*models.Bookmark, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for _, b := range r.m.bookmarks {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *bookmarkRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Bookmark, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	var result []*models.Bookmark
	for _, b := range r.m.bookmarks {
		if b.UserID == ownerID {
			cp := *b
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *bookmarkRepo) ListByOwnerAndFolder(ctx context.Context, ownerID, folderID string) ([]*models.Bookmark, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	var result []*models.Bookmark
	for _, b := range r.m.bookmarks {
		if b.UserID == ownerID && b.FolderID != nil && *b.FolderID == folderID {
			cp := *b
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *bookmarkRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	for i, b := range r.m.bookmarks {
		if b.ID == id && b.UserID == ownerID {
			r.m.bookmarks = append(r.m.bookmarks[:i], r.m.bookmarks[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *bookmarkRepo) DeleteByFolder(ctx context.Context, folderID, ownerID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	kept := r.m.bookmarks[:0]
	for _, b := range r.m.bookmarks {
		if b.UserID == ownerID && b.FolderID != nil && *b.FolderID == folderID {
			continue
		}
		kept = append(kept, b)
	}
	r.m.bookmarks = kept
	return nil
}
