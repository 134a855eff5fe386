package models

import "time"

// Bookmark is a saved URL. FolderID is nil for unfiled bookmarks. The owner
// is immutable after creation; every query touching bookmarks is scoped by
// UserID.
type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FolderID  *string   `json:"folderId"`
	URL       string    `json:"url"`
	Title     *string   `json:"title"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}
