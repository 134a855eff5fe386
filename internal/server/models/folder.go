package models

import "time"

// Folder groups bookmarks for one owner. For a given owner a name resolves
// to at most one live row; the folders table enforces this with a unique
// index on (user_id, name).
type Folder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
}
