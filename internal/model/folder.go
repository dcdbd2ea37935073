package model

import "time"

// Folder is a named tree node owned by a single user. ParentFolder is nil for
// root folders; when set it references another folder of the same owner.
// This is a pure domain model with no database-specific dependencies or tags.
type Folder struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ParentFolder *string   `json:"parentFolder"`
	CreatedBy    string    `json:"createdBy"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FolderRef is the {id, name} pair used in ancestor-path responses.
type FolderRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
