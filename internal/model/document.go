package model

import "time"

// Document is a titled record owned by a user, associated with exactly one
// folder and an ordered, append-only list of versions.
// Pure domain model; no database-specific dependencies or tags.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	FolderID  string    `json:"folder"`
	CreatedBy string    `json:"createdBy"`
	Versions  []Version `json:"versions"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Version is an immutable snapshot of a document blob. Ordering among a
// document's versions is insertion order, not anything derived from the label.
type Version struct {
	Version    string    `json:"version"`
	FileURL    string    `json:"fileUrl"`
	UploadedAt time.Time `json:"uploadedAt"`
}
