package repository

import (
	"context"

	"fms/internal/model"
)

// DocumentRepository defines data access for documents and their versions
// using SQL queries only. No business logic here, strictly persistence
// operations.
//
// A document's versions are ordered by insertion; implementations must
// preserve that ordering when loading them.
type DocumentRepository interface {
	// Create inserts a new document record together with any initial
	// versions, and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document with its versions.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindByIDAndOwner returns a document with its versions only if it
	// belongs to the owner.
	FindByIDAndOwner(ctx context.Context, id, owner string) (*model.Document, error)

	// FindByFolderAndTitle returns a document with the given title in the
	// folder, excluding excludeID when set. Versions are not loaded.
	FindByFolderAndTitle(ctx context.Context, folderID, title, excludeID string) (*model.Document, error)

	// FindByFolder returns the owner's documents in the folder, with
	// versions (the cascade path needs every blob reference).
	FindByFolder(ctx context.Context, folderID, owner string) ([]model.Document, error)

	// Search returns the owner's documents whose title or content contains
	// term case-insensitively; an empty term matches everything. Versions
	// are not loaded.
	Search(ctx context.Context, owner, term string) ([]model.Document, error)

	// CountByOwner returns the number of documents owned by the user.
	CountByOwner(ctx context.Context, owner string) (int, error)

	// Update persists title/content changes and returns the updated row
	// without versions, or sql.ErrNoRows if no row matched.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	// AddVersion appends a version entry to the document's history.
	AddVersion(ctx context.Context, documentID string, v *model.Version) (*model.Version, error)

	// Delete removes a document row; its versions go with it. Returns nil if
	// the row did not exist.
	Delete(ctx context.Context, id string) error

	// DeleteByFolder bulk-removes the owner's documents in the folder and
	// returns the number of documents deleted.
	DeleteByFolder(ctx context.Context, folderID, owner string) (int64, error)
}
