package repository

import (
	"context"

	"fms/internal/model"
)

// FolderRepository defines data access for the folder tree using SQL queries
// only. No business logic here, strictly persistence operations.
//
// Lookups that match nothing return sql.ErrNoRows; the service layer decides
// whether that means NotFound or simply "no conflicting sibling".
type FolderRepository interface {
	// Create inserts a new folder record and returns the stored row.
	Create(ctx context.Context, f *model.Folder) (*model.Folder, error)

	// FindByID returns a folder by id regardless of owner. Used by
	// ancestor-path resolution, which is not owner-scoped.
	FindByID(ctx context.Context, id string) (*model.Folder, error)

	// FindByIDAndOwner returns a folder only if it belongs to the owner.
	FindByIDAndOwner(ctx context.Context, id, owner string) (*model.Folder, error)

	// FindRoots returns the owner's folders with no parent.
	FindRoots(ctx context.Context, owner string) ([]model.Folder, error)

	// FindChildren returns the owner's direct subfolders of parentID.
	FindChildren(ctx context.Context, parentID, owner string) ([]model.Folder, error)

	// FindSibling returns a folder of the owner with the given name under the
	// given parent (nil parent = root level), excluding excludeID when set.
	FindSibling(ctx context.Context, owner string, parentID *string, name, excludeID string) (*model.Folder, error)

	// Update persists name/parent changes for a folder owned by the given
	// user and returns the updated row, or sql.ErrNoRows if no row matched.
	Update(ctx context.Context, f *model.Folder) (*model.Folder, error)

	// Delete removes a single folder row scoped to the owner. It returns nil
	// if the row was deleted or did not exist.
	Delete(ctx context.Context, id, owner string) error
}
