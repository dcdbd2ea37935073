package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fms/internal/model"
	"fms/internal/repository"
)

// FolderPostgres is a PostgreSQL implementation of repository.FolderRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type FolderPostgres struct {
	db *sql.DB
}

// NewFolderPostgres creates a new FolderPostgres repository.
func NewFolderPostgres(db *sql.DB) *FolderPostgres {
	return &FolderPostgres{db: db}
}

var _ repository.FolderRepository = (*FolderPostgres)(nil)

const folderColumns = `id, name, parent_folder, created_by, created_at, updated_at`

func scanFolder(row interface{ Scan(dest ...any) error }) (*model.Folder, error) {
	var f model.Folder
	var parent sql.NullString
	if err := row.Scan(&f.ID, &f.Name, &parent, &f.CreatedBy, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	if parent.Valid {
		f.ParentFolder = &parent.String
	}
	return &f, nil
}

// Create inserts a new folder row and returns the stored record.
func (r *FolderPostgres) Create(ctx context.Context, f *model.Folder) (*model.Folder, error) {
	const q = `
		INSERT INTO folders (id, name, parent_folder, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + folderColumns
	row := r.db.QueryRowContext(ctx, q,
		f.ID,
		f.Name,
		nullableID(f.ParentFolder),
		f.CreatedBy,
		f.CreatedAt,
		f.UpdatedAt,
	)
	out, err := scanFolder(row)
	if err != nil {
		return nil, wrapWriteErr(err)
	}
	return out, nil
}

// FindByID fetches a single folder by id, any owner.
func (r *FolderPostgres) FindByID(ctx context.Context, id string) (*model.Folder, error) {
	const q = `SELECT ` + folderColumns + ` FROM folders WHERE id = $1`
	return scanFolder(r.db.QueryRowContext(ctx, q, id))
}

// FindByIDAndOwner fetches a single folder scoped to its owner.
func (r *FolderPostgres) FindByIDAndOwner(ctx context.Context, id, owner string) (*model.Folder, error) {
	const q = `SELECT ` + folderColumns + ` FROM folders WHERE id = $1 AND created_by = $2`
	return scanFolder(r.db.QueryRowContext(ctx, q, id, owner))
}

// FindRoots returns the owner's parentless folders.
func (r *FolderPostgres) FindRoots(ctx context.Context, owner string) ([]model.Folder, error) {
	const q = `
		SELECT ` + folderColumns + `
		FROM folders
		WHERE created_by = $1 AND parent_folder IS NULL
		ORDER BY created_at, id`
	return r.queryFolders(ctx, q, owner)
}

// FindChildren returns the owner's direct subfolders of parentID.
func (r *FolderPostgres) FindChildren(ctx context.Context, parentID, owner string) ([]model.Folder, error) {
	const q = `
		SELECT ` + folderColumns + `
		FROM folders
		WHERE parent_folder = $1 AND created_by = $2
		ORDER BY created_at, id`
	return r.queryFolders(ctx, q, parentID, owner)
}

// FindSibling looks up a same-named folder under the same parent for the
// owner. excludeID is skipped when non-empty (update path).
func (r *FolderPostgres) FindSibling(ctx context.Context, owner string, parentID *string, name, excludeID string) (*model.Folder, error) {
	const q = `
		SELECT ` + folderColumns + `
		FROM folders
		WHERE created_by = $1
		  AND parent_folder IS NOT DISTINCT FROM $2
		  AND name = $3
		  AND ($4 = '' OR id <> $4::uuid)`
	return scanFolder(r.db.QueryRowContext(ctx, q, owner, nullableID(parentID), name, excludeID))
}

// Update persists name/parent changes for an owned folder.
func (r *FolderPostgres) Update(ctx context.Context, f *model.Folder) (*model.Folder, error) {
	const q = `
		UPDATE folders
		SET name = $3, parent_folder = $4, updated_at = now()
		WHERE id = $1 AND created_by = $2
		RETURNING ` + folderColumns
	row := r.db.QueryRowContext(ctx, q, f.ID, f.CreatedBy, f.Name, nullableID(f.ParentFolder))
	out, err := scanFolder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, wrapWriteErr(err)
	}
	return out, nil
}

// Delete removes a folder row scoped to the owner. Missing rows are not an error.
func (r *FolderPostgres) Delete(ctx context.Context, id, owner string) error {
	const q = `DELETE FROM folders WHERE id = $1 AND created_by = $2`
	res, err := r.db.ExecContext(ctx, q, id, owner)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

func (r *FolderPostgres) queryFolders(ctx context.Context, q string, args ...any) ([]model.Folder, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Folder, 0)
	for rows.Next() {
		f, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func nullableID(id *string) any {
	if id == nil || *id == "" {
		return nil
	}
	return *id
}
