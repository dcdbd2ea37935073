package postgres

import (
	"context"
	"database/sql"
	"errors"

	"fms/internal/model"
	"fms/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, title, content, folder_id, created_by, created_at, updated_at`

func scanDocument(row interface{ Scan(dest ...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(&d.ID, &d.Title, &d.Content, &d.FolderID, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a document row plus its initial versions in one transaction.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	const q = `
		INSERT INTO documents (id, title, content, folder_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + documentColumns
	out, err := scanDocument(tx.QueryRowContext(ctx, q,
		doc.ID,
		doc.Title,
		doc.Content,
		doc.FolderID,
		doc.CreatedBy,
		doc.CreatedAt,
		doc.UpdatedAt,
	))
	if err != nil {
		return nil, wrapWriteErr(err)
	}

	const qv = `
		INSERT INTO document_versions (document_id, version, file_url, uploaded_at)
		VALUES ($1, $2, $3, $4)`
	for _, v := range doc.Versions {
		if _, err := tx.ExecContext(ctx, qv, out.ID, v.Version, v.FileURL, v.UploadedAt); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	out.Versions = doc.Versions
	return out, nil
}

// FindByID fetches a document with its ordered versions.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}
	if d.Versions, err = r.loadVersions(ctx, d.ID); err != nil {
		return nil, err
	}
	return d, nil
}

// FindByIDAndOwner fetches a document scoped to its owner, with versions.
func (r *DocumentPostgres) FindByIDAndOwner(ctx context.Context, id, owner string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 AND created_by = $2`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id, owner))
	if err != nil {
		return nil, err
	}
	if d.Versions, err = r.loadVersions(ctx, d.ID); err != nil {
		return nil, err
	}
	return d, nil
}

// FindByFolderAndTitle looks up a same-titled document in the folder,
// skipping excludeID when non-empty (update path).
func (r *DocumentPostgres) FindByFolderAndTitle(ctx context.Context, folderID, title, excludeID string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE folder_id = $1 AND title = $2 AND ($3 = '' OR id <> $3::uuid)`
	return scanDocument(r.db.QueryRowContext(ctx, q, folderID, title, excludeID))
}

// FindByFolder returns the owner's documents in a folder, versions included.
func (r *DocumentPostgres) FindByFolder(ctx context.Context, folderID, owner string) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE folder_id = $1 AND created_by = $2
		ORDER BY created_at, id`
	docs, err := r.queryDocuments(ctx, q, folderID, owner)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].Versions, err = r.loadVersions(ctx, docs[i].ID); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

// Search matches title OR content case-insensitively; empty term matches all.
func (r *DocumentPostgres) Search(ctx context.Context, owner, term string) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE created_by = $1
		  AND ($2 = '' OR title ILIKE '%' || $2 || '%' OR content ILIKE '%' || $2 || '%')
		ORDER BY created_at, id`
	return r.queryDocuments(ctx, q, owner, term)
}

// CountByOwner counts the user's documents.
func (r *DocumentPostgres) CountByOwner(ctx context.Context, owner string) (int, error) {
	const q = `SELECT COUNT(*) FROM documents WHERE created_by = $1`
	var total int
	if err := r.db.QueryRowContext(ctx, q, owner).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Update persists title/content changes for an owned document.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET title = $3, content = $4, updated_at = now()
		WHERE id = $1 AND created_by = $2
		RETURNING ` + documentColumns
	out, err := scanDocument(r.db.QueryRowContext(ctx, q, doc.ID, doc.CreatedBy, doc.Title, doc.Content))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, wrapWriteErr(err)
	}
	return out, nil
}

// AddVersion appends a version row; history order is the serial id.
func (r *DocumentPostgres) AddVersion(ctx context.Context, documentID string, v *model.Version) (*model.Version, error) {
	const q = `
		INSERT INTO document_versions (document_id, version, file_url, uploaded_at)
		VALUES ($1, $2, $3, $4)
		RETURNING version, file_url, uploaded_at`
	var out model.Version
	if err := r.db.QueryRowContext(ctx, q, documentID, v.Version, v.FileURL, v.UploadedAt).
		Scan(&out.Version, &out.FileURL, &out.UploadedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a document row; versions cascade at the schema level.
// Missing rows are not an error.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// DeleteByFolder bulk-removes the owner's documents in a folder.
func (r *DocumentPostgres) DeleteByFolder(ctx context.Context, folderID, owner string) (int64, error) {
	const q = `DELETE FROM documents WHERE folder_id = $1 AND created_by = $2`
	res, err := r.db.ExecContext(ctx, q, folderID, owner)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *DocumentPostgres) loadVersions(ctx context.Context, documentID string) ([]model.Version, error) {
	const q = `
		SELECT version, file_url, uploaded_at
		FROM document_versions
		WHERE document_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make([]model.Version, 0)
	for rows.Next() {
		var v model.Version
		if err := rows.Scan(&v.Version, &v.FileURL, &v.UploadedAt); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return versions, nil
}

func (r *DocumentPostgres) queryDocuments(ctx context.Context, q string, args ...any) ([]model.Document, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
