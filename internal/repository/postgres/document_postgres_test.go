package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"fms/internal/model"
	"fms/internal/repository"
)

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:        "doc-uuid",
		Title:     "quarterly report",
		Content:   "numbers",
		FolderID:  "folder-uuid",
		CreatedBy: "owner-uuid",
		Versions:  []model.Version{{Version: "1.0", FileURL: "root/reports/file.pdf", UploadedAt: now}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	rows := sqlmock.NewRows([]string{"id", "title", "content", "folder_id", "created_by", "created_at", "updated_at"}).
		AddRow(doc.ID, doc.Title, doc.Content, doc.FolderID, doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.Title, doc.Content, doc.FolderID, doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt).
		WillReturnRows(rows)
	mock.ExpectExec("INSERT INTO document_versions").
		WithArgs(doc.ID, "1.0", "root/reports/file.pdf", now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	assert.Len(t, result.Versions, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Create_DuplicateTitle(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO documents").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "documents_folder_id_title_key"})
	mock.ExpectRollback()

	now := time.Now().UTC()
	_, err = repo.Create(ctx, &model.Document{
		ID: "doc-uuid", Title: "dup", FolderID: "folder-uuid", CreatedBy: "owner-uuid",
		CreatedAt: now, UpdatedAt: now,
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrDuplicate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		now := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"id", "title", "content", "folder_id", "created_by", "created_at", "updated_at"}).
			AddRow("doc-id", "notes", "text", "folder-id", "owner-id", now, now)
		versionRows := sqlmock.NewRows([]string{"version", "file_url", "uploaded_at"}).
			AddRow("1.0", "root/notes.txt", now).
			AddRow("2.0", "root/notes-v2.txt", now)

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("doc-id").
			WillReturnRows(rows)
		mock.ExpectQuery("SELECT (.+) FROM document_versions").
			WithArgs("doc-id").
			WillReturnRows(versionRows)

		doc, err := repo.FindByID(ctx, "doc-id")

		assert.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, "doc-id", doc.ID)
		assert.Len(t, doc.Versions, 2)
		assert.Equal(t, "1.0", doc.Versions[0].Version)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, errors.Is(err, sql.ErrNoRows))
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_Search(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "title", "content", "folder_id", "created_by", "created_at", "updated_at"}).
		AddRow("doc-id", "report", "annual report", "folder-id", "owner-id", now, now)

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("owner-id", "report").
		WillReturnRows(rows)

	docs, err := repo.Search(ctx, "owner-id", "report")

	assert.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Equal(t, "report", docs[0].Title)
}

func TestDocumentPostgres_CountByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents").
		WithArgs("owner-id").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	total, err := repo.CountByOwner(ctx, "owner-id")

	assert.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs("doc-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(ctx, "doc-id")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_DeleteByFolder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM documents WHERE folder_id = ?").
		WithArgs("folder-id", "owner-id").
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.DeleteByFolder(ctx, "folder-id", "owner-id")

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
