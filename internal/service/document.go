package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"fms/internal/apperr"
	"fms/internal/client"
	"fms/internal/model"
	"fms/internal/repository"
	"fms/internal/storage"
)

// Blob is an uploaded file to be materialized under the document's resolved
// folder path. Filename is used only to keep the extension; the stored name
// is generated.
type Blob struct {
	Reader      io.Reader
	Filename    string
	Size        int64
	ContentType string
}

// CreateDocumentInput carries the document creation fields.
type CreateDocumentInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	FolderID string `json:"folder"`
}

// UpdateDocumentInput carries the mutable document fields; empty values are
// left untouched.
type UpdateDocumentInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DocumentView is the external read model of a document.
type DocumentView struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Content   string          `json:"content"`
	FolderID  string          `json:"folder"`
	CreatedAt time.Time       `json:"createdAt"`
	Versions  []model.Version `json:"versions"`
}

// DocumentSummary is one row of a filtered search, with the folder path
// resolved through the hierarchy service.
type DocumentSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	FolderPath string `json:"folderPath"`
}

// DocumentCount is the owner's total document count.
type DocumentCount struct {
	TotalDocuments int `json:"totalDocuments"`
}

// DeleteByFolderResult reports a bulk delete invoked during a cascade.
type DeleteByFolderResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// DocumentService defines the use cases of the version service: document
// lifecycle, append-only version history, blob placement keyed by resolved
// folder paths, and the bulk operations the hierarchy service calls during
// cascading deletes.
type DocumentService interface {
	// Create stores a document; when a blob is given it is placed under the
	// folder's resolved ancestor path and recorded as version "1.0".
	Create(ctx context.Context, ownerID string, in CreateDocumentInput, blob *Blob, token string) (*model.Document, error)

	// AddVersion appends a version to the document's history. Labels are not
	// checked for uniqueness or ordering; history order is insertion order.
	AddVersion(ctx context.Context, documentID, ownerID, versionLabel string, blob *Blob, token string) (*model.Version, error)

	// Get returns the external view of a document.
	Get(ctx context.Context, documentID string) (*DocumentView, error)

	// Versions returns the document's history in insertion order.
	Versions(ctx context.Context, documentID string) ([]model.Version, error)

	// Delete removes an owned document: every version blob first, then the
	// metadata record.
	Delete(ctx context.Context, documentID, ownerID string) error

	// Filter matches the owner's documents by title or content substring
	// (case-insensitive; empty term matches all) and resolves each match's
	// folder path. One hierarchy lookup per document; the first lookup
	// failure aborts the whole operation.
	Filter(ctx context.Context, searchTerm, ownerID, token string) ([]DocumentSummary, error)

	// Count returns the owner's document total; a structurally invalid owner
	// id yields zero instead of a datastore error.
	Count(ctx context.Context, ownerID string) (*DocumentCount, error)

	// Update changes title and/or content of an owned document.
	Update(ctx context.Context, documentID, ownerID string, in UpdateDocumentInput) (*model.Document, error)

	// ByFolder lists the owner's documents in a folder.
	ByFolder(ctx context.Context, folderID, ownerID string) ([]model.Document, error)

	// DeleteByFolder removes the owner's documents in a folder, blobs first.
	DeleteByFolder(ctx context.Context, folderID, ownerID string) (*DeleteByFolderResult, error)
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	repo      repository.DocumentRepository
	hierarchy client.HierarchyClient
	store     storage.Storage
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(repo repository.DocumentRepository, hierarchy client.HierarchyClient, store storage.Storage) DocumentService {
	return &documentService{repo: repo, hierarchy: hierarchy, store: store}
}

func (s *documentService) Create(ctx context.Context, ownerID string, in CreateDocumentInput, blob *Blob, token string) (*model.Document, error) {
	if _, err := s.repo.FindByFolderAndTitle(ctx, in.FolderID, in.Title, ""); err == nil {
		return nil, apperr.Conflict("document with the same title already exists in this folder")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	now := time.Now().UTC()
	var versions []model.Version
	var blobKey string

	if blob != nil {
		key, err := s.placeBlob(ctx, in.FolderID, blob, "1.0", token)
		if err != nil {
			return nil, err
		}
		blobKey = key
		versions = []model.Version{{Version: "1.0", FileURL: key, UploadedAt: now}}
	}

	doc := &model.Document{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Content:   in.Content,
		FolderID:  in.FolderID,
		CreatedBy: ownerID,
		Versions:  versions,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Roll the blob back so a failed insert leaves no orphaned file.
		if blobKey != "" {
			if delErr := s.store.Delete(ctx, blobKey); delErr != nil {
				return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
			}
		}
		if isConflict(err) {
			return nil, apperr.Conflict("document with the same title already exists in this folder")
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

func (s *documentService) AddVersion(ctx context.Context, documentID, ownerID, versionLabel string, blob *Blob, token string) (*model.Version, error) {
	doc, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("document not found")
		}
		return nil, err
	}

	version := &model.Version{Version: versionLabel, UploadedAt: time.Now().UTC()}
	if blob != nil {
		key, err := s.placeBlob(ctx, doc.FolderID, blob, versionLabel, token)
		if err != nil {
			return nil, err
		}
		version.FileURL = key
	}

	stored, err := s.repo.AddVersion(ctx, doc.ID, version)
	if err != nil {
		if version.FileURL != "" {
			if delErr := s.store.Delete(ctx, version.FileURL); delErr != nil {
				return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
			}
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// placeBlob resolves the folder's ancestor path through the hierarchy
// service and stores the blob under it with a generated name carrying the
// version label.
func (s *documentService) placeBlob(ctx context.Context, folderID string, blob *Blob, versionLabel, token string) (string, error) {
	parents, err := s.hierarchy.FetchFolderParents(ctx, folderID, token)
	if err != nil {
		return "", apperr.Internal("failed to resolve folder hierarchy", err)
	}

	ext := filepath.Ext(blob.Filename)
	name := fmt.Sprintf("%d-v%s-%s%s", time.Now().UnixMilli(), versionLabel, uuid.New().String()[:8], ext)
	key := path.Join(FolderPath(parents), name)

	if _, err := s.store.Put(ctx, key, blob.Reader, storage.PutObjectOptions{
		Size:        blob.Size,
		ContentType: blob.ContentType,
		Metadata:    map[string]string{"original-filename": blob.Filename},
	}); err != nil {
		return "", fmt.Errorf("upload to storage: %w", err)
	}
	return key, nil
}

func (s *documentService) Get(ctx context.Context, documentID string) (*DocumentView, error) {
	doc, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("document not found")
		}
		return nil, err
	}
	return &DocumentView{
		ID:        doc.ID,
		Title:     doc.Title,
		Content:   doc.Content,
		FolderID:  doc.FolderID,
		CreatedAt: doc.CreatedAt,
		Versions:  doc.Versions,
	}, nil
}

func (s *documentService) Versions(ctx context.Context, documentID string) ([]model.Version, error) {
	doc, err := s.repo.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("document not found")
		}
		return nil, err
	}
	return doc.Versions, nil
}

func (s *documentService) Delete(ctx context.Context, documentID, ownerID string) error {
	doc, err := s.repo.FindByIDAndOwner(ctx, documentID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("document not found")
		}
		return err
	}

	for _, v := range doc.Versions {
		if v.FileURL == "" {
			continue
		}
		if err := s.store.Delete(ctx, v.FileURL); err != nil {
			return fmt.Errorf("delete version blob: %w", err)
		}
	}
	return s.repo.Delete(ctx, doc.ID)
}

func (s *documentService) Filter(ctx context.Context, searchTerm, ownerID, token string) ([]DocumentSummary, error) {
	docs, err := s.repo.Search(ctx, ownerID, searchTerm)
	if err != nil {
		return nil, err
	}

	result := make([]DocumentSummary, 0, len(docs))
	for _, doc := range docs {
		parents, err := s.hierarchy.FetchFolderParents(ctx, doc.FolderID, token)
		if err != nil {
			return nil, apperr.Internal("failed to resolve folder hierarchy", err)
		}
		result = append(result, DocumentSummary{
			ID:         doc.ID,
			Title:      doc.Title,
			FolderPath: FolderPath(parents),
		})
	}
	return result, nil
}

func (s *documentService) Count(ctx context.Context, ownerID string) (*DocumentCount, error) {
	// A malformed owner id cannot own anything; answer zero instead of
	// letting the datastore reject the UUID cast.
	if _, err := uuid.Parse(ownerID); err != nil {
		return &DocumentCount{TotalDocuments: 0}, nil
	}
	total, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &DocumentCount{TotalDocuments: total}, nil
}

func (s *documentService) Update(ctx context.Context, documentID, ownerID string, in UpdateDocumentInput) (*model.Document, error) {
	doc, err := s.repo.FindByIDAndOwner(ctx, documentID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("document not found")
		}
		return nil, err
	}

	if in.Title != "" && in.Title != doc.Title {
		if _, err := s.repo.FindByFolderAndTitle(ctx, doc.FolderID, in.Title, doc.ID); err == nil {
			return nil, apperr.Conflict("document with the same title already exists in this folder")
		} else if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		doc.Title = in.Title
	}
	if in.Content != "" {
		doc.Content = in.Content
	}

	updated, err := s.repo.Update(ctx, doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("document not found")
		}
		if isConflict(err) {
			return nil, apperr.Conflict("document with the same title already exists in this folder")
		}
		return nil, err
	}
	updated.Versions = doc.Versions
	return updated, nil
}

func (s *documentService) ByFolder(ctx context.Context, folderID, ownerID string) ([]model.Document, error) {
	return s.repo.FindByFolder(ctx, folderID, ownerID)
}

func (s *documentService) DeleteByFolder(ctx context.Context, folderID, ownerID string) (*DeleteByFolderResult, error) {
	docs, err := s.repo.FindByFolder(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		for _, v := range doc.Versions {
			if v.FileURL == "" {
				continue
			}
			if err := s.store.Delete(ctx, v.FileURL); err != nil {
				return nil, fmt.Errorf("delete version blob: %w", err)
			}
		}
	}

	count, err := s.repo.DeleteByFolder(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}
	return &DeleteByFolderResult{DeletedCount: count}, nil
}
