package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"fms/internal/apperr"
	"fms/internal/client"
	"fms/internal/model"
	"fms/internal/repository"
	"fms/internal/storage"
)

// maxTreeDepth bounds recursive tree walks. The parent graph is acyclic by
// construction, but a corrupted row must not hang a request.
const maxTreeDepth = 128

// FolderContent is the recursive content listing of one folder: its
// documents plus each subfolder's own content, nested.
type FolderContent struct {
	Documents  []model.Document   `json:"documents"`
	Subfolders []SubfolderContent `json:"subfolders"`
}

// SubfolderContent tags a nested content listing with its folder. The
// embedded content fields flatten into the same JSON object.
type SubfolderContent struct {
	Folder model.Folder `json:"folder"`
	FolderContent
}

// CreateFolderInput carries the create/update request fields.
type CreateFolderInput struct {
	Name         string  `json:"name"`
	ParentFolder *string `json:"parentFolder"`
}

// FolderService defines the use cases of the hierarchy service: tree
// mutations, recursive listings, ancestor-path resolution, and the
// cascading delete that spans both services.
type FolderService interface {
	// Create adds a folder under the given parent (nil = root level).
	Create(ctx context.Context, ownerID string, in CreateFolderInput) (*model.Folder, error)

	// Update renames and/or reparents a folder.
	Update(ctx context.Context, folderID, ownerID string, in CreateFolderInput) (*model.Folder, error)

	// Delete removes the folder and every descendant, depth-first. Each
	// folder's documents are deleted through the version service using the
	// caller's token; the on-disk subtree goes last. Not atomic: the first
	// failure aborts the remaining recursion and the tree stays partially
	// deleted.
	Delete(ctx context.Context, folderID, ownerID, token string) error

	// Roots lists the owner's parentless folders.
	Roots(ctx context.Context, ownerID string) ([]model.Folder, error)

	// Content returns the folder's nested content tree. Documents per folder
	// come from the version service.
	Content(ctx context.Context, ownerID, folderID, token string) (*FolderContent, error)

	// Parents returns the folder's ancestor path ordered root → folder.
	Parents(ctx context.Context, folderID string) ([]model.FolderRef, error)
}

// folderService is a concrete implementation of FolderService.
type folderService struct {
	repo     repository.FolderRepository
	versions client.VersionClient
	store    storage.Storage
}

// NewFolderService constructs a new FolderService.
func NewFolderService(repo repository.FolderRepository, versions client.VersionClient, store storage.Storage) FolderService {
	return &folderService{repo: repo, versions: versions, store: store}
}

func (s *folderService) Create(ctx context.Context, ownerID string, in CreateFolderInput) (*model.Folder, error) {
	if in.ParentFolder != nil && *in.ParentFolder != "" {
		if _, err := s.repo.FindByIDAndOwner(ctx, *in.ParentFolder, ownerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperr.NotFound("parent folder not found")
			}
			return nil, err
		}
	} else {
		in.ParentFolder = nil
	}

	if _, err := s.repo.FindSibling(ctx, ownerID, in.ParentFolder, in.Name, ""); err == nil {
		return nil, apperr.Conflict("folder with the same name already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	now := time.Now().UTC()
	folder := &model.Folder{
		ID:           uuid.New().String(),
		Name:         in.Name,
		ParentFolder: in.ParentFolder,
		CreatedBy:    ownerID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	stored, err := s.repo.Create(ctx, folder)
	if err != nil {
		// A concurrent create can slip past the sibling pre-check; the store
		// constraint still holds the invariant.
		if isConflict(err) {
			return nil, apperr.Conflict("folder with the same name already exists")
		}
		return nil, err
	}
	return stored, nil
}

func (s *folderService) Update(ctx context.Context, folderID, ownerID string, in CreateFolderInput) (*model.Folder, error) {
	if in.ParentFolder != nil && *in.ParentFolder == "" {
		in.ParentFolder = nil
	}

	if _, err := s.repo.FindSibling(ctx, ownerID, in.ParentFolder, in.Name, folderID); err == nil {
		return nil, apperr.Conflict("folder with the same name already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, &model.Folder{
		ID:           folderID,
		Name:         in.Name,
		ParentFolder: in.ParentFolder,
		CreatedBy:    ownerID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("folder not found")
		}
		if isConflict(err) {
			return nil, apperr.Conflict("folder with the same name already exists")
		}
		return nil, err
	}
	return updated, nil
}

func (s *folderService) Delete(ctx context.Context, folderID, ownerID, token string) error {
	folder, err := s.repo.FindByIDAndOwner(ctx, folderID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("folder not found")
		}
		return err
	}
	return s.deleteRecursive(ctx, folder, ownerID, token, 0)
}

// deleteRecursive removes a subtree depth-first: descendants go before the
// current folder so a failure never strands children of an already-deleted
// parent. Document deletion happens through the version service; directory
// removal uses the folder's resolved ancestor path while its row still
// exists.
func (s *folderService) deleteRecursive(ctx context.Context, folder *model.Folder, ownerID, token string, depth int) error {
	if depth > maxTreeDepth {
		return apperr.Internal("folder tree exceeds maximum depth", nil)
	}

	children, err := s.repo.FindChildren(ctx, folder.ID, ownerID)
	if err != nil {
		return err
	}
	for i := range children {
		if err := s.deleteRecursive(ctx, &children[i], ownerID, token, depth+1); err != nil {
			return err
		}
	}

	if _, err := s.versions.DeleteDocumentsByFolder(ctx, folder.ID, token); err != nil {
		return apperr.Internal("failed to delete documents for folder "+folder.ID, err)
	}

	parents, err := s.Parents(ctx, folder.ID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTree(ctx, FolderPath(parents)); err != nil {
		return apperr.Internal("failed to remove folder storage", err)
	}

	return s.repo.Delete(ctx, folder.ID, ownerID)
}

func (s *folderService) Roots(ctx context.Context, ownerID string) ([]model.Folder, error) {
	return s.repo.FindRoots(ctx, ownerID)
}

func (s *folderService) Content(ctx context.Context, ownerID, folderID, token string) (*FolderContent, error) {
	if _, err := s.repo.FindByIDAndOwner(ctx, folderID, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("folder not found")
		}
		return nil, err
	}
	return s.contentRecursive(ctx, ownerID, folderID, token, 0)
}

func (s *folderService) contentRecursive(ctx context.Context, ownerID, folderID, token string, depth int) (*FolderContent, error) {
	if depth > maxTreeDepth {
		return nil, apperr.Internal("folder tree exceeds maximum depth", nil)
	}

	documents, err := s.versions.FetchDocumentsByFolder(ctx, folderID, token)
	if err != nil {
		return nil, apperr.Internal("failed to fetch documents for folder "+folderID, err)
	}

	children, err := s.repo.FindChildren(ctx, folderID, ownerID)
	if err != nil {
		return nil, err
	}

	content := &FolderContent{
		Documents:  documents,
		Subfolders: make([]SubfolderContent, 0, len(children)),
	}
	for i := range children {
		sub, err := s.contentRecursive(ctx, ownerID, children[i].ID, token, depth+1)
		if err != nil {
			return nil, err
		}
		content.Subfolders = append(content.Subfolders, SubfolderContent{
			Folder:        children[i],
			FolderContent: *sub,
		})
	}
	return content, nil
}

func (s *folderService) Parents(ctx context.Context, folderID string) ([]model.FolderRef, error) {
	folder, err := s.repo.FindByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("folder not found")
		}
		return nil, err
	}

	hierarchy := make([]model.FolderRef, 0, 4)
	for depth := 0; ; depth++ {
		if depth > maxTreeDepth {
			return nil, apperr.Internal("folder tree exceeds maximum depth", nil)
		}
		hierarchy = append(hierarchy, model.FolderRef{ID: folder.ID, Name: folder.Name})
		if folder.ParentFolder == nil {
			break
		}
		folder, err = s.repo.FindByID(ctx, *folder.ParentFolder)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, apperr.NotFound("folder not found")
			}
			return nil, err
		}
	}

	// Collected child-first; the API contract is root → folder.
	for i, j := 0, len(hierarchy)-1; i < j; i, j = i+1, j-1 {
		hierarchy[i], hierarchy[j] = hierarchy[j], hierarchy[i]
	}
	return hierarchy, nil
}

// FolderPath joins an ancestor path's names into the slash-separated storage
// prefix under which a folder's blobs live.
func FolderPath(parents []model.FolderRef) string {
	names := make([]string, len(parents))
	for i, p := range parents {
		names[i] = p.Name
	}
	return strings.Join(names, "/")
}
