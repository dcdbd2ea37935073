package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fms/internal/http/middleware"
	"fms/internal/service"
)

// errMissingFile marks a multipart request with no file part, as opposed to
// one whose part exists but cannot be opened.
var errMissingFile = errors.New("missing multipart file")

// formBlob opens the multipart "file" field. The caller owns the returned
// closer.
func formBlob(c *fiber.Ctx) (*service.Blob, func(), error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, nil, errMissingFile
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	blob := &service.Blob{
		Reader:      f,
		Filename:    fh.Filename,
		Size:        fh.Size,
		ContentType: ct,
	}
	return blob, func() { f.Close() }, nil
}

// CreateDocument handles POST /documents (multipart: title, content, folder,
// file).
func CreateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := service.CreateDocumentInput{
			Title:    c.FormValue("title"),
			Content:  c.FormValue("content"),
			FolderID: c.FormValue("folder"),
		}
		if in.Title == "" {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "title is required")
		}
		if _, err := uuid.Parse(in.FolderID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid folder id format")
		}

		blob, closeBlob, err := formBlob(c)
		if err != nil {
			if errors.Is(err, errMissingFile) {
				return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
			}
			return respondError(c, err)
		}
		defer closeBlob()

		user := middleware.CurrentUser(c)
		doc, err := svc.Create(c.UserContext(), user.UserID, in, blob, middleware.BearerToken(c))
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusCreated, "Document created successfully", doc)
	}
}

// AddDocumentVersion handles POST /documents/:id/version (multipart:
// versionNumber, file).
func AddDocumentVersion(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		label := c.FormValue("versionNumber")
		if label == "" {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "versionNumber is required")
		}

		blob, closeBlob, err := formBlob(c)
		if err != nil {
			if errors.Is(err, errMissingFile) {
				return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
			}
			return respondError(c, err)
		}
		defer closeBlob()

		user := middleware.CurrentUser(c)
		version, err := svc.AddVersion(c.UserContext(), id, user.UserID, label, blob, middleware.BearerToken(c))
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Version added successfully", version)
	}
}

// GetDocument handles GET /documents/:id.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Document retrieved successfully", doc)
	}
}

// ListDocumentVersions handles GET /documents/:id/versions.
func ListDocumentVersions(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		versions, err := svc.Versions(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Versions retrieved successfully", versions)
	}
}

// UpdateDocument handles PUT /documents/:id.
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var in service.UpdateDocumentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		user := middleware.CurrentUser(c)
		doc, err := svc.Update(c.UserContext(), id, user.UserID, in)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Document updated successfully", doc)
	}
}

// DeleteDocument handles DELETE /documents/:id.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		user := middleware.CurrentUser(c)
		if err := svc.Delete(c.UserContext(), id, user.UserID); err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Document deleted successfully", nil)
	}
}

// FilterDocuments handles GET /filter?search=term.
func FilterDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		docs, err := svc.Filter(c.UserContext(), c.Query("search"), user.UserID, middleware.BearerToken(c))
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Documents filtered successfully", docs)
	}
}

// TotalDocuments handles GET /total-documents.
func TotalDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		count, err := svc.Count(c.UserContext(), user.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Document count retrieved successfully", count)
	}
}

// DocumentsByFolder handles GET /documents/folder/:folderId. The hierarchy
// service calls this while assembling a folder's content tree.
func DocumentsByFolder(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folderID := c.Params("folderId")
		if _, err := uuid.Parse(folderID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid folder id format")
		}

		user := middleware.CurrentUser(c)
		docs, err := svc.ByFolder(c.UserContext(), folderID, user.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Documents retrieved successfully", docs)
	}
}

// DeleteDocumentsByFolder handles DELETE /documents/folder/:folderId. The
// hierarchy service calls this once per folder during a cascading delete.
func DeleteDocumentsByFolder(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folderID := c.Params("folderId")
		if _, err := uuid.Parse(folderID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid folder id format")
		}

		user := middleware.CurrentUser(c)
		result, err := svc.DeleteByFolder(c.UserContext(), folderID, user.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Documents deleted successfully", result)
	}
}
