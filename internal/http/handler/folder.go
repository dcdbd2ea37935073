package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fms/internal/http/middleware"
	"fms/internal/service"
)

// CreateFolder handles POST /folders.
func CreateFolder(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.CreateFolderInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		if in.Name == "" {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "name is required")
		}

		user := middleware.CurrentUser(c)
		folder, err := svc.Create(c.UserContext(), user.UserID, in)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusCreated, "Folder created successfully", folder)
	}
}

// UpdateFolder handles PUT /folders/:id.
func UpdateFolder(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var in service.CreateFolderInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		if in.Name == "" {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "name is required")
		}

		user := middleware.CurrentUser(c)
		folder, err := svc.Update(c.UserContext(), id, user.UserID, in)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Folder updated successfully", folder)
	}
}

// DeleteFolder handles DELETE /folders/:id. The caller's token is forwarded
// so the version service can authorize the document cascade.
func DeleteFolder(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		user := middleware.CurrentUser(c)
		if err := svc.Delete(c.UserContext(), id, user.UserID, middleware.BearerToken(c)); err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Folder and its contents deleted successfully", nil)
	}
}

// ListRootFolders handles GET /viewstore.
func ListRootFolders(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.CurrentUser(c)
		folders, err := svc.Roots(c.UserContext(), user.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Folders retrieved successfully", folders)
	}
}

// GetFolderContent handles GET /viewstore/:folderId.
func GetFolderContent(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("folderId")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		user := middleware.CurrentUser(c)
		content, err := svc.Content(c.UserContext(), user.UserID, id, middleware.BearerToken(c))
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Folder content retrieved successfully", content)
	}
}

// GetFolderParents handles GET /folders/:id/parents. The version service
// calls this to resolve a folder's storage path, so the lookup is not scoped
// to the caller's own folders.
func GetFolderParents(svc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		parents, err := svc.Parents(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return respond(c, fiber.StatusOK, "Folder hierarchy retrieved successfully", parents)
	}
}
