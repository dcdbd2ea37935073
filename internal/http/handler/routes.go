package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"fms/internal/service"
)

// registerCommonRoutes attaches the routes every service exposes: health
// probes plus the OpenAPI spec and Swagger UI.
func registerCommonRoutes(app *fiber.App, db *sql.DB) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})
}

// RegisterHierarchyRoutes attaches the folder tree routes. authn guards
// everything except the common routes.
func RegisterHierarchyRoutes(app *fiber.App, db *sql.DB, svc service.FolderService, authn fiber.Handler) {
	registerCommonRoutes(app, db)

	app.Post("/folders", authn, CreateFolder(svc))
	app.Put("/folders/:id", authn, UpdateFolder(svc))
	app.Delete("/folders/:id", authn, DeleteFolder(svc))
	app.Get("/folders/:id/parents", authn, GetFolderParents(svc))
	app.Get("/viewstore", authn, ListRootFolders(svc))
	app.Get("/viewstore/:folderId", authn, GetFolderContent(svc))
}

// RegisterVersionRoutes attaches the document and version routes.
func RegisterVersionRoutes(app *fiber.App, db *sql.DB, svc service.DocumentService, authn fiber.Handler) {
	registerCommonRoutes(app, db)

	app.Post("/documents", authn, CreateDocument(svc))
	app.Get("/documents/folder/:folderId", authn, DocumentsByFolder(svc))
	app.Delete("/documents/folder/:folderId", authn, DeleteDocumentsByFolder(svc))
	app.Get("/documents/:id", authn, GetDocument(svc))
	app.Put("/documents/:id", authn, UpdateDocument(svc))
	app.Delete("/documents/:id", authn, DeleteDocument(svc))
	app.Post("/documents/:id/version", authn, AddDocumentVersion(svc))
	app.Get("/documents/:id/versions", authn, ListDocumentVersions(svc))
	app.Get("/filter", authn, FilterDocuments(svc))
	app.Get("/total-documents", authn, TotalDocuments(svc))
}

// RegisterUserRoutes attaches the account routes. Registration and login are
// the only unauthenticated business endpoints in the system.
func RegisterUserRoutes(app *fiber.App, db *sql.DB, svc service.UserService) {
	registerCommonRoutes(app, db)

	app.Post("/users/register", RegisterUser(svc))
	app.Post("/users/login", LoginUser(svc))
}
