package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fms/internal/apperr"
	"fms/internal/auth"
	"fms/internal/http/middleware"
	"fms/internal/model"
	"fms/internal/service"
	serviceMocks "fms/internal/service/mocks"
)

// testAuthn stands in for the real token verification so handler tests can
// run without signing keys.
func testAuthn(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.CurrentUserLocalKey, &auth.Claims{UserID: userID, Username: "tester", Email: "tester@example.com"})
		c.Locals(middleware.BearerTokenLocalKey, "test-token")
		return c.Next()
	}
}

func decodeEnvelope(t *testing.T, resp *http.Response) successPayload {
	t.Helper()
	var body successPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateFolder(t *testing.T) {
	ownerID := uuid.New().String()
	mockSvc := new(serviceMocks.MockFolderService)
	app := fiber.New()
	app.Post("/folders", testAuthn(ownerID), CreateFolder(mockSvc))

	t.Run("success", func(t *testing.T) {
		expected := &model.Folder{ID: uuid.New().String(), Name: "reports", CreatedBy: ownerID}
		mockSvc.On("Create", mock.Anything, ownerID, service.CreateFolderInput{Name: "reports"}).
			Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/folders", bytes.NewBufferString(`{"name":"reports"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decodeEnvelope(t, resp)
		assert.True(t, body.Success)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing name", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/folders", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "BAD_REQUEST", res.Error.Code)
	})

	t.Run("duplicate sibling", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, ownerID, service.CreateFolderInput{Name: "reports"}).
			Return(nil, apperr.Conflict("folder with the same name already exists")).Once()

		req := httptest.NewRequest(http.MethodPost, "/folders", bytes.NewBufferString(`{"name":"reports"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "CONFLICT", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteFolder(t *testing.T) {
	ownerID := uuid.New().String()
	mockSvc := new(serviceMocks.MockFolderService)
	app := fiber.New()
	app.Delete("/folders/:id", testAuthn(ownerID), DeleteFolder(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id, ownerID, "test-token").Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/folders/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id, ownerID, "test-token").
			Return(apperr.NotFound("folder not found")).Once()

		req := httptest.NewRequest(http.MethodDelete, "/folders/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/folders/not-a-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})
}

func TestGetFolderParents(t *testing.T) {
	ownerID := uuid.New().String()
	mockSvc := new(serviceMocks.MockFolderService)
	app := fiber.New()
	app.Get("/folders/:id/parents", testAuthn(ownerID), GetFolderParents(mockSvc))

	id := uuid.New().String()
	parents := []model.FolderRef{{ID: uuid.New().String(), Name: "root"}, {ID: id, Name: "child"}}
	mockSvc.On("Parents", mock.Anything, id).Return(parents, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/folders/"+id+"/parents", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeEnvelope(t, resp)
	raw, _ := json.Marshal(body.Data)
	var got []model.FolderRef
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, parents, got)
	mockSvc.AssertExpectations(t)
}

func TestCreateDocument(t *testing.T) {
	ownerID := uuid.New().String()
	folderID := uuid.New().String()
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/documents", testAuthn(ownerID), CreateDocument(mockSvc))

	newForm := func(title string, withFile bool) (*bytes.Buffer, string) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		writer.WriteField("title", title)
		writer.WriteField("content", "hello")
		writer.WriteField("folder", folderID)
		if withFile {
			part, _ := writer.CreateFormFile("file", "draft.txt")
			part.Write([]byte("file body"))
		}
		writer.Close()
		return body, writer.FormDataContentType()
	}

	t.Run("success", func(t *testing.T) {
		expected := &model.Document{ID: uuid.New().String(), Title: "roadmap", FolderID: folderID}
		mockSvc.On("Create", mock.Anything, ownerID,
			service.CreateDocumentInput{Title: "roadmap", Content: "hello", FolderID: folderID},
			mock.Anything, "test-token").Return(expected, nil).Once()

		body, ct := newForm("roadmap", true)
		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing title", func(t *testing.T) {
		body, ct := newForm("", false)
		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing file", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Post("/documents", testAuthn(ownerID), CreateDocument(mockSvc))

		body, ct := newForm("roadmap", false)
		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
		mockSvc.AssertNotCalled(t, "Create", mock.Anything, ownerID,
			service.CreateDocumentInput{Title: "roadmap", Content: "hello", FolderID: folderID},
			mock.Anything, "test-token")
	})

	t.Run("duplicate title", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, ownerID,
			service.CreateDocumentInput{Title: "roadmap", Content: "hello", FolderID: folderID},
			mock.Anything, "test-token").
			Return(nil, apperr.Conflict("document with the same title already exists in this folder")).Once()

		body, ct := newForm("roadmap", true)
		req := httptest.NewRequest(http.MethodPost, "/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestAddDocumentVersion(t *testing.T) {
	ownerID := uuid.New().String()
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/documents/:id/version", testAuthn(ownerID), AddDocumentVersion(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		writer.WriteField("versionNumber", "2.0")
		part, _ := writer.CreateFormFile("file", "v2.txt")
		part.Write([]byte("v2 body"))
		writer.Close()

		expected := &model.Version{Version: "2.0", FileURL: "root/v2.txt"}
		mockSvc.On("AddVersion", mock.Anything, id, ownerID, "2.0", mock.Anything, "test-token").
			Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/documents/"+id+"/version", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing file", func(t *testing.T) {
		id := uuid.New().String()
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		writer.WriteField("versionNumber", "2.0")
		writer.Close()

		req := httptest.NewRequest(http.MethodPost, "/documents/"+id+"/version", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})
}

func TestGetDocument(t *testing.T) {
	ownerID := uuid.New().String()
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/documents/:id", testAuthn(ownerID), GetDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		expected := &service.DocumentView{ID: id, Title: "roadmap"}
		mockSvc.On("Get", mock.Anything, id).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, apperr.NotFound("document not found")).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/documents/invalid-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestFilterDocuments(t *testing.T) {
	ownerID := uuid.New().String()
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/filter", testAuthn(ownerID), FilterDocuments(mockSvc))

	summaries := []service.DocumentSummary{{ID: uuid.New().String(), Title: "roadmap", FolderPath: "root/docs"}}
	mockSvc.On("Filter", mock.Anything, "roadmap", ownerID, "test-token").Return(summaries, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/filter?search=roadmap", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeEnvelope(t, resp)
	raw, _ := json.Marshal(body.Data)
	var got []service.DocumentSummary
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, summaries, got)
	mockSvc.AssertExpectations(t)
}

func TestDeleteDocumentsByFolder(t *testing.T) {
	ownerID := uuid.New().String()
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Delete("/documents/folder/:folderId", testAuthn(ownerID), DeleteDocumentsByFolder(mockSvc))

	folderID := uuid.New().String()
	mockSvc.On("DeleteByFolder", mock.Anything, folderID, ownerID).
		Return(&service.DeleteByFolderResult{DeletedCount: 3}, nil).Once()

	req := httptest.NewRequest(http.MethodDelete, "/documents/folder/"+folderID, nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeEnvelope(t, resp)
	raw, _ := json.Marshal(body.Data)
	var got service.DeleteByFolderResult
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, int64(3), got.DeletedCount)
	mockSvc.AssertExpectations(t)
}

func TestRegisterUser(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Post("/users/register", RegisterUser(mockSvc))

	t.Run("success", func(t *testing.T) {
		in := service.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret"}
		expected := &model.User{ID: uuid.New().String(), Username: "alice", Email: "alice@example.com"}
		mockSvc.On("Register", mock.Anything, in).Return(expected, nil).Once()

		payload, _ := json.Marshal(in)
		req := httptest.NewRequest(http.MethodPost, "/users/register", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/users/register", bytes.NewBufferString(`{"username":"alice"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("duplicate", func(t *testing.T) {
		in := service.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret"}
		mockSvc.On("Register", mock.Anything, in).
			Return(nil, apperr.Conflict("username or email already taken")).Once()

		payload, _ := json.Marshal(in)
		req := httptest.NewRequest(http.MethodPost, "/users/register", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestLoginUser(t *testing.T) {
	mockSvc := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Post("/users/login", LoginUser(mockSvc))

	t.Run("success", func(t *testing.T) {
		in := service.LoginInput{Email: "alice@example.com", Password: "secret"}
		expected := &service.LoginResult{Token: "jwt-token", User: &model.User{ID: uuid.New().String()}}
		mockSvc.On("Login", mock.Anything, in).Return(expected, nil).Once()

		payload, _ := json.Marshal(in)
		req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("wrong credentials", func(t *testing.T) {
		in := service.LoginInput{Email: "alice@example.com", Password: "wrong"}
		mockSvc.On("Login", mock.Anything, in).
			Return(nil, apperr.Unauthorized("invalid credentials")).Once()

		payload, _ := json.Marshal(in)
		req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "UNAUTHORIZED", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	mockSvc := new(serviceMocks.MockUserService)
	RegisterUserRoutes(app, nil, mockSvc)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}
