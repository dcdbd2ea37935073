package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fms/internal/config"
	"fms/internal/model"
)

func peerConfig(hierarchyURL, versionURL string) config.PeerConfig {
	return config.PeerConfig{
		HierarchyURL: hierarchyURL,
		VersionURL:   versionURL,
		TimeoutSec:   2,
	}
}

func TestHierarchyClient_FetchFolderParents(t *testing.T) {
	parents := []model.FolderRef{
		{ID: "root-id", Name: "root"},
		{ID: "leaf-id", Name: "leaf"},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/folders/leaf-id/parents", r.URL.Path)
		assert.Equal(t, "Bearer caller-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Folder hierarchy retrieved successfully",
			"data":    parents,
		})
	}))
	defer srv.Close()

	cli := NewHierarchyClient(peerConfig(srv.URL, ""))

	got, err := cli.FetchFolderParents(context.Background(), "leaf-id", "caller-token")

	require.NoError(t, err)
	assert.Equal(t, parents, got)
}

func TestHierarchyClient_PeerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"request_id":"x","error":{"code":"NOT_FOUND","message":"folder not found"}}`))
	}))
	defer srv.Close()

	cli := NewHierarchyClient(peerConfig(srv.URL, ""))

	_, err := cli.FetchFolderParents(context.Background(), "missing", "caller-token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestVersionClient_FetchDocumentsByFolder(t *testing.T) {
	docs := []model.Document{{ID: "d1", Title: "notes"}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/documents/folder/f1", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Documents retrieved successfully",
			"data":    docs,
		})
	}))
	defer srv.Close()

	cli := NewVersionClient(peerConfig("", srv.URL))

	got, err := cli.FetchDocumentsByFolder(context.Background(), "f1", "caller-token")

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "notes", got[0].Title)
}

func TestVersionClient_DeleteDocumentsByFolder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/documents/folder/f1", r.URL.Path)
		assert.Equal(t, "Bearer caller-token", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Documents deleted successfully",
			"data":    map[string]any{"deletedCount": 3},
		})
	}))
	defer srv.Close()

	cli := NewVersionClient(peerConfig("", srv.URL))

	count, err := cli.DeleteDocumentsByFolder(context.Background(), "f1", "caller-token")

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestVersionClient_MalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	cli := NewVersionClient(peerConfig("", srv.URL))

	_, err := cli.FetchDocumentsByFolder(context.Background(), "f1", "caller-token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode peer response")
}
