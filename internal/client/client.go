package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"fms/internal/config"
	"fms/internal/model"
)

// Package client implements the synchronous HTTP calls between the hierarchy
// and version services. Both directions forward the caller's bearer token and
// treat the first failure as final: no retries, no circuit breaking. Requests
// are bounded by the configured peer timeout.

// HierarchyClient is what the version service needs from the hierarchy
// service: ancestor-path resolution for blob placement and folder paths.
type HierarchyClient interface {
	// FetchFolderParents returns the folder's ancestor path ordered
	// root → folder.
	FetchFolderParents(ctx context.Context, folderID, token string) ([]model.FolderRef, error)
}

// VersionClient is what the hierarchy service needs from the version
// service during content listing and cascading deletes.
type VersionClient interface {
	// FetchDocumentsByFolder returns the documents stored in a folder.
	FetchDocumentsByFolder(ctx context.Context, folderID, token string) ([]model.Document, error)
	// DeleteDocumentsByFolder removes a folder's documents and their blobs,
	// returning how many documents were deleted.
	DeleteDocumentsByFolder(ctx context.Context, folderID, token string) (int64, error)
}

// envelope matches the peer services' success response body.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newHTTPClient(cfg config.PeerConfig) *http.Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// doJSON performs an authenticated request and decodes the envelope's data
// field into out (skipped when out is nil). Any transport error or non-2xx
// status is returned as an error for the caller to wrap.
func doJSON(ctx context.Context, cli *http.Client, method, url, token string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := cli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("peer returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("decode peer response: %w", err)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode peer response data: %w", err)
	}
	return nil
}
