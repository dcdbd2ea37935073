package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"fms/internal/config"
	"fms/internal/model"
)

// versionHTTP calls the version service over HTTP.
type versionHTTP struct {
	baseURL string
	cli     *http.Client
}

// NewVersionClient builds the client used by the hierarchy service.
func NewVersionClient(cfg config.PeerConfig) VersionClient {
	return &versionHTTP{
		baseURL: strings.TrimRight(cfg.VersionURL, "/"),
		cli:     newHTTPClient(cfg),
	}
}

func (v *versionHTTP) FetchDocumentsByFolder(ctx context.Context, folderID, token string) ([]model.Document, error) {
	url := fmt.Sprintf("%s/documents/folder/%s", v.baseURL, folderID)
	var docs []model.Document
	if err := doJSON(ctx, v.cli, http.MethodGet, url, token, &docs); err != nil {
		return nil, fmt.Errorf("fetch documents for folder %s: %w", folderID, err)
	}
	return docs, nil
}

func (v *versionHTTP) DeleteDocumentsByFolder(ctx context.Context, folderID, token string) (int64, error) {
	url := fmt.Sprintf("%s/documents/folder/%s", v.baseURL, folderID)
	var result struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	if err := doJSON(ctx, v.cli, http.MethodDelete, url, token, &result); err != nil {
		return 0, fmt.Errorf("delete documents for folder %s: %w", folderID, err)
	}
	return result.DeletedCount, nil
}
