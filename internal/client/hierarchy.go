package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"fms/internal/config"
	"fms/internal/model"
)

// hierarchyHTTP calls the hierarchy service over HTTP.
type hierarchyHTTP struct {
	baseURL string
	cli     *http.Client
}

// NewHierarchyClient builds the client used by the version service.
func NewHierarchyClient(cfg config.PeerConfig) HierarchyClient {
	return &hierarchyHTTP{
		baseURL: strings.TrimRight(cfg.HierarchyURL, "/"),
		cli:     newHTTPClient(cfg),
	}
}

func (h *hierarchyHTTP) FetchFolderParents(ctx context.Context, folderID, token string) ([]model.FolderRef, error) {
	url := fmt.Sprintf("%s/folders/%s/parents", h.baseURL, folderID)
	var parents []model.FolderRef
	if err := doJSON(ctx, h.cli, http.MethodGet, url, token, &parents); err != nil {
		return nil, fmt.Errorf("fetch folder parents: %w", err)
	}
	return parents, nil
}
