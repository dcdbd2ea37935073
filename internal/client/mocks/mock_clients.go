package mocks

import (
	"context"

	"fms/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockHierarchyClient struct {
	mock.Mock
}

func (m *MockHierarchyClient) FetchFolderParents(ctx context.Context, folderID, token string) ([]model.FolderRef, error) {
	args := m.Called(ctx, folderID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FolderRef), args.Error(1)
}

type MockVersionClient struct {
	mock.Mock
}

func (m *MockVersionClient) FetchDocumentsByFolder(ctx context.Context, folderID, token string) ([]model.Document, error) {
	args := m.Called(ctx, folderID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockVersionClient) DeleteDocumentsByFolder(ctx context.Context, folderID, token string) (int64, error) {
	args := m.Called(ctx, folderID, token)
	return args.Get(0).(int64), args.Error(1)
}
