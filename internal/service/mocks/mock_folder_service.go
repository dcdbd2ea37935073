package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fms/internal/model"
	"fms/internal/service"
)

type MockFolderService struct {
	mock.Mock
}

func (m *MockFolderService) Create(ctx context.Context, ownerID string, in service.CreateFolderInput) (*model.Folder, error) {
	args := m.Called(ctx, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockFolderService) Update(ctx context.Context, folderID, ownerID string, in service.CreateFolderInput) (*model.Folder, error) {
	args := m.Called(ctx, folderID, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Folder), args.Error(1)
}

func (m *MockFolderService) Delete(ctx context.Context, folderID, ownerID, token string) error {
	args := m.Called(ctx, folderID, ownerID, token)
	return args.Error(0)
}

func (m *MockFolderService) Roots(ctx context.Context, ownerID string) ([]model.Folder, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Folder), args.Error(1)
}

func (m *MockFolderService) Content(ctx context.Context, ownerID, folderID, token string) (*service.FolderContent, error) {
	args := m.Called(ctx, ownerID, folderID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.FolderContent), args.Error(1)
}

func (m *MockFolderService) Parents(ctx context.Context, folderID string) ([]model.FolderRef, error) {
	args := m.Called(ctx, folderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.FolderRef), args.Error(1)
}
