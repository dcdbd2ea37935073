package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fms/internal/model"
	"fms/internal/service"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Create(ctx context.Context, ownerID string, in service.CreateDocumentInput, blob *service.Blob, token string) (*model.Document, error) {
	args := m.Called(ctx, ownerID, in, blob, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) AddVersion(ctx context.Context, documentID, ownerID, versionLabel string, blob *service.Blob, token string) (*model.Version, error) {
	args := m.Called(ctx, documentID, ownerID, versionLabel, blob, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Version), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, documentID string) (*service.DocumentView, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentView), args.Error(1)
}

func (m *MockDocumentService) Versions(ctx context.Context, documentID string) ([]model.Version, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Version), args.Error(1)
}

func (m *MockDocumentService) Delete(ctx context.Context, documentID, ownerID string) error {
	args := m.Called(ctx, documentID, ownerID)
	return args.Error(0)
}

func (m *MockDocumentService) Filter(ctx context.Context, searchTerm, ownerID, token string) ([]service.DocumentSummary, error) {
	args := m.Called(ctx, searchTerm, ownerID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.DocumentSummary), args.Error(1)
}

func (m *MockDocumentService) Count(ctx context.Context, ownerID string) (*service.DocumentCount, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentCount), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, documentID, ownerID string, in service.UpdateDocumentInput) (*model.Document, error) {
	args := m.Called(ctx, documentID, ownerID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) ByFolder(ctx context.Context, folderID, ownerID string) ([]model.Document, error) {
	args := m.Called(ctx, folderID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) DeleteByFolder(ctx context.Context, folderID, ownerID string) (*service.DeleteByFolderResult, error) {
	args := m.Called(ctx, folderID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DeleteByFolderResult), args.Error(1)
}
