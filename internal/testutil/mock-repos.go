package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"model-config-service/internal/core/domain"
	ports "model-config-service/internal/core/ports/output"
)

// MockRevisionRepo is a mock of RevisionRepository.
type MockRevisionRepo struct {
	mock.Mock
}

func (m *MockRevisionRepo) Create(ctx context.Context, revision *domain.Revision) error {
	args := m.Called(ctx, revision)
	return args.Error(0)
}

func (m *MockRevisionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Revision, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Revision), args.Error(1)
}

func (m *MockRevisionRepo) List(ctx context.Context, filter ports.RevisionListFilter) ([]*domain.Revision, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.Revision), args.Int(1), args.Error(2)
}

// MockConfigSource is a mock of ConfigSource.
type MockConfigSource struct {
	mock.Mock
}

func (m *MockConfigSource) Name() string {
	return m.Called().String(0)
}

func (m *MockConfigSource) Fetch(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
