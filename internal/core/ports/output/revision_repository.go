package ports

import (
	"context"

	"github.com/google/uuid"

	"model-config-service/internal/core/domain"
)

type RevisionListFilter struct {
	Origin string
	Limit  int
	Offset int
}

// RevisionRepository persists accepted configuration documents.
type RevisionRepository interface {
	Create(ctx context.Context, revision *domain.Revision) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Revision, error)
	List(ctx context.Context, filter RevisionListFilter) ([]*domain.Revision, int, error)
}
