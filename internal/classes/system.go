package classes

import (
	"context"

	"github.com/edustack/lessonlab/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the class management operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Class], error)
	Find(ctx context.Context, id uuid.UUID) (*Class, error)
	Create(ctx context.Context, cmd CreateCommand) (*Class, error)
}
