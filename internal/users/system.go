package users

import (
	"context"

	"github.com/edustack/lessonlab/pkg/pagination"
	"github.com/google/uuid"
)

// System defines the user management operations.
type System interface {
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[User], error)
	Find(ctx context.Context, id uuid.UUID) (*User, error)
	Create(ctx context.Context, cmd CreateCommand) (*User, error)
}
