package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// UserRepository defines the Record Store operations for users. The user
// collection is seeded at process start and never mutated, so there are no
// write operations. Email lookup is a case-sensitive exact match.
type UserRepository interface {
	List(ctx context.Context) ([]domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
