package ports

import (
	"context"

	"github.com/taskboard/taskboard-api/internal/core/domain"
)

// AuthService validates credentials and mints session tokens. The token is
// opaque to clients; the default endpoint contract issues it but never checks
// it on subsequent requests.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
