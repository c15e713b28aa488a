package ports

import (
	"context"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

// UserService defines the admin-only account management use-cases.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	// UpdateRole rejects invalid roles and self-targeting with
	// domain.ErrInvalidRole / domain.ErrSelfTarget respectively.
	UpdateRole(ctx context.Context, actor Identity, id string, role domain.Role) (*domain.User, error)
	// Delete rejects self-targeting. Owned products are left in place.
	Delete(ctx context.Context, actor Identity, id string) error
}
