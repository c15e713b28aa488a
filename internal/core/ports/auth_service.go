package ports

import (
	"context"

	"github.com/markethub/marketplace-api/internal/core/domain"
)

// RegisterInput carries a new account request. Fields arrive pre-validated
// by the transport layer (length, syntax); the service enforces uniqueness.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService implements account registration, login and profile lookup.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}
