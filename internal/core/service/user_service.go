package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

// UserService implements the admin-only account management use-cases.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// List returns all accounts, newest first.
func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// UpdateRole changes a user's role. Admins cannot change their own role;
// the guard compares the target id against the acting identity, separate
// from the owner-or-admin rule.
func (s *UserService) UpdateRole(ctx context.Context, actor ports.Identity, id string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	if id == actor.ID {
		return nil, domain.ErrSelfTarget
	}

	user, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Str("role", string(role)).Str("actor_id", actor.ID).Msg("user role updated")
	return user, nil
}

// Delete removes an account. Self-deletion is rejected. Products owned by
// the deleted user are intentionally left in place; their author resolves
// to null in listings.
func (s *UserService) Delete(ctx context.Context, actor ports.Identity, id string) error {
	if id == actor.ID {
		return domain.ErrSelfTarget
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("user deleted")
	return nil
}
