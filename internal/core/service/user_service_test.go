package service

import (
	"context"
	"errors"
	"testing"

	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

var adminActor = ports.Identity{ID: "admin1", Role: domain.RoleAdmin}

func TestUpdateUserRole_Success(t *testing.T) {
	users := newStubUserRepo()
	seedOwner(users, "u1", "alice_seller")
	svc := NewUserService(users, discardLogger)

	updated, err := svc.UpdateRole(context.Background(), adminActor, "u1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	if updated.Role != domain.RoleAdmin {
		t.Fatalf("role = %q, want admin", updated.Role)
	}
}

func TestUpdateUserRole_InvalidRole(t *testing.T) {
	users := newStubUserRepo()
	seedOwner(users, "u1", "alice_seller")
	svc := NewUserService(users, discardLogger)

	_, err := svc.UpdateRole(context.Background(), adminActor, "u1", domain.Role("superadmin"))
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUpdateUserRole_SelfTarget(t *testing.T) {
	users := newStubUserRepo()
	seedOwner(users, "admin1", "admin")
	svc := NewUserService(users, discardLogger)

	_, err := svc.UpdateRole(context.Background(), adminActor, "admin1", domain.RoleUser)
	if !errors.Is(err, domain.ErrSelfTarget) {
		t.Fatalf("expected ErrSelfTarget, got %v", err)
	}
}

func TestUpdateUserRole_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), discardLogger)
	_, err := svc.UpdateRole(context.Background(), adminActor, "missing", domain.RoleUser)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUser_Success(t *testing.T) {
	users := newStubUserRepo()
	seedOwner(users, "u1", "alice_seller")
	svc := NewUserService(users, discardLogger)

	if err := svc.Delete(context.Background(), adminActor, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := users.byID["u1"]; ok {
		t.Fatalf("user still present after delete")
	}
}

func TestDeleteUser_SelfTarget(t *testing.T) {
	users := newStubUserRepo()
	seedOwner(users, "admin1", "admin")
	svc := NewUserService(users, discardLogger)

	err := svc.Delete(context.Background(), adminActor, "admin1")
	if !errors.Is(err, domain.ErrSelfTarget) {
		t.Fatalf("expected ErrSelfTarget, got %v", err)
	}
	if _, ok := users.byID["admin1"]; !ok {
		t.Fatalf("self-deletion must not remove the account")
	}
}

func TestDeleteUser_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), discardLogger)
	err := svc.Delete(context.Background(), adminActor, "missing")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
