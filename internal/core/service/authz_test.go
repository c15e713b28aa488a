package service

import (
	"testing"

	"github.com/markethub/marketplace-api/internal/core/domain"
	"github.com/markethub/marketplace-api/internal/core/ports"
)

func TestCanMutate(t *testing.T) {
	cases := []struct {
		name    string
		actor   ports.Identity
		ownerID string
		want    bool
	}{
		{"owner may mutate", ports.Identity{ID: "u1", Role: domain.RoleUser}, "u1", true},
		{"admin may mutate any", ports.Identity{ID: "admin1", Role: domain.RoleAdmin}, "u1", true},
		{"stranger may not", ports.Identity{ID: "u2", Role: domain.RoleUser}, "u1", false},
		{"admin editing own resource", ports.Identity{ID: "admin1", Role: domain.RoleAdmin}, "admin1", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanMutate(tc.actor, tc.ownerID); got != tc.want {
				t.Fatalf("CanMutate = %v, want %v", got, tc.want)
			}
		})
	}
}
