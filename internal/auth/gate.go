// Package auth decides whether an authenticated caller may perform a
// mutation. Authentication itself happens earlier, in the API middleware.
package auth

import (
	"github.com/google/uuid"

	"github.com/cosmostic/cosmostic-server/internal/model"
)

// Gate applies the self-match and admin-match policies.
type Gate struct {
	admins map[uuid.UUID]struct{}
}

// NewGate creates a Gate with the configured admin identity set. An empty
// set is valid; no caller will ever pass RequireAdmin then.
func NewGate(admins []uuid.UUID) *Gate {
	set := make(map[uuid.UUID]struct{}, len(admins))
	for _, id := range admins {
		set[id] = struct{}{}
	}
	return &Gate{admins: set}
}

// RequireSelf permits a mutation targeting a user only when the caller is
// that user.
func (g *Gate) RequireSelf(callerID, targetID uuid.UUID) error {
	if callerID == uuid.Nil {
		return model.ErrUnauthenticated
	}
	if callerID != targetID {
		return model.ErrForbidden
	}
	return nil
}

// RequireAdmin permits a catalog mutation only for members of the admin set.
func (g *Gate) RequireAdmin(callerID uuid.UUID) error {
	if callerID == uuid.Nil {
		return model.ErrUnauthenticated
	}
	if _, ok := g.admins[callerID]; !ok {
		return model.ErrForbidden
	}
	return nil
}
