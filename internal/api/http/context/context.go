// Package context carries the authenticated caller identity on request
// contexts.
package context

import (
	"context"

	"github.com/google/uuid"
)

type callerIDKeyType int

const callerIDKey callerIDKeyType = iota

// Manager stores and retrieves the caller identity using a private typed key
// so no other package can collide with it.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetCallerIDToContext returns a child context carrying the caller identity.
func (m *Manager) SetCallerIDToContext(ctx context.Context, callerID uuid.UUID) context.Context {
	return context.WithValue(ctx, callerIDKey, callerID)
}

// GetCallerIDFromContext retrieves the caller identity set by the
// authentication middleware. Returns false when the request never passed
// authentication.
func (m *Manager) GetCallerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	callerID, ok := ctx.Value(callerIDKey).(uuid.UUID)
	if !ok || callerID == uuid.Nil {
		return uuid.Nil, false
	}
	return callerID, true
}
