package model

import (
	"context"

	"github.com/google/uuid"
)

// ProfileProvider answers whether an external account exists for a UUID.
// Implementations must not report transient lookup failures as "does not
// exist"; those surface as errors.
type ProfileProvider interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
