package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CapeStore defines persistence operations for capes.
type CapeStore interface {
	List(ctx context.Context) ([]uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (Cape, error)
	Create(ctx context.Context, cape Cape) (Cape, error)
	Update(ctx context.Context, id uuid.UUID, patch CapePatch) (Cape, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Cape represents a cape catalog entry. Texture and preview bytes live in
// object storage, keyed by the cape ID; only metadata is stored here.
type Cape struct {
	ID        uuid.UUID
	Name      string
	Author    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CapePatch carries a partial cape update. Nil fields keep the stored value.
type CapePatch struct {
	Name   *string
	Author *string
}

// IsEmpty reports whether the patch changes nothing.
func (p CapePatch) IsEmpty() bool {
	return p.Name == nil && p.Author == nil
}
