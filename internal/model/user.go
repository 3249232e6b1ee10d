package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MaxActiveAccessories caps the number of simultaneously equipped accessories.
const MaxActiveAccessories = 5

// UserStore defines persistence operations for user equip-state.
//
// A user record only references catalog entries; the catalog side owns the
// entities and deleting one must clear every reference pointing at it.
// AddAccessory must keep the MaxActiveAccessories cap under concurrent calls
// for the same user.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	SetCape(ctx context.Context, userID, capeID uuid.UUID) error
	ClearCape(ctx context.Context, userID uuid.UUID) error
	AddAccessory(ctx context.Context, userID, accessoryID uuid.UUID) error
	RemoveAccessory(ctx context.Context, userID, accessoryID uuid.UUID) error
}

// User represents a user's equip-state. The ID is the external account UUID,
// supplied by the caller, never generated here. Accessories preserves
// insertion order and holds no duplicates.
type User struct {
	ID          uuid.UUID
	CapeID      *uuid.UUID
	Accessories []uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
