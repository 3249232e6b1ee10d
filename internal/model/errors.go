package model

import "errors"

// Sentinel errors shared across services and repositories. Handlers translate
// these into boundary status codes in a single place.
var (
	// ErrNotFound is returned when a catalog entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNameConflict is returned when a cape or accessory name is already taken.
	ErrNameConflict = errors.New("name already used")
	// ErrInvalidInput is returned for malformed identifiers, strings or payloads.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidCategory is returned when an accessory category is outside the fixed set.
	ErrInvalidCategory = errors.New("category does not exist")
	// ErrInvalidModel is returned when an accessory model document fails schema checks.
	ErrInvalidModel = errors.New("invalid accessory model")
	// ErrUnauthenticated is returned when no valid caller identity is present.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when the caller identity fails an authorization policy.
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound is returned when no equip-state record exists for a user.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountNotFound is returned when the external account lookup finds nothing.
	ErrAccountNotFound = errors.New("account does not exist")
	// ErrNoActiveCape is returned when a user record exists but has no active cape.
	ErrNoActiveCape = errors.New("no active cape")
	// ErrNoActiveAccessories is returned when a user record exists but has no active accessories.
	ErrNoActiveAccessories = errors.New("no active accessories")
	// ErrAlreadyActive is returned when an accessory is already in the user's active list.
	ErrAlreadyActive = errors.New("accessory already active")
	// ErrLimitExceeded is returned when the active accessory cap is reached.
	ErrLimitExceeded = errors.New("too many accessories")
	// ErrNotActive is returned when removing an accessory that is not in the list.
	ErrNotActive = errors.New("accessory not active")
	// ErrNoTexture is returned when fetching the texture of an accessory that has none.
	ErrNoTexture = errors.New("accessory doesn't have texture")
	// ErrStoreUnavailable is returned when external storage failed or timed out.
	ErrStoreUnavailable = errors.New("store unavailable")
)
