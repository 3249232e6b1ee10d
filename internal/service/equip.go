package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cosmostic/cosmostic-server/internal/logger"
	"github.com/cosmostic/cosmostic-server/internal/model"
)

// Equip implements user equip-state operations. A user record is created
// lazily on the first equip action, and only after the external account is
// confirmed to exist.
type Equip struct {
	userStore      model.UserStore
	capeStore      model.CapeStore
	accessoryStore model.AccessoryStore
	profiles       model.ProfileProvider
	logger         *logger.Logger
}

func NewEquip(
	userStore model.UserStore,
	capeStore model.CapeStore,
	accessoryStore model.AccessoryStore,
	profiles model.ProfileProvider,
	logger *logger.Logger,
) *Equip {
	return &Equip{
		userStore:      userStore,
		capeStore:      capeStore,
		accessoryStore: accessoryStore,
		profiles:       profiles,
		logger:         logger,
	}
}

// GetActiveCape returns the user's active cape reference.
func (s *Equip) GetActiveCape(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}
	if user.CapeID == nil {
		return uuid.Nil, model.ErrNoActiveCape
	}
	return *user.CapeID, nil
}

// SetActiveCape equips a cape. Returns created=true when the call brought
// the user record into existence.
func (s *Equip) SetActiveCape(ctx context.Context, userID, capeID uuid.UUID) (created bool, err error) {
	if _, err := s.capeStore.GetByID(ctx, capeID); err != nil {
		return false, err
	}

	_, err = s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		if err := s.checkAccountExists(ctx, userID); err != nil {
			return false, err
		}
		if _, err := s.userStore.Create(ctx, model.User{ID: userID, CapeID: &capeID}); err != nil {
			return false, fmt.Errorf("failed to create user: %w", err)
		}
		s.logger.Info("user equipped first cape", "user_id", userID, "cape_id", capeID)
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.userStore.SetCape(ctx, userID, capeID); err != nil {
		return false, fmt.Errorf("failed to set cape: %w", err)
	}

	s.logger.Info("user updated active cape", "user_id", userID, "cape_id", capeID)
	return false, nil
}

// ClearActiveCape removes the user's active cape.
func (s *Equip) ClearActiveCape(ctx context.Context, userID uuid.UUID) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.CapeID == nil {
		return model.ErrNoActiveCape
	}

	if err := s.userStore.ClearCape(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cape: %w", err)
	}

	s.logger.Info("user removed active cape", "user_id", userID)
	return nil
}

// ListActiveAccessories returns the user's active accessory references in
// insertion order.
func (s *Equip) ListActiveAccessories(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Accessories) == 0 {
		return nil, model.ErrNoActiveAccessories
	}
	return user.Accessories, nil
}

// AddActiveAccessory appends an accessory to the user's active list.
// Returns created=true when the call brought the user record into existence.
func (s *Equip) AddActiveAccessory(ctx context.Context, userID, accessoryID uuid.UUID) (created bool, err error) {
	if _, err := s.accessoryStore.GetByID(ctx, accessoryID); err != nil {
		return false, err
	}

	_, err = s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		if err := s.checkAccountExists(ctx, userID); err != nil {
			return false, err
		}
		if _, err := s.userStore.Create(ctx, model.User{ID: userID, Accessories: []uuid.UUID{accessoryID}}); err != nil {
			return false, fmt.Errorf("failed to create user: %w", err)
		}
		s.logger.Info("user equipped first accessory", "user_id", userID, "accessory_id", accessoryID)
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.userStore.AddAccessory(ctx, userID, accessoryID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, model.ErrUserNotFound
		}
		return false, err
	}

	s.logger.Info("user added active accessory", "user_id", userID, "accessory_id", accessoryID)
	return false, nil
}

// RemoveActiveAccessory removes an accessory from the user's active list,
// preserving the order of the remaining entries.
func (s *Equip) RemoveActiveAccessory(ctx context.Context, userID, accessoryID uuid.UUID) error {
	if _, err := s.getUser(ctx, userID); err != nil {
		return err
	}

	if err := s.userStore.RemoveAccessory(ctx, userID, accessoryID); err != nil {
		return err
	}

	s.logger.Info("user removed active accessory", "user_id", userID, "accessory_id", accessoryID)
	return nil
}

func (s *Equip) getUser(ctx context.Context, userID uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, model.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *Equip) checkAccountExists(ctx context.Context, userID uuid.UUID) error {
	exists, err := s.profiles.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to look up account: %w", err)
	}
	if !exists {
		return model.ErrAccountNotFound
	}
	return nil
}
