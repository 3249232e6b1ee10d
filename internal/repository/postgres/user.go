package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cosmostic/cosmostic-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `SELECT id, cape_id, created_at, updated_at FROM users WHERE id = $1`

	var user model.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.CapeID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, err
	}

	accessories, err := r.listAccessories(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	user.Accessories = accessories

	return user, nil
}

// Create inserts a user record together with its initial references. Used by
// the lazy first-equip path only.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.User{}, err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO users (id, cape_id)
			  VALUES ($1, $2)
			  RETURNING id, cape_id, created_at, updated_at`

	var saved model.User
	err = tx.QueryRow(ctx, query, user.ID, user.CapeID).Scan(
		&saved.ID, &saved.CapeID, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	for position, accessoryID := range user.Accessories {
		_, err := tx.Exec(ctx,
			`INSERT INTO user_accessories (user_id, accessory_id, position) VALUES ($1, $2, $3)`,
			user.ID, accessoryID, position,
		)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to attach accessory: %w", err)
		}
	}
	saved.Accessories = user.Accessories

	if err := tx.Commit(ctx); err != nil {
		return model.User{}, err
	}

	return saved, nil
}

func (r *UserRepository) SetCape(ctx context.Context, userID, capeID uuid.UUID) error {
	const query = `UPDATE users SET cape_id = $2, updated_at = now() WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, userID, capeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *UserRepository) ClearCape(ctx context.Context, userID uuid.UUID) error {
	const query = `UPDATE users SET cape_id = NULL, updated_at = now() WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// AddAccessory appends an accessory reference to the user's active list.
// The user row is locked for the duration of the check-and-append so the
// MaxActiveAccessories cap holds under concurrent adds for the same user.
func (r *UserRepository) AddAccessory(ctx context.Context, userID, accessoryID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var lockedID uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrNotFound
		}
		return err
	}

	var count int
	var active bool
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(bool_or(accessory_id = $2), false)
		 FROM user_accessories WHERE user_id = $1`,
		userID, accessoryID,
	).Scan(&count, &active)
	if err != nil {
		return err
	}

	if active {
		return model.ErrAlreadyActive
	}
	if count >= model.MaxActiveAccessories {
		return model.ErrLimitExceeded
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO user_accessories (user_id, accessory_id, position)
		 SELECT $1, $2, COALESCE(MAX(position) + 1, 0) FROM user_accessories WHERE user_id = $1`,
		userID, accessoryID,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `UPDATE users SET updated_at = now() WHERE id = $1`, userID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) RemoveAccessory(ctx context.Context, userID, accessoryID uuid.UUID) error {
	const query = `DELETE FROM user_accessories WHERE user_id = $1 AND accessory_id = $2`

	cmd, err := r.db.Exec(ctx, query, userID, accessoryID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotActive
	}
	return nil
}

func (r *UserRepository) listAccessories(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT accessory_id FROM user_accessories WHERE user_id = $1 ORDER BY position ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
