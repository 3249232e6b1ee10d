package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/cosmostic/cosmostic-server/internal/model"
)

var _ model.AccessoryStore = (*AccessoryRepository)(nil)

type AccessoryRepository struct {
	db *Connection
}

func NewAccessoryRepository(db *Connection) *AccessoryRepository {
	return &AccessoryRepository{
		db: db,
	}
}

func (r *AccessoryRepository) List(ctx context.Context) ([]uuid.UUID, error) {
	query := `SELECT id FROM accessories ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
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

func (r *AccessoryRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Accessory, error) {
	query := `SELECT id, name, author, category, model, has_texture, created_at, updated_at
			  FROM accessories WHERE id = $1`

	var accessory model.Accessory
	err := r.db.QueryRow(ctx, query, id).Scan(
		&accessory.ID, &accessory.Name, &accessory.Author, &accessory.Category,
		&accessory.Model, &accessory.HasTexture, &accessory.CreatedAt, &accessory.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Accessory{}, model.ErrNotFound
		}
		return model.Accessory{}, err
	}

	return accessory, nil
}

func (r *AccessoryRepository) Create(ctx context.Context, accessory model.Accessory) (model.Accessory, error) {
	query := `INSERT INTO accessories (id, name, author, category, model, has_texture)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, name, author, category, model, has_texture, created_at, updated_at`

	var saved model.Accessory
	err := r.db.QueryRow(ctx, query,
		accessory.ID, accessory.Name, accessory.Author, string(accessory.Category),
		[]byte(accessory.Model), accessory.HasTexture,
	).Scan(
		&saved.ID, &saved.Name, &saved.Author, &saved.Category,
		&saved.Model, &saved.HasTexture, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Accessory{}, model.ErrNameConflict
		}
		return model.Accessory{}, err
	}

	return saved, nil
}

func (r *AccessoryRepository) Update(ctx context.Context, id uuid.UUID, patch model.AccessoryPatch) (model.Accessory, error) {
	query := `UPDATE accessories
			  SET name = COALESCE($2, name),
			      author = COALESCE($3, author),
			      category = COALESCE($4, category),
			      model = COALESCE($5::jsonb, model),
			      has_texture = COALESCE($6, has_texture),
			      updated_at = now()
			  WHERE id = $1
			  RETURNING id, name, author, category, model, has_texture, created_at, updated_at`

	var category *string
	if patch.Category != nil {
		s := string(*patch.Category)
		category = &s
	}
	var modelDoc []byte
	if patch.Model != nil {
		modelDoc = []byte(patch.Model)
	}

	var saved model.Accessory
	err := r.db.QueryRow(ctx, query, id, patch.Name, patch.Author, category, modelDoc, patch.HasTexture).Scan(
		&saved.ID, &saved.Name, &saved.Author, &saved.Category,
		&saved.Model, &saved.HasTexture, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Accessory{}, model.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.Accessory{}, model.ErrNameConflict
		}
		return model.Accessory{}, err
	}

	return saved, nil
}

// Delete removes the accessory. Rows in user_accessories referencing it go
// away in the same statement through ON DELETE CASCADE.
func (r *AccessoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM accessories WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
