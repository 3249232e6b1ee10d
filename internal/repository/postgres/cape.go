package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cosmostic/cosmostic-server/internal/model"
)

var _ model.CapeStore = (*CapeRepository)(nil)

type CapeRepository struct {
	db *Connection
}

func NewCapeRepository(db *Connection) *CapeRepository {
	return &CapeRepository{
		db: db,
	}
}

// uniqueViolation is the SQLSTATE for a unique-index violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *CapeRepository) List(ctx context.Context) ([]uuid.UUID, error) {
	query := `SELECT id FROM capes ORDER BY created_at ASC`

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

func (r *CapeRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Cape, error) {
	query := `SELECT id, name, author, created_at, updated_at FROM capes WHERE id = $1`

	var cape model.Cape
	err := r.db.QueryRow(ctx, query, id).Scan(
		&cape.ID, &cape.Name, &cape.Author, &cape.CreatedAt, &cape.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Cape{}, model.ErrNotFound
		}
		return model.Cape{}, err
	}

	return cape, nil
}

func (r *CapeRepository) Create(ctx context.Context, cape model.Cape) (model.Cape, error) {
	query := `INSERT INTO capes (id, name, author)
			  VALUES ($1, $2, $3)
			  RETURNING id, name, author, created_at, updated_at`

	var saved model.Cape
	err := r.db.QueryRow(ctx, query, cape.ID, cape.Name, cape.Author).Scan(
		&saved.ID, &saved.Name, &saved.Author, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Cape{}, model.ErrNameConflict
		}
		return model.Cape{}, err
	}

	return saved, nil
}

func (r *CapeRepository) Update(ctx context.Context, id uuid.UUID, patch model.CapePatch) (model.Cape, error) {
	query := `UPDATE capes
			  SET name = COALESCE($2, name), author = COALESCE($3, author), updated_at = now()
			  WHERE id = $1
			  RETURNING id, name, author, created_at, updated_at`

	var saved model.Cape
	err := r.db.QueryRow(ctx, query, id, patch.Name, patch.Author).Scan(
		&saved.ID, &saved.Name, &saved.Author, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Cape{}, model.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.Cape{}, model.ErrNameConflict
		}
		return model.Cape{}, err
	}

	return saved, nil
}

// Delete removes the cape. User references are cleared in the same statement
// through the ON DELETE SET NULL action, so no reader can observe a user
// still pointing at a deleted cape.
func (r *CapeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM capes WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
