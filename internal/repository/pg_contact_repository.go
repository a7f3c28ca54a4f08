package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/portfolio/backend/internal/model"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Create inserts a new contacts row and populates sub.ID and timestamps
// from the database RETURNING clause.
func (r *PgContactRepository) Create(ctx context.Context, sub *model.ContactSubmission) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO contacts (name, email, message)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		sub.Name, sub.Email, sub.Message,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

// get loads a submission by id. Returns errNotFound when absent.
func (r *PgContactRepository) get(ctx context.Context, id string) (*model.ContactSubmission, error) {
	var sub model.ContactSubmission
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, message, created_at, updated_at FROM contacts WHERE id = $1`, id,
	).Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Message, &sub.CreatedAt, &sub.UpdatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &sub, nil
}
