package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/model"
)

// SQLiteContactRepository is the SQLite implementation of ContactRepository.
type SQLiteContactRepository struct {
	db  *SQLiteDB
	now func() time.Time
}

func NewSQLiteContactRepository(db *SQLiteDB) *SQLiteContactRepository {
	return &SQLiteContactRepository{db: db, now: time.Now}
}

var _ ContactRepository = (*SQLiteContactRepository)(nil)

// Create assigns a random UUID and the current time, then inserts the row.
// sub is only modified when the insert succeeds.
func (r *SQLiteContactRepository) Create(ctx context.Context, sub *model.ContactSubmission) error {
	id := uuid.NewString()
	now := r.now().UTC()
	ts := formatTime(now)

	_, err := r.db.db.ExecContext(ctx,
		`INSERT INTO contacts (id, name, email, message, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, sub.Name, sub.Email, sub.Message, ts, ts,
	)
	if err != nil {
		return err
	}

	sub.ID = id
	sub.CreatedAt = now
	sub.UpdatedAt = now
	return nil
}

// get loads a submission by id. Returns errNotFound when absent.
func (r *SQLiteContactRepository) get(ctx context.Context, id string) (*model.ContactSubmission, error) {
	var sub model.ContactSubmission
	var created, updated string
	err := r.db.db.QueryRowContext(ctx,
		`SELECT id, name, email, message, created_at, updated_at FROM contacts WHERE id = ?`, id,
	).Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Message, &created, &updated)
	if err != nil {
		return nil, notFound(err)
	}
	if sub.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if sub.UpdatedAt, err = parseTime(updated); err != nil {
		return nil, err
	}
	return &sub, nil
}
