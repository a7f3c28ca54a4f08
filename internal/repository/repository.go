package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool は PostgreSQL 接続プールを生成する
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Store bundles the repositories of one backend.
type Store struct {
	Backend  string // "postgres" or "sqlite"
	DB       DB
	Contacts ContactRepository
	Content  ContentRepository

	close func()
}

// Close releases the underlying connections.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open connects to the backend named by databaseURL. postgres:// and
// postgresql:// URLs use PostgreSQL; sqlite:<path> and file:<path> use an
// embedded SQLite database whose schema is created on open.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	if path, ok := SQLitePath(databaseURL); ok {
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &Store{
			Backend:  "sqlite",
			DB:       db,
			Contacts: NewSQLiteContactRepository(db),
			Content:  NewSQLiteContentRepository(db),
			close:    func() { _ = db.Close() },
		}, nil
	}

	pool, err := NewPool(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Store{
		Backend:  "postgres",
		DB:       pool,
		Contacts: NewPgContactRepository(pool),
		Content:  NewPgContentRepository(pool),
		close:    pool.Close,
	}, nil
}

// SQLitePath reports whether databaseURL names a SQLite database and
// returns the file path (or ":memory:").
func SQLitePath(databaseURL string) (string, bool) {
	for _, prefix := range []string{"sqlite://", "sqlite:", "file:"} {
		if strings.HasPrefix(databaseURL, prefix) {
			return strings.TrimPrefix(databaseURL, prefix), true
		}
	}
	return "", false
}

// insertionClock returns successive timestamps one millisecond apart so
// that ORDER BY created_at preserves seed order.
func insertionClock(base time.Time) func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Millisecond)
	}
}
