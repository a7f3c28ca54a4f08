package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/model"
)

// SQLiteContentRepository is the SQLite implementation of ContentRepository.
// Project tags are stored as a JSON array in a TEXT column.
type SQLiteContentRepository struct {
	db *SQLiteDB
}

func NewSQLiteContentRepository(db *SQLiteDB) *SQLiteContentRepository {
	return &SQLiteContentRepository{db: db}
}

var _ ContentRepository = (*SQLiteContentRepository)(nil)

func (r *SQLiteContentRepository) ListSocialLinks(ctx context.Context) ([]*model.SocialLink, error) {
	rows, err := r.db.db.QueryContext(ctx,
		`SELECT id, platform, url, created_at, updated_at
		 FROM social_links ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*model.SocialLink
	for rows.Next() {
		var l model.SocialLink
		var created, updated string
		if err := rows.Scan(&l.ID, &l.Platform, &l.URL, &created, &updated); err != nil {
			return nil, err
		}
		if err := scanTimes(created, updated, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		links = append(links, &l)
	}
	return links, rows.Err()
}

func (r *SQLiteContentRepository) ListExperiences(ctx context.Context) ([]*model.Experience, error) {
	rows, err := r.db.db.QueryContext(ctx,
		`SELECT id, title, company, period, description, COALESCE(image_url, ''), created_at, updated_at
		 FROM experiences ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exps []*model.Experience
	for rows.Next() {
		var e model.Experience
		var created, updated string
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.Period, &e.Description, &e.ImageURL, &created, &updated); err != nil {
			return nil, err
		}
		if err := scanTimes(created, updated, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		exps = append(exps, &e)
	}
	return exps, rows.Err()
}

func (r *SQLiteContentRepository) ListProjects(ctx context.Context) ([]*model.Project, error) {
	rows, err := r.db.db.QueryContext(ctx,
		`SELECT id, title, role, short_description, description, image_url,
		        COALESCE(live_url, ''), COALESCE(github_url, ''), tags, featured, created_at, updated_at
		 FROM projects ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		var p model.Project
		var tags, created, updated string
		if err := rows.Scan(&p.ID, &p.Title, &p.Role, &p.ShortDescription, &p.Description, &p.ImageURL,
			&p.LiveURL, &p.GitHubURL, &tags, &p.Featured, &created, &updated); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			return nil, fmt.Errorf("project %s: decode tags: %w", p.ID, err)
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		if err := scanTimes(created, updated, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

func (r *SQLiteContentRepository) ListAchievements(ctx context.Context) ([]*model.Achievement, error) {
	rows, err := r.db.db.QueryContext(ctx,
		`SELECT id, title, organization, year, description, COALESCE(image_url, ''), created_at, updated_at
		 FROM achievements ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []*model.Achievement
	for rows.Next() {
		var a model.Achievement
		var created, updated string
		if err := rows.Scan(&a.ID, &a.Title, &a.Organization, &a.Year, &a.Description, &a.ImageURL, &created, &updated); err != nil {
			return nil, err
		}
		if err := scanTimes(created, updated, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		achievements = append(achievements, &a)
	}
	return achievements, rows.Err()
}

func (r *SQLiteContentRepository) ReplaceAll(ctx context.Context, c *model.Content) (err error) {
	tx, err := r.db.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"projects", "experiences", "achievements", "social_links"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	next := insertionClock(time.Now().UTC())

	for _, p := range c.Projects {
		tags := p.Tags
		if tags == nil {
			tags = []string{}
		}
		encoded, mErr := json.Marshal(tags)
		if mErr != nil {
			return mErr
		}
		ts := formatTime(next())
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO projects (id, title, role, short_description, description, image_url, live_url, github_url, tags, featured, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), p.Title, p.Role, p.ShortDescription, p.Description, p.ImageURL,
			nullString(p.LiveURL), nullString(p.GitHubURL), string(encoded), boolInt(p.Featured), ts, ts,
		); err != nil {
			return fmt.Errorf("insert project %q: %w", p.Title, err)
		}
	}
	for _, e := range c.Experiences {
		ts := formatTime(next())
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO experiences (id, title, company, period, description, image_url, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), e.Title, e.Company, e.Period, e.Description, nullString(e.ImageURL), ts, ts,
		); err != nil {
			return fmt.Errorf("insert experience %q: %w", e.Title, err)
		}
	}
	for _, a := range c.Achievements {
		ts := formatTime(next())
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO achievements (id, title, organization, year, description, image_url, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), a.Title, a.Organization, a.Year, a.Description, nullString(a.ImageURL), ts, ts,
		); err != nil {
			return fmt.Errorf("insert achievement %q: %w", a.Title, err)
		}
	}
	for _, l := range c.SocialLinks {
		ts := formatTime(next())
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO social_links (id, platform, url, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			uuid.NewString(), l.Platform, l.URL, ts, ts,
		); err != nil {
			return fmt.Errorf("insert social link %q: %w", l.Platform, err)
		}
	}

	return tx.Commit()
}

func scanTimes(created, updated string, createdAt, updatedAt *time.Time) error {
	var err error
	if *createdAt, err = parseTime(created); err != nil {
		return err
	}
	*updatedAt, err = parseTime(updated)
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
