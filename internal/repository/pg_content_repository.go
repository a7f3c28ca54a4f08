package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/portfolio/backend/internal/model"
)

// PgContentRepository は ContentRepository の PostgreSQL 実装
type PgContentRepository struct {
	pool *pgxpool.Pool
}

// NewPgContentRepository は PgContentRepository を生成する
func NewPgContentRepository(pool *pgxpool.Pool) *PgContentRepository {
	return &PgContentRepository{pool: pool}
}

var _ ContentRepository = (*PgContentRepository)(nil)

// ListSocialLinks はソーシャルリンク一覧を取得する
func (r *PgContentRepository) ListSocialLinks(ctx context.Context) ([]*model.SocialLink, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, platform, url, created_at, updated_at
		 FROM social_links ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*model.SocialLink
	for rows.Next() {
		var l model.SocialLink
		if err := rows.Scan(&l.ID, &l.Platform, &l.URL, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		links = append(links, &l)
	}
	return links, rows.Err()
}

// ListExperiences は職歴一覧を取得する
func (r *PgContentRepository) ListExperiences(ctx context.Context) ([]*model.Experience, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, company, period, description, COALESCE(image_url, ''), created_at, updated_at
		 FROM experiences ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exps []*model.Experience
	for rows.Next() {
		var e model.Experience
		if err := rows.Scan(&e.ID, &e.Title, &e.Company, &e.Period, &e.Description, &e.ImageURL, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		exps = append(exps, &e)
	}
	return exps, rows.Err()
}

// ListProjects はプロジェクト一覧を取得する
func (r *PgContentRepository) ListProjects(ctx context.Context) ([]*model.Project, error) {
	rows, err := r.pool.Query(ctx,
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
		if err := rows.Scan(&p.ID, &p.Title, &p.Role, &p.ShortDescription, &p.Description, &p.ImageURL,
			&p.LiveURL, &p.GitHubURL, &p.Tags, &p.Featured, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		projects = append(projects, &p)
	}
	return projects, rows.Err()
}

// ListAchievements は実績一覧を取得する
func (r *PgContentRepository) ListAchievements(ctx context.Context) ([]*model.Achievement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, organization, year, description, COALESCE(image_url, ''), created_at, updated_at
		 FROM achievements ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []*model.Achievement
	for rows.Next() {
		var a model.Achievement
		if err := rows.Scan(&a.ID, &a.Title, &a.Organization, &a.Year, &a.Description, &a.ImageURL, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		achievements = append(achievements, &a)
	}
	return achievements, rows.Err()
}

// ReplaceAll は全コンテンツを削除してから c を登録する（シード用）
func (r *PgContentRepository) ReplaceAll(ctx context.Context, c *model.Content) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, table := range []string{"projects", "experiences", "achievements", "social_links"} {
			if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		next := insertionClock(time.Now().UTC())

		for _, p := range c.Projects {
			tags := p.Tags
			if tags == nil {
				tags = []string{}
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO projects (title, role, short_description, description, image_url, live_url, github_url, tags, featured, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $10)`,
				p.Title, p.Role, p.ShortDescription, p.Description, p.ImageURL, p.LiveURL, p.GitHubURL, tags, p.Featured, next(),
			); err != nil {
				return fmt.Errorf("insert project %q: %w", p.Title, err)
			}
		}
		for _, e := range c.Experiences {
			if _, err := tx.Exec(ctx,
				`INSERT INTO experiences (title, company, period, description, image_url, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $6)`,
				e.Title, e.Company, e.Period, e.Description, e.ImageURL, next(),
			); err != nil {
				return fmt.Errorf("insert experience %q: %w", e.Title, err)
			}
		}
		for _, a := range c.Achievements {
			if _, err := tx.Exec(ctx,
				`INSERT INTO achievements (title, organization, year, description, image_url, created_at, updated_at)
				 VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $6)`,
				a.Title, a.Organization, a.Year, a.Description, a.ImageURL, next(),
			); err != nil {
				return fmt.Errorf("insert achievement %q: %w", a.Title, err)
			}
		}
		for _, l := range c.SocialLinks {
			if _, err := tx.Exec(ctx,
				`INSERT INTO social_links (platform, url, created_at, updated_at)
				 VALUES ($1, $2, $3, $3)`,
				l.Platform, l.URL, next(),
			); err != nil {
				return fmt.Errorf("insert social link %q: %w", l.Platform, err)
			}
		}
		return nil
	})
}
