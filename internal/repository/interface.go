package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository persists contact form submissions. Rows are only ever
// created; the pipeline never updates or deletes them.
type ContactRepository interface {
	// Create inserts sub and fills in ID, CreatedAt and UpdatedAt.
	Create(ctx context.Context, sub *model.ContactSubmission) error
}

// ContentRepository serves the read-only site sections.
// List methods return every row in insertion order.
type ContentRepository interface {
	ListSocialLinks(ctx context.Context) ([]*model.SocialLink, error)
	ListExperiences(ctx context.Context) ([]*model.Experience, error)
	ListProjects(ctx context.Context) ([]*model.Project, error)
	ListAchievements(ctx context.Context) ([]*model.Achievement, error)

	// ReplaceAll deletes all content rows and inserts c in one transaction.
	ReplaceAll(ctx context.Context, c *model.Content) error
}
