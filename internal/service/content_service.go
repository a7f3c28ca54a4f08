package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// ContentService serves the read-only site sections.
type ContentService interface {
	SocialLinks(ctx context.Context) ([]*model.SocialLink, error)
	Experiences(ctx context.Context) ([]*model.Experience, error)
	Projects(ctx context.Context) ([]*model.Project, error)
	Achievements(ctx context.Context) ([]*model.Achievement, error)
}

type contentServiceImpl struct {
	repo repository.ContentRepository
}

// NewContentService creates a ContentService backed by the given repository.
func NewContentService(repo repository.ContentRepository) ContentService {
	return &contentServiceImpl{repo: repo}
}

func (s *contentServiceImpl) SocialLinks(ctx context.Context) ([]*model.SocialLink, error) {
	return s.repo.ListSocialLinks(ctx)
}

func (s *contentServiceImpl) Experiences(ctx context.Context) ([]*model.Experience, error) {
	return s.repo.ListExperiences(ctx)
}

func (s *contentServiceImpl) Projects(ctx context.Context) ([]*model.Project, error) {
	return s.repo.ListProjects(ctx)
}

func (s *contentServiceImpl) Achievements(ctx context.Context) ([]*model.Achievement, error) {
	return s.repo.ListAchievements(ctx)
}
