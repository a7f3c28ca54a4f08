package model

import "time"

// Project is a portfolio project card.
type Project struct {
	ID               string    `json:"id" yaml:"-"`
	Title            string    `json:"title" yaml:"title" validate:"required"`
	Role             string    `json:"role" yaml:"role" validate:"required"`
	ShortDescription string    `json:"shortDescription" yaml:"shortDescription" validate:"required"`
	Description      string    `json:"description" yaml:"description" validate:"required"`
	ImageURL         string    `json:"imageUrl" yaml:"imageUrl" validate:"required"`
	LiveURL          string    `json:"liveUrl,omitempty" yaml:"liveUrl" validate:"omitempty,url"`
	GitHubURL        string    `json:"githubUrl,omitempty" yaml:"githubUrl" validate:"omitempty,url"`
	Tags             []string  `json:"tags" yaml:"tags"`
	Featured         bool      `json:"featured" yaml:"featured"`
	CreatedAt        time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt        time.Time `json:"updatedAt" yaml:"-"`
}

// Experience is a work history entry.
type Experience struct {
	ID          string    `json:"id" yaml:"-"`
	Title       string    `json:"title" yaml:"title" validate:"required"`
	Company     string    `json:"company" yaml:"company" validate:"required"`
	Period      string    `json:"period" yaml:"period" validate:"required"` // free text, e.g. "2024 - Present"
	Description string    `json:"description" yaml:"description" validate:"required"`
	ImageURL    string    `json:"imageUrl,omitempty" yaml:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"-"`
}

// Achievement is an award or competition result.
type Achievement struct {
	ID           string    `json:"id" yaml:"-"`
	Title        string    `json:"title" yaml:"title" validate:"required"`
	Organization string    `json:"organization" yaml:"organization" validate:"required"`
	Year         string    `json:"year" yaml:"year" validate:"required"`
	Description  string    `json:"description" yaml:"description" validate:"required"`
	ImageURL     string    `json:"imageUrl,omitempty" yaml:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt    time.Time `json:"updatedAt" yaml:"-"`
}

type SocialLink struct {
	ID        string    `json:"id" yaml:"-"`
	Platform  string    `json:"platform" yaml:"platform" validate:"required"`
	URL       string    `json:"url" yaml:"url" validate:"required,url"`
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"-"`
}

// Content is the full set of seeded site content.
type Content struct {
	Projects     []Project     `yaml:"projects" validate:"dive"`
	Experiences  []Experience  `yaml:"experiences" validate:"dive"`
	Achievements []Achievement `yaml:"achievements" validate:"dive"`
	SocialLinks  []SocialLink  `yaml:"socialLinks" validate:"dive"`
}
