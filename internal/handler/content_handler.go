package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// ContentHandler serves the read-only site sections as JSON arrays.
type ContentHandler struct {
	contentService service.ContentService
}

func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// SocialLinks handles GET /api/social-links.
func (h *ContentHandler) SocialLinks(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "social links", h.contentService.SocialLinks)
}

// Experiences handles GET /api/experiences.
func (h *ContentHandler) Experiences(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "experiences", h.contentService.Experiences)
}

// Projects handles GET /api/projects.
func (h *ContentHandler) Projects(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "projects", h.contentService.Projects)
}

// Achievements handles GET /api/achievements.
func (h *ContentHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, "achievements", h.contentService.Achievements)
}

type contentRow interface {
	*model.SocialLink | *model.Experience | *model.Project | *model.Achievement
}

func serveList[T contentRow](w http.ResponseWriter, r *http.Request, resource string, list func(context.Context) ([]T, error)) {
	items, err := list(r.Context())
	if err != nil {
		slog.Error("list content failed", "resource", resource, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch "+resource)
		return
	}

	// Return [] not null for empty lists
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}
