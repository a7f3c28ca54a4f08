package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/portfolio/backend/internal/model"
)

type mockContentService struct {
	err          error
	links        []*model.SocialLink
	experiences  []*model.Experience
	projects     []*model.Project
	achievements []*model.Achievement
}

func (m *mockContentService) SocialLinks(ctx context.Context) ([]*model.SocialLink, error) {
	return m.links, m.err
}

func (m *mockContentService) Experiences(ctx context.Context) ([]*model.Experience, error) {
	return m.experiences, m.err
}

func (m *mockContentService) Projects(ctx context.Context) ([]*model.Project, error) {
	return m.projects, m.err
}

func (m *mockContentService) Achievements(ctx context.Context) ([]*model.Achievement, error) {
	return m.achievements, m.err
}

func TestContentHandler_Projects(t *testing.T) {
	h := NewContentHandler(&mockContentService{
		projects: []*model.Project{
			{ID: "p1", Title: "Room Reservation", Tags: []string{"Go"}, Featured: true},
			{ID: "p2", Title: "Subway Surfers IRL", Tags: []string{}},
		},
	})

	rec := httptest.NewRecorder()
	h.Projects(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got []model.Project
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0].ID != "p1" || !got[0].Featured {
		t.Errorf("unexpected projects %+v", got)
	}
}

func TestContentHandler_EmptyListIsArray(t *testing.T) {
	h := NewContentHandler(&mockContentService{})

	endpoints := map[string]http.HandlerFunc{
		"/api/social-links": h.SocialLinks,
		"/api/experiences":  h.Experiences,
		"/api/projects":     h.Projects,
		"/api/achievements": h.Achievements,
	}
	for path, fn := range endpoints {
		rec := httptest.NewRecorder()
		fn(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
			t.Errorf("%s: expected [], got %s", path, body)
		}
	}
}

func TestContentHandler_BackendError(t *testing.T) {
	h := NewContentHandler(&mockContentService{err: errors.New("database error")})

	cases := map[string]struct {
		fn   http.HandlerFunc
		want string
	}{
		"/api/social-links": {h.SocialLinks, "Failed to fetch social links"},
		"/api/experiences":  {h.Experiences, "Failed to fetch experiences"},
		"/api/projects":     {h.Projects, "Failed to fetch projects"},
		"/api/achievements": {h.Achievements, "Failed to fetch achievements"},
	}
	for path, c := range cases {
		rec := httptest.NewRecorder()
		c.fn(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("%s: expected 500, got %d", path, rec.Code)
		}
		var resp map[string]string
		_ = json.NewDecoder(rec.Body).Decode(&resp)
		if resp["error"] != c.want {
			t.Errorf("%s: expected error %q, got %q", path, c.want, resp["error"])
		}
	}
}
