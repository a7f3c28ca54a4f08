package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

// ---------------------------------------------------------------------------
// Mock ContactService
// ---------------------------------------------------------------------------

type mockContactService struct {
	calls      int
	submitFunc func(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error)
}

func (m *mockContactService) Submit(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error) {
	m.calls++
	if m.submitFunc != nil {
		return m.submitFunc(ctx, in)
	}
	return &model.ContactSubmission{ID: "c1", Name: in.Name, Email: in.Email, Message: in.Message}, nil
}

func postContact(h *ContactHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

// ---------------------------------------------------------------------------
// POST /api/contact tests
// ---------------------------------------------------------------------------

func TestContactHandler_Submit_Success(t *testing.T) {
	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	var captured model.ContactInput
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error) {
			captured = in
			return &model.ContactSubmission{
				ID: "c1", Name: in.Name, Email: in.Email, Message: in.Message,
				CreatedAt: created, UpdatedAt: created,
			}, nil
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(h, `{"name":"Ada","email":"ada@example.com","message":"Hello"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body: %s", rec.Code, rec.Body.String())
	}
	if captured.Name != "Ada" || captured.Email != "ada@example.com" || captured.Message != "Hello" {
		t.Errorf("unexpected input forwarded to service: %+v", captured)
	}

	var resp struct {
		Success bool                    `json:"success"`
		Message string                  `json:"message"`
		Contact model.ContactSubmission `json:"contact"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success=true")
	}
	if resp.Message == "" {
		t.Error("expected a message")
	}
	if resp.Contact.ID != "c1" || resp.Contact.Name != "Ada" {
		t.Errorf("expected persisted record echoed, got %+v", resp.Contact)
	}
	if !resp.Contact.CreatedAt.Equal(created) {
		t.Errorf("expected createdAt %v, got %v", created, resp.Contact.CreatedAt)
	}
}

func TestContactHandler_Submit_CamelCaseTimestamps(t *testing.T) {
	h := NewContactHandler(&mockContactService{})

	rec := postContact(h, `{"name":"Ada","email":"ada@example.com","message":"Hello"}`)

	var raw map[string]map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&raw); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, key := range []string{"id", "createdAt", "updatedAt"} {
		if _, ok := raw["contact"][key]; !ok {
			t.Errorf("expected contact.%s in response", key)
		}
	}
}

// TestContactHandler_Submit_ValidationError verifies that a service validation
// failure maps to 400 with the generic message.
func TestContactHandler_Submit_ValidationError(t *testing.T) {
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error) {
			return nil, &service.ValidationError{Fields: []string{"name"}}
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(h, `{"name":"","email":"b@example.com","message":"Hi"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	var resp map[string]string
	_ = json.NewDecoder(rec.Body).Decode(&resp)
	if resp["error"] != "Missing required fields" {
		t.Errorf("expected error=Missing required fields, got %q", resp["error"])
	}
}

// TestContactHandler_Submit_InvalidJSON verifies that malformed JSON returns 400
// without reaching the service.
func TestContactHandler_Submit_InvalidJSON(t *testing.T) {
	mock := &mockContactService{}
	h := NewContactHandler(mock)

	rec := postContact(h, "{bad json")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid JSON, got %d", rec.Code)
	}
	if mock.calls != 0 {
		t.Errorf("expected service not to be called, got %d calls", mock.calls)
	}
}

func TestContactHandler_Submit_BodyTooLarge(t *testing.T) {
	mock := &mockContactService{}
	h := NewContactHandler(mock)

	big := `{"name":"A","email":"a@b.c","message":"` + strings.Repeat("x", maxContactBodyBytes) + `"}`
	rec := postContact(h, big)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for oversized body, got %d", rec.Code)
	}
	if mock.calls != 0 {
		t.Errorf("expected service not to be called, got %d calls", mock.calls)
	}
}

// TestContactHandler_Submit_StorageError verifies that a storage failure returns
// 500 without leaking the internal error.
func TestContactHandler_Submit_StorageError(t *testing.T) {
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error) {
			return nil, &service.StorageError{Op: "create contact", Err: errors.New("db connection lost")}
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(h, `{"name":"Ada","email":"ada@example.com","message":"Hello"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on storage error, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "db connection lost") {
		t.Error("internal error detail leaked to client")
	}
	if !strings.Contains(body, "Failed to submit contact form") {
		t.Errorf("expected generic failure message, got %s", body)
	}
}

// TestContactHandler_Submit_ContentTypeJSON verifies the response Content-Type header.
func TestContactHandler_Submit_ContentTypeJSON(t *testing.T) {
	h := NewContactHandler(&mockContactService{})

	rec := postContact(h, `{"name":"A","email":"t@e.com","message":"test"}`)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %q", ct)
	}
}
