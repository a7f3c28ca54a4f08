package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/portfolio/backend/internal/mail"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

// countingRepo records successful creates on top of a real store.
type countingRepo struct {
	repository.ContactRepository
	mu      sync.Mutex
	created int
	fail    error
}

func (c *countingRepo) Create(ctx context.Context, sub *model.ContactSubmission) error {
	if c.fail != nil {
		return c.fail
	}
	if err := c.ContactRepository.Create(ctx, sub); err != nil {
		return err
	}
	c.mu.Lock()
	c.created++
	c.mu.Unlock()
	return nil
}

type recordingSender struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (s *recordingSender) Send(ctx context.Context, msg mail.Message) (mail.DeliveryInfo, error) {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	if s.err != nil {
		return mail.DeliveryInfo{}, &mail.EmailError{To: msg.To, Err: s.err}
	}
	return mail.DeliveryInfo{MessageID: "m"}, nil
}

func newContactFlow(t *testing.T, sender *recordingSender) (*http.ServeMux, *countingRepo) {
	t.Helper()
	db, err := repository.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "flow.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &countingRepo{ContactRepository: repository.NewSQLiteContactRepository(db)}
	svc := service.NewContactService(repo, sender, mail.Composer{Operator: "owner@example.com", Signature: "Owner"}, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/contact", NewContactHandler(svc).Submit)
	return mux, repo
}

func doPost(mux http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)
	return rec
}

func TestContactFlow_Accepted(t *testing.T) {
	sender := &recordingSender{}
	mux, repo := newContactFlow(t, sender)

	rec := doPost(mux, `{"name":"Ada","email":"ada@example.com","message":"Hello"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp submitResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Contact == nil || resp.Contact.ID == "" || resp.Contact.CreatedAt.IsZero() {
		t.Fatalf("expected stored record with id and timestamps, got %+v", resp.Contact)
	}
	if repo.created != 1 {
		t.Errorf("expected 1 stored record, got %d", repo.created)
	}

	if len(sender.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(sender.sent))
	}
	var toOperator, toSender *mail.Message
	for i := range sender.sent {
		switch sender.sent[i].To {
		case "owner@example.com":
			toOperator = &sender.sent[i]
		case "ada@example.com":
			toSender = &sender.sent[i]
		}
	}
	if toOperator == nil || toSender == nil {
		t.Fatalf("expected one email to each party, got %+v", sender.sent)
	}
	for _, want := range []string{"Ada", "ada@example.com", "Hello"} {
		if !strings.Contains(toOperator.HTML, want) {
			t.Errorf("operator email missing %q", want)
		}
	}
	if toSender.Subject != mail.ConfirmationSubject {
		t.Errorf("unexpected confirmation subject %q", toSender.Subject)
	}
}

func TestContactFlow_MissingName(t *testing.T) {
	sender := &recordingSender{}
	mux, repo := newContactFlow(t, sender)

	rec := doPost(mux, `{"name":"","email":"b@example.com","message":"Hi"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if repo.created != 0 {
		t.Errorf("expected zero stored records, got %d", repo.created)
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected zero emails, got %d", len(sender.sent))
	}
}

func TestContactFlow_AbsentField(t *testing.T) {
	sender := &recordingSender{}
	mux, repo := newContactFlow(t, sender)

	rec := doPost(mux, `{"name":"Bo","email":"b@example.com"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if repo.created != 0 || len(sender.sent) != 0 {
		t.Errorf("expected nothing stored or sent, got %d records, %d emails", repo.created, len(sender.sent))
	}
}

func TestContactFlow_StorageFailure(t *testing.T) {
	sender := &recordingSender{}
	mux, repo := newContactFlow(t, sender)
	repo.fail = errors.New("disk full")

	rec := doPost(mux, `{"name":"Ada","email":"ada@example.com","message":"Hello"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if len(sender.sent) != 0 {
		t.Errorf("expected no email attempt, got %d", len(sender.sent))
	}
}

func TestContactFlow_EmailFailureStillSucceeds(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp unreachable")}
	mux, repo := newContactFlow(t, sender)

	rec := doPost(mux, `{"name":"Ada","email":"ada@example.com","message":"Hello"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite email failure, got %d", rec.Code)
	}
	if repo.created != 1 {
		t.Errorf("expected record to be stored, got %d", repo.created)
	}
	if len(sender.sent) != 2 {
		t.Errorf("expected both sends attempted, got %d", len(sender.sent))
	}
}

func TestContactFlow_DuplicateSubmissionsAreDistinct(t *testing.T) {
	mux, repo := newContactFlow(t, &recordingSender{})
	body := `{"name":"Ada","email":"ada@example.com","message":"Hello"}`

	var ids []string
	for i := 0; i < 2; i++ {
		rec := doPost(mux, body)
		var resp submitResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		ids = append(ids, resp.Contact.ID)
	}

	if repo.created != 2 {
		t.Errorf("expected 2 records, got %d", repo.created)
	}
	if ids[0] == ids[1] {
		t.Errorf("expected distinct ids, got %q twice", ids[0])
	}
}
