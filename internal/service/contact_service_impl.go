package service

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/portfolio/backend/internal/mail"
	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

const (
	emailNotification = "notification"
	emailConfirmation = "confirmation"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.ContactRepository
	sender   mail.Sender
	composer mail.Composer
	metrics  *metrics.Metrics
	validate *validator.Validate
}

// NewContactService creates a ContactService. m may be nil.
func NewContactService(repo repository.ContactRepository, sender mail.Sender, composer mail.Composer, m *metrics.Metrics) ContactService {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report JSON field names in ValidationError
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &contactServiceImpl{
		repo:     repo,
		sender:   sender,
		composer: composer,
		metrics:  m,
		validate: v,
	}
}

func (s *contactServiceImpl) Submit(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error) {
	if err := s.validateInput(in); err != nil {
		s.metrics.Submission(metrics.OutcomeRejected)
		return nil, err
	}

	sub := &model.ContactSubmission{
		Name:    in.Name,
		Email:   in.Email,
		Message: in.Message,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		s.metrics.Submission(metrics.OutcomeFailed)
		return nil, &StorageError{Op: "create contact", Err: err}
	}
	s.metrics.Submission(metrics.OutcomeAccepted)

	s.sendEmails(ctx, sub)
	return sub, nil
}

func (s *contactServiceImpl) validateInput(in model.ContactInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []string{"body"}}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}

// sendEmails sends the notification and the confirmation concurrently and
// waits for both. Neither outcome affects the other or the caller.
func (s *contactServiceImpl) sendEmails(ctx context.Context, sub *model.ContactSubmission) {
	// the emails must not be cut short by the client going away
	ctx = context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		msg, err := s.composer.Notification(sub.Name, sub.Email, sub.Message)
		s.deliver(ctx, sub, emailNotification, msg, err)
	}()
	go func() {
		defer wg.Done()
		msg, err := s.composer.Confirmation(sub.Name, sub.Email)
		s.deliver(ctx, sub, emailConfirmation, msg, err)
	}()
	wg.Wait()
}

func (s *contactServiceImpl) deliver(ctx context.Context, sub *model.ContactSubmission, kind string, msg mail.Message, composeErr error) {
	err := composeErr
	var info mail.DeliveryInfo
	if err == nil {
		info, err = s.sender.Send(ctx, msg)
	}
	if err != nil {
		s.metrics.Email(kind, metrics.EmailFailed)
		slog.Warn("contact email not sent",
			"kind", kind,
			"submission_id", sub.ID,
			"error", err,
		)
		return
	}
	s.metrics.Email(kind, metrics.EmailSent)
	attrs := []any{
		"kind", kind,
		"submission_id", sub.ID,
		"message_id", info.MessageID,
	}
	// throwaway 経由の場合は受信箱にログインして内容を確認できる
	if info.InboxURL != "" {
		attrs = append(attrs, "inbox_url", info.InboxURL, "inbox_user", info.InboxUser)
	}
	slog.Info("contact email sent", attrs...)
}
