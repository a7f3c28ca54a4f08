package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates in, persists it and then sends the operator
	// notification and the sender confirmation. Email failures are logged
	// and do not affect the result: once the row is stored, Submit succeeds.
	//
	// Errors are *ValidationError (nothing stored, nothing sent) or
	// *StorageError (nothing sent).
	Submit(ctx context.Context, in model.ContactInput) (*model.ContactSubmission, error)
}
