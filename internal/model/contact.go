package model

import "time"

// ContactSubmission is one message sent through the portfolio contact form.
// A row exists for every request that passed validation, whether or not the
// notification emails were delivered.
type ContactSubmission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactInput is the JSON body accepted by POST /api/contact.
// All three fields are required; email is not format-checked.
type ContactInput struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}
