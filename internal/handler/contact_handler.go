package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/service"
)

const maxContactBodyBytes = 64 << 10

// ContactHandler handles contact form submission.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitResponse is the JSON body returned on success.
type submitResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Contact *model.ContactSubmission `json:"contact"`
}

// Submit handles POST /api/contact.
// name, email and message are all required. The response is 200 as soon as
// the submission is stored, whether or not the emails went out.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)

	var req model.ContactInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	contact, err := h.contactService.Submit(r.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		slog.Error("contact submission failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to submit contact form")
		return
	}

	writeJSON(w, http.StatusOK, submitResponse{
		Success: true,
		Message: "Form submitted successfully",
		Contact: contact,
	})
}
