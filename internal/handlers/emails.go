package handlers

import (
	"net/http"

	"event-inbox/internal/database"
)

// EmailHandler handles email-related HTTP requests
type EmailHandler struct {
	db *database.DB
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(db *database.DB) *EmailHandler {
	return &EmailHandler{db: db}
}

// GetEmails handles GET /api/emails
func (h *EmailHandler) GetEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.db.Emails.GetAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get emails")
		return
	}
	if emails == nil {
		emails = []database.Email{}
	}
	writeJSON(w, http.StatusOK, emails)
}

// GetEmail handles GET /api/emails/{id}
func (h *EmailHandler) GetEmail(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid email ID")
		return
	}

	email, err := h.db.Emails.GetByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Email not found")
		return
	}
	writeJSON(w, http.StatusOK, email)
}
