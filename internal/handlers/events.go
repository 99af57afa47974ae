package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"event-inbox/internal/database"
)

// SuggestedEventHandler handles review operations on suggested events
type SuggestedEventHandler struct {
	db *database.DB
}

// NewSuggestedEventHandler creates a new suggested event handler
func NewSuggestedEventHandler(db *database.DB) *SuggestedEventHandler {
	return &SuggestedEventHandler{db: db}
}

// GetSuggestedEvents handles GET /api/suggested-events with an optional
// status filter.
func (h *SuggestedEventHandler) GetSuggestedEvents(w http.ResponseWriter, r *http.Request) {
	var events []database.SuggestedEvent
	var err error

	if status := r.URL.Query().Get("status"); status != "" {
		switch status {
		case database.StatusPending, database.StatusApproved, database.StatusRejected:
		default:
			writeError(w, http.StatusBadRequest, "Invalid status filter: "+status)
			return
		}
		events, err = h.db.SuggestedEvents.GetByStatus(status)
	} else {
		events, err = h.db.SuggestedEvents.GetAll()
	}

	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get suggested events")
		return
	}
	if events == nil {
		events = []database.SuggestedEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

// GetSuggestedEvent handles GET /api/suggested-events/{id}
func (h *SuggestedEventHandler) GetSuggestedEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	event, err := h.db.SuggestedEvents.GetByID(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "Suggested event not found")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// AcceptSuggestedEvent handles POST /api/suggested-events/{id}/accept
func (h *SuggestedEventHandler) AcceptSuggestedEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	saved, err := h.db.SuggestedEvents.Accept(id)
	if err != nil {
		writeError(w, reviewErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// RejectSuggestedEvent handles POST /api/suggested-events/{id}/reject
func (h *SuggestedEventHandler) RejectSuggestedEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	if err := h.db.SuggestedEvents.Reject(id); err != nil {
		writeError(w, reviewErrorStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// bulkRequest is the body for bulk accept/reject
type bulkRequest struct {
	IDs []int `json:"ids"`
}

// BulkAccept handles POST /api/suggested-events/bulk-accept. The batch is
// all-or-nothing: one bad ID and nothing is accepted.
func (h *SuggestedEventHandler) BulkAccept(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "No event IDs given")
		return
	}

	saved, err := h.db.SuggestedEvents.BulkAccept(req.IDs)
	if err != nil {
		writeError(w, reviewErrorStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// BulkReject handles POST /api/suggested-events/bulk-reject
func (h *SuggestedEventHandler) BulkReject(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		writeError(w, http.StatusBadRequest, "No event IDs given")
		return
	}

	if err := h.db.SuggestedEvents.BulkReject(req.IDs); err != nil {
		writeError(w, reviewErrorStatus(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteSuggestedEvent handles DELETE /api/suggested-events/{id}
func (h *SuggestedEventHandler) DeleteSuggestedEvent(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid event ID")
		return
	}

	if err := h.db.SuggestedEvents.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// reviewErrorStatus maps store errors to HTTP statuses
func reviewErrorStatus(err error) int {
	if errors.Is(err, database.ErrNotPending) {
		return http.StatusConflict
	}
	if strings.Contains(err.Error(), "not found") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// SavedEventHandler serves the scheduled events
type SavedEventHandler struct {
	db *database.DB
}

// NewSavedEventHandler creates a new saved event handler
func NewSavedEventHandler(db *database.DB) *SavedEventHandler {
	return &SavedEventHandler{db: db}
}

// GetSavedEvents handles GET /api/saved-events
func (h *SavedEventHandler) GetSavedEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.db.SavedEvents.GetAll()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get saved events")
		return
	}
	if events == nil {
		events = []database.SavedEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}
