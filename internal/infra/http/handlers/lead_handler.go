package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/leadtrack/internal/entity"
	"github.com/xavierca1/leadtrack/internal/infra/http/middleware"
	"github.com/xavierca1/leadtrack/internal/usecase"
)

type LeadHandler struct {
	store  *usecase.LeadStore
	logger *slog.Logger
}

func NewLeadHandler(store *usecase.LeadStore, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{store: store, logger: logger.With("component", "lead_handler")}
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondMutation maps store errors onto HTTP statuses. A
// *PersistenceError is not an error for the client: the mutation is
// committed in memory and the next save retries, so we log, count and
// report success.
func (h *LeadHandler) respondMutation(w http.ResponseWriter, err error, onOK func()) {
	var verrs usecase.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		fields := make([]fieldError, len(verrs))
		for i, v := range verrs {
			fields[i] = fieldError{Field: v.Field, Message: v.Message}
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
	case errors.Is(err, usecase.ErrLeadNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "lead not found"})
	case usecase.IsPersistenceError(err):
		h.logger.Warn("mutation persisted in memory only", "error", err)
		middleware.RecordSaveFailure()
		onOK()
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		onOK()
	}
}

// List handles GET /leads with optional ?q= search and ?status= filter.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads := h.store.Snapshot()

	if status := r.URL.Query().Get("status"); status != "" {
		if !entity.IsValidStatus(status) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown status"})
			return
		}
		leads = usecase.ByStatus(leads, status)
	}

	leads = usecase.Search(leads, r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	lead, err := h.store.Add(r.Context(), input)
	h.respondMutation(w, err, func() {
		writeJSON(w, http.StatusCreated, lead)
	})
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.store.GetByID(chi.URLParam(r, "id"))
	if errors.Is(err, usecase.ErrLeadNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "lead not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	lead, err := h.store.Update(r.Context(), chi.URLParam(r, "id"), input)
	h.respondMutation(w, err, func() {
		writeJSON(w, http.StatusOK, lead)
	})
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.Delete(r.Context(), chi.URLParam(r, "id"))
	h.respondMutation(w, err, func() {
		w.WriteHeader(http.StatusNoContent)
	})
}

func (h *LeadHandler) MarkContacted(w http.ResponseWriter, r *http.Request) {
	lead, err := h.store.MarkAsContacted(r.Context(), chi.URLParam(r, "id"))
	h.respondMutation(w, err, func() {
		writeJSON(w, http.StatusOK, lead)
	})
}

type appendNoteRequest struct {
	Text string `json:"text"`
}

func (h *LeadHandler) AppendNote(w http.ResponseWriter, r *http.Request) {
	var req appendNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON"})
		return
	}

	lead, err := h.store.AppendNote(r.Context(), chi.URLParam(r, "id"), req.Text)
	h.respondMutation(w, err, func() {
		writeJSON(w, http.StatusOK, lead)
	})
}
