package handlers

import (
	"log/slog"
	"net/http"

	"github.com/joho/godotenv"

	"github.com/Mathisgmn/EasyQuizz/middleware"
	"github.com/Mathisgmn/EasyQuizz/models"
	"github.com/Mathisgmn/EasyQuizz/session"
)

type SessionHandler struct {
	store    *session.Store
	resolver *session.Resolver
}

func NewSessionHandler(store *session.Store, resolver *session.Resolver) *SessionHandler {
	return &SessionHandler{store: store, resolver: resolver}
}

// ReplaceSession handles POST /session
// Replaces the active round from an explicit payload. All prior ballots
// are discarded - this is the reset semantic, not an accident.
func (h *SessionHandler) ReplaceSession(w http.ResponseWriter, r *http.Request) {
	var req models.ReplaceSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if msg := validateReplacement(req); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	choices := make([]models.Choice, 0, len(req.Choices))
	for _, c := range req.Choices {
		choices = append(choices, models.Choice{ID: c.ID, Label: c.Label})
	}

	endsAt := h.resolver.ResolveDeadline(req.VoteEndsAt, req.Duration)

	round, err := h.store.ReplaceRound(r.Context(), req.Question, endsAt, choices)
	if err != nil {
		slog.Error("failed to replace round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to replace session")
		return
	}

	slog.Info("round replaced", "session_id", round.ID, "question", round.Question, "ends_at", round.EndsAt)

	view, err := h.resolver.ResolveActiveRound(r.Context())
	if err != nil {
		slog.Error("failed to resolve replaced round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to replace session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// ReloadSession handles POST /session/reload
// Re-reads the environment (with .env override) and replaces the round
// from the refreshed defaults.
func (h *SessionHandler) ReloadSession(w http.ResponseWriter, r *http.Request) {
	if err := godotenv.Overload(); err != nil {
		// No .env file is fine; the live environment still applies
		slog.Warn("no .env file to reload", "error", err)
	}

	view, err := h.resolver.ReplaceFromDefaults(r.Context())
	if err != nil {
		slog.Error("failed to reload session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reload session")
		return
	}

	slog.Info("round reloaded from environment", "session_id", view.SessionID, "question", view.Question)

	middleware.JSONResponse(w, http.StatusOK, view)
}

// validateReplacement returns a message describing the first invalid
// field, or "" when the request is well formed. Deadline fields are not
// validated here: the resolution chain is total and falls back on its
// own.
func validateReplacement(req models.ReplaceSessionRequest) string {
	if req.Question == "" {
		return "question is required"
	}
	if len(req.Choices) == 0 {
		return "at least one choice is required"
	}

	seen := make(map[int]bool, len(req.Choices))
	for _, c := range req.Choices {
		if c.ID <= 0 {
			return "choice id must be a positive integer"
		}
		if c.Label == "" {
			return "choice label is required"
		}
		if seen[c.ID] {
			return "duplicate choice id"
		}
		seen[c.ID] = true
	}

	return ""
}
