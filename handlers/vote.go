package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Mathisgmn/EasyQuizz/auth"
	"github.com/Mathisgmn/EasyQuizz/cliparse"
	"github.com/Mathisgmn/EasyQuizz/middleware"
	"github.com/Mathisgmn/EasyQuizz/models"
	"github.com/Mathisgmn/EasyQuizz/session"
)

type VoteHandler struct {
	store *session.Store
	cfg   cliparse.Config
}

func NewVoteHandler(store *session.Store, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{store: store, cfg: cfg}
}

// CastVote handles POST /vote
// The voter token travels in the body rather than a header so QR scans
// can post a single self-contained payload.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.ChoiceID == 0 || req.UserToken == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing choiceId or userToken")
		return
	}

	username, err := auth.VerifyToken(req.UserToken, h.cfg.JWTSecret)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid user token")
		return
	}

	err = h.store.CastVote(r.Context(), username, req.ChoiceID)
	switch {
	case errors.Is(err, session.ErrVotingClosed):
		middleware.ErrorResponse(w, http.StatusForbidden, "Vote has ended")
		return
	case errors.Is(err, session.ErrInvalidChoice):
		middleware.ErrorResponse(w, http.StatusNotFound, "Choice not found")
		return
	case errors.Is(err, session.ErrUnknownUser):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid user token")
		return
	case err != nil:
		slog.Error("failed to record vote", "error", err, "username", username)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded", "username", username, "choice_id", req.ChoiceID)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{Accepted: true})
}
