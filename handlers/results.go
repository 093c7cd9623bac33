package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Mathisgmn/EasyQuizz/middleware"
	"github.com/Mathisgmn/EasyQuizz/session"
)

type ResultsHandler struct {
	resolver *session.Resolver
}

func NewResultsHandler(resolver *session.Resolver) *ResultsHandler {
	return &ResultsHandler{resolver: resolver}
}

// GetResults handles GET /results
// Live tallies over the active round's choice list. Every choice appears
// even with zero ballots; totalVotes counts distinct voters, since a
// revote moves a ballot instead of adding one.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.resolver.ComputeResults(r.Context())
	if err != nil {
		slog.Error("failed to compute results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch results")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
