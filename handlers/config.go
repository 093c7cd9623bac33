package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Mathisgmn/EasyQuizz/middleware"
	"github.com/Mathisgmn/EasyQuizz/session"
)

type ConfigHandler struct {
	resolver *session.Resolver
}

func NewConfigHandler(resolver *session.Resolver) *ConfigHandler {
	return &ConfigHandler{resolver: resolver}
}

// GetConfig handles GET /config
// Returns the active round: question, deadline, and the choice set with
// QR code paths. Works before any round has been created thanks to the
// resolver's default synthesis.
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	view, err := h.resolver.ResolveActiveRound(r.Context())
	if err != nil {
		slog.Error("failed to resolve active round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch config")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}
