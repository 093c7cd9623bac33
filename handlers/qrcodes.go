package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/Mathisgmn/EasyQuizz/cliparse"
	"github.com/Mathisgmn/EasyQuizz/middleware"
	"github.com/Mathisgmn/EasyQuizz/session"
)

const qrImageSize = 240

type QRCodeHandler struct {
	resolver *session.Resolver
	cfg      cliparse.Config
}

func NewQRCodeHandler(resolver *session.Resolver, cfg cliparse.Config) *QRCodeHandler {
	return &QRCodeHandler{resolver: resolver, cfg: cfg}
}

// GetQRCode handles GET /qrcodes/{choiceId}
// Serves a PNG encoding {choiceId, label} for a choice in the active
// round. Images are generated on first request and cached on disk.
func (h *QRCodeHandler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	choiceID, err := strconv.Atoi(r.PathValue("choiceId"))
	if err != nil || choiceID <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid choice id")
		return
	}

	view, err := h.resolver.ResolveActiveRound(r.Context())
	if err != nil {
		slog.Error("failed to resolve active round", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch QR code")
		return
	}

	label := ""
	found := false
	for _, c := range view.Choices {
		if c.ID == choiceID {
			label = c.Label
			found = true
			break
		}
	}
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Choice not found")
		return
	}

	filePath, err := h.ensureQRCodeFile(choiceID, label)
	if err != nil {
		slog.Error("failed to generate QR code", "error", err, "choice_id", choiceID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to fetch QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, filePath)
}

// ensureQRCodeFile returns the cached image path, generating the file if
// it does not exist yet.
func (h *QRCodeHandler) ensureQRCodeFile(choiceID int, label string) (string, error) {
	if err := os.MkdirAll(h.cfg.QRStoragePath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create QR storage dir: %w", err)
	}

	filePath := filepath.Join(h.cfg.QRStoragePath, fmt.Sprintf("choice-%d.png", choiceID))
	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"choiceId": choiceID,
		"label":    label,
	})
	if err != nil {
		return "", fmt.Errorf("failed to build QR payload: %w", err)
	}

	if err := qrcode.WriteFile(string(payload), qrcode.Medium, qrImageSize, filePath); err != nil {
		return "", fmt.Errorf("failed to write QR image: %w", err)
	}

	return filePath, nil
}
