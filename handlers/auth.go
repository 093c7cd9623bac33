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

type AuthHandler struct {
	store *session.Store
	cfg   cliparse.Config
}

func NewAuthHandler(store *session.Store, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{store: store, cfg: cfg}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing credentials")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	userID, err := h.store.CreateUser(r.Context(), req.Username, passwordHash)
	if err != nil {
		if errors.Is(err, session.ErrUsernameTaken) {
			middleware.ErrorResponse(w, http.StatusConflict, "User already exists")
			return
		}
		slog.Error("failed to create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	token, err := auth.CreateToken(req.Username, h.cfg.JWTSecret)
	if err != nil {
		slog.Error("failed to create token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	slog.Info("user registered", "user_id", userID, "username", req.Username)

	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{Token: token})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing credentials")
		return
	}

	user, err := h.store.UserByUsername(r.Context(), req.Username)
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.CreateToken(req.Username, h.cfg.JWTSecret)
	if err != nil {
		slog.Error("failed to create token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to login")
		return
	}

	slog.Info("user logged in", "username", req.Username)

	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{Token: token})
}
