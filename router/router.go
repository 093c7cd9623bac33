package router

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/Mathisgmn/EasyQuizz/cliparse"
	"github.com/Mathisgmn/EasyQuizz/handlers"
	"github.com/Mathisgmn/EasyQuizz/middleware"
	"github.com/Mathisgmn/EasyQuizz/session"
)

func NewRouter(db *sqlx.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	store := session.NewStore(db)
	resolver := session.NewResolver(store, cliparse.ReadRoundDefaults)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(store, cfg)
	configHandler := handlers.NewConfigHandler(resolver)
	sessionHandler := handlers.NewSessionHandler(store, resolver)
	voteHandler := handlers.NewVoteHandler(store, cfg)
	resultsHandler := handlers.NewResultsHandler(resolver)
	qrCodeHandler := handlers.NewQRCodeHandler(resolver, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Authentication (public)
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))

	// Round configuration and tallies (authenticated)
	mux.HandleFunc("GET /config", middleware.WithLogging(middleware.RequireAuth(cfg.JWTSecret, configHandler.GetConfig)))
	mux.HandleFunc("POST /session", middleware.WithLogging(middleware.RequireAuth(cfg.JWTSecret, sessionHandler.ReplaceSession)))
	mux.HandleFunc("POST /session/reload", middleware.WithLogging(middleware.RequireAuth(cfg.JWTSecret, sessionHandler.ReloadSession)))
	mux.HandleFunc("GET /results", middleware.WithLogging(middleware.RequireAuth(cfg.JWTSecret, resultsHandler.GetResults)))

	// Voting (token travels in the body)
	mux.HandleFunc("POST /vote", middleware.WithLogging(voteHandler.CastVote))

	// QR code images (public, scanned before login)
	mux.HandleFunc("GET /qrcodes/{choiceId}", middleware.WithLogging(qrCodeHandler.GetQRCode))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("EasyQuizz API v1"))
	})

	return mux
}
