/*
Package main provides the entry point for the EasyQuizz API server.

EasyQuizz runs a single live voting round: one question, a small choice
set with scannable QR codes, and a deadline. Authenticated users cast
exactly one ballot each (revoting allowed until the deadline) and
viewers read live tallies.

# Starting the Server

The server reads a .env file when present, then environment variables
or CLI flags:

	DATABASE_URL=postgres://... JWT_SECRET=... go run main.go

Or with flags:

	go run main.go -p 8000 -d "postgres://..." -jwt-secret "..."

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): Bearer token signing secret

Optional settings:

  - PORT (-p): Server port (default: 8000)
  - QR_STORAGE_PATH (--qr-path): QR image cache directory
  - VOTE_QUESTION, QR1_LABEL..QR3_LABEL: Default round definition
  - VOTE_EXPIRY_DATE or VOTE_DURATION: Default round deadline

# Architecture

The server uses a handler-based architecture with dependency injection:

  - session: the core - round storage, ballot recording, tallies
  - handlers: HTTP request handlers (auth, config, session, vote,
    results, qrcodes)
  - router: Route definitions using Go 1.22+ routing
  - middleware: auth guard, CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Password hashing and bearer tokens
  - db: Schema creation
  - cliparse: Configuration parsing and deadline resolution

See package documentation for each component.
*/
package main
