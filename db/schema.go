package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username VARCHAR(50) UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

-- Choices (the active round's choice set, replaced whole)
CREATE TABLE IF NOT EXISTS choices (
    id INTEGER PRIMARY KEY,
    label VARCHAR(50) NOT NULL
);

-- Vote sessions. The id sequence keeps climbing across replacements,
-- so the row with the highest id is always the active round.
CREATE TABLE IF NOT EXISTS vote_session (
    id SERIAL PRIMARY KEY,
    question TEXT NOT NULL,
    starts_at TIMESTAMP NOT NULL,
    ends_at TIMESTAMP NOT NULL
);

-- Ballots. UNIQUE (user_id, vote_session_id) is the one-ballot-per-user
-- invariant; CastVote upserts against it so same-user races collapse to
-- a single surviving row.
CREATE TABLE IF NOT EXISTS votes (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id),
    choice_id INTEGER NOT NULL REFERENCES choices(id),
    vote_session_id INTEGER NOT NULL REFERENCES vote_session(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, vote_session_id)
);

CREATE INDEX IF NOT EXISTS idx_votes_choice_id ON votes(choice_id);
`
