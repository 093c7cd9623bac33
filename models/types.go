package models

import "time"

// Request types

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ReplaceSessionRequest describes a full round replacement. Either
// VoteEndsAt (absolute timestamp) or Duration ("<number><d|h|m>") may be
// set; when both are empty the environment defaults decide the deadline.
type ReplaceSessionRequest struct {
	Question   string        `json:"question"`
	VoteEndsAt string        `json:"voteEndsAt,omitempty"`
	Duration   string        `json:"duration,omitempty"`
	Choices    []ChoiceInput `json:"choices"`
}

type ChoiceInput struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

type VoteRequest struct {
	ChoiceID  int    `json:"choiceId"`
	UserToken string `json:"userToken"`
}

// Response types

type TokenResponse struct {
	Token string `json:"token"`
}

type VoteResponse struct {
	Accepted bool `json:"accepted"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Round is one voting session: a question, a choice set, and a deadline.
// At most one round exists at a time; replacing it discards all ballots.
type Round struct {
	ID       int64     `db:"id" json:"id"`
	Question string    `db:"question" json:"question"`
	StartsAt time.Time `db:"starts_at" json:"starts_at"`
	EndsAt   time.Time `db:"ends_at" json:"ends_at"`
}

type Choice struct {
	ID    int    `db:"id" json:"id"`
	Label string `db:"label" json:"label"`
}

// View types

// RoundView is what callers see as "the current round". SessionID is 0
// when the view was synthesized from defaults and no round is persisted.
type RoundView struct {
	SessionID  int64        `json:"sessionId"`
	Question   string       `json:"question"`
	VoteEndsAt time.Time    `json:"voteEndsAt"`
	Choices    []ChoiceView `json:"choices"`
}

type ChoiceView struct {
	ID        int    `json:"id"`
	Label     string `json:"label"`
	QRCodeURL string `json:"qrCodeUrl"`
}

type ChoiceCount struct {
	ChoiceID int    `json:"choiceId"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
}

type Results struct {
	TotalVotes int           `json:"totalVotes"`
	Results    []ChoiceCount `json:"results"`
}
