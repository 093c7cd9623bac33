/*
Package handlers contains HTTP request handlers for the EasyQuizz API.

# Handler Types

Each handler is a struct with its dependencies injected:

  - AuthHandler: user registration and login, issues bearer tokens
  - ConfigHandler: the active round view (question, deadline, choices)
  - SessionHandler: round replacement, explicit or from the environment
  - VoteHandler: ballot casting and revoting
  - ResultsHandler: live tallies
  - QRCodeHandler: per-choice QR images, generated and cached on disk

Handlers are created via constructor functions:

	store := session.NewStore(db)
	resolver := session.NewResolver(store, cliparse.ReadRoundDefaults)
	voteHandler := handlers.NewVoteHandler(store, cfg)

# Voting Flow

	POST /auth/register → token
	GET  /config        → {sessionId, question, voteEndsAt, choices}
	POST /vote          → {accepted:true} (token in body)
	GET  /results       → {totalVotes, results}

A user may revote any number of times before the deadline; each vote
replaces the previous one.

# Round Replacement

	POST /session        → replace from an explicit payload
	POST /session/reload → re-read .env/environment and replace

Both discard every existing ballot atomically. The old round and its
votes are gone for good once the response returns.

# Error Mapping

Core validation errors map to stable statuses:

	session.ErrVotingClosed  → 403
	session.ErrInvalidChoice → 404
	session.ErrUnknownUser   → 401
	malformed input          → 400
	storage faults           → 500 (retryable)
*/
package handlers
