/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterRequest / LoginRequest: username, password
  - ReplaceSessionRequest: question, voteEndsAt|duration, choices
  - VoteRequest: choiceId, userToken

# Response Types

Types for JSON responses:

  - TokenResponse: token
  - VoteResponse: accepted
  - Results: totalVotes, results ([{choiceId, label, count}])
  - ErrorResponse: error, message

# Domain Types

Internal data structures mapped to storage rows:

  - User: registered voter with password hash
  - Round: one voting session (question, deadline)
  - Choice: a votable option in the active round

Ballots have no model type: the store writes them with a keyed upsert and
reads them only as aggregated counts, so no row ever round-trips whole.

# View Types

RoundView is the caller-facing shape of the active round. It carries a
SessionID of 0 when no round is persisted and the view was synthesized
from environment defaults. Each ChoiceView includes the stable QR code
resource path for its id.
*/
package models
