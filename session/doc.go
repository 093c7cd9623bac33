/*
Package session is the vote-session lifecycle and ballot-consistency
engine: round storage, round resolution, ballot recording, and tally
aggregation. Everything else in the repository is I/O glue around it.

# Store

Store owns all durable state. The important operations:

	store := session.NewStore(db)
	round, choices, err := store.ActiveRound(ctx)
	round, err = store.ReplaceRound(ctx, question, endsAt, choices)
	err = store.CastVote(ctx, username, choiceID)

ReplaceRound runs as one transaction: discard every ballot, discard the
old round, swap the choice set, insert the new round. Concurrent readers
see the old round or the new one, never a mix. This is a deliberate
reset - prior ballots are gone for good.

Multi-statement reads (ActiveRound, ActiveRoundTally) run on a single
repeatable-read snapshot, so a replacement committing mid-read can never
hand a caller the old question with the new choice set, or one round's
choice universe with another round's counts.

CastVote enforces one ballot per user per round with an upsert against
the votes table's UNIQUE (user_id, vote_session_id) constraint. Races
between votes from the same user serialize on the key and the later
write wins; no duplicate-key error ever reaches the caller. Votes from
different users never contend.

Precondition order is fixed: deadline (ErrVotingClosed), then choice
membership (ErrInvalidChoice), then user identity (ErrUnknownUser).
These are terminal validation errors; wrapped storage errors are the
only retryable kind.

# Resolver

Resolver computes the effective round view. A stored round is returned
verbatim; an empty store yields a view synthesized from environment
defaults (question, choice labels, deadline chain) without persisting
it, so GET /config and GET /results answer before any round exists.
Voting against a synthesized view fails with ErrVotingClosed - ballots
need a durable round row to key on.

ComputeResults reports per-choice counts over the resolved choice list,
zero-filled and in ascending choice id order. TotalVotes equals the
number of distinct users holding a live ballot, since a revote updates
in place.
*/
package session
