package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Mathisgmn/EasyQuizz/models"
)

// Validation errors returned by the store. They are terminal for the
// request; only wrapped storage errors are retryable.
var (
	ErrVotingClosed  = errors.New("voting has ended")
	ErrInvalidChoice = errors.New("choice is not in the active round")
	ErrUnknownUser   = errors.New("unknown user")
	ErrUsernameTaken = errors.New("username already taken")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// snapshotRead pins multi-statement reads to a single MVCC snapshot, so a
// concurrent round replacement is either fully visible or not at all.
var snapshotRead = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// Store is the durable source of truth for rounds, choices, ballots, and
// users. No in-process state is authoritative; every handler goes through
// the database so concurrent requests stay consistent.
type Store struct {
	db *sqlx.DB

	// now is swapped out in tests to pin the deadline clock.
	now func() time.Time
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// ActiveRound returns the most recently created round and its choice set
// in ascending choice id order. A nil round means the store is empty -
// that is an answer, not an error.
//
// Both reads run inside one snapshot transaction: a replacement committing
// between them must never leave the caller holding the old question paired
// with the new choice set.
func (s *Store) ActiveRound(ctx context.Context) (*models.Round, []models.Choice, error) {
	tx, err := s.db.BeginTxx(ctx, snapshotRead)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer tx.Rollback()

	round, choices, err := activeRound(ctx, tx)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit read transaction: %w", err)
	}

	return round, choices, nil
}

func activeRound(ctx context.Context, q sqlx.QueryerContext) (*models.Round, []models.Choice, error) {
	var round models.Round
	err := sqlx.GetContext(ctx, q, &round, `
		SELECT id, question, starts_at, ends_at
		FROM vote_session
		ORDER BY id DESC
		LIMIT 1
	`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query active round: %w", err)
	}

	choices := []models.Choice{}
	err = sqlx.SelectContext(ctx, q, &choices, `
		SELECT id, label
		FROM choices
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query choices: %w", err)
	}

	return &round, choices, nil
}

// ReplaceRound atomically swaps in a new round: every existing ballot and
// the old round row are discarded, the choice set is upserted and pruned
// to exactly the new set, and the new round row is inserted. Readers see
// either the whole old round or the whole new one, never a mix.
//
// This is a deliberate reset semantic: ballots cast for the prior round
// are unrecoverable once the transaction commits.
func (s *Store) ReplaceRound(ctx context.Context, question string, endsAt time.Time, choices []models.Choice) (models.Round, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Round{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM votes`); err != nil {
		return models.Round{}, fmt.Errorf("failed to discard ballots: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM vote_session`); err != nil {
		return models.Round{}, fmt.Errorf("failed to discard old round: %w", err)
	}

	ids := make([]int64, 0, len(choices))
	for _, c := range choices {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO choices (id, label)
			VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET label = EXCLUDED.label
		`, c.ID, c.Label)
		if err != nil {
			return models.Round{}, fmt.Errorf("failed to upsert choice %d: %w", c.ID, err)
		}
		ids = append(ids, int64(c.ID))
	}

	// Prune choices that are not part of the new set
	if _, err = tx.ExecContext(ctx, `DELETE FROM choices WHERE NOT (id = ANY($1))`, pq.Array(ids)); err != nil {
		return models.Round{}, fmt.Errorf("failed to prune choices: %w", err)
	}

	round := models.Round{
		Question: question,
		StartsAt: s.now(),
		EndsAt:   endsAt,
	}
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO vote_session (question, starts_at, ends_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, round.Question, round.StartsAt, round.EndsAt).Scan(&round.ID)
	if err != nil {
		return models.Round{}, fmt.Errorf("failed to insert round: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return models.Round{}, fmt.Errorf("failed to commit round replacement: %w", err)
	}

	return round, nil
}

// CastVote records a user's choice for the active round. Preconditions
// are checked in a fixed order: deadline, then choice membership, then
// user identity. A round that exists only as a synthesized default view
// is not open for voting, so an empty store fails with ErrVotingClosed.
//
// Persistence is an upsert keyed on (user_id, vote_session_id): a first
// vote inserts, a revote overwrites choice_id and refreshes the cast
// timestamp. The unique constraint absorbs same-user races - two
// concurrent votes serialize on the key and the later write wins. A vote
// racing a round replacement fails ErrVotingClosed: the foreign key on
// vote_session_id rejects the write once the round is gone, and round ids
// are never reused, so no ballot can land on the wrong round.
func (s *Store) CastVote(ctx context.Context, username string, choiceID int) error {
	round, choices, err := s.ActiveRound(ctx)
	if err != nil {
		return err
	}
	if round == nil || !round.EndsAt.After(s.now()) {
		return ErrVotingClosed
	}

	valid := false
	for _, c := range choices {
		if c.ID == choiceID {
			valid = true
			break
		}
	}
	if !valid {
		return ErrInvalidChoice
	}

	user, err := s.UserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUnknownUser
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO votes (user_id, choice_id, vote_session_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, vote_session_id)
		DO UPDATE SET choice_id = EXCLUDED.choice_id, created_at = NOW()
	`, user.ID, choiceID, round.ID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && string(pgErr.Code) == pgForeignKeyViolation {
			// The round was replaced between the precondition reads and
			// the write; the round this ballot was meant for is gone.
			return ErrVotingClosed
		}
		return fmt.Errorf("failed to record vote: %w", err)
	}

	return nil
}

// ActiveRoundTally returns the active round, its choice set, and live
// ballot counts grouped by choice id, all from one snapshot. A tally pairs
// a choice universe with counts; reading them on separate snapshots could
// pair one round's universe with another round's counts.
//
// Ballots always belong to the active round: replacement deletes them in
// the same transaction, so the counts need no round filter.
func (s *Store) ActiveRoundTally(ctx context.Context) (*models.Round, []models.Choice, map[int]int, error) {
	tx, err := s.db.BeginTxx(ctx, snapshotRead)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer tx.Rollback()

	round, choices, err := activeRound(ctx, tx)
	if err != nil {
		return nil, nil, nil, err
	}

	rows, err := tx.QueryxContext(ctx, `
		SELECT choice_id, COUNT(*)::int AS count
		FROM votes
		GROUP BY choice_id
	`)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to count ballots: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var choiceID, count int
		if err := rows.Scan(&choiceID, &count); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to scan ballot count: %w", err)
		}
		counts[choiceID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read ballot counts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to commit read transaction: %w", err)
	}

	return round, choices, counts, nil
}

// CreateUser registers a new user and returns the assigned id.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (int64, error) {
	var userID int64
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO users (username, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`, username, passwordHash).Scan(&userID)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && string(pgErr.Code) == pgUniqueViolation {
			return 0, ErrUsernameTaken
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return userID, nil
}

// UserByUsername returns the user record, or nil when no such user exists.
func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}
