package session

import (
	"context"
	"strconv"
	"time"

	"github.com/Mathisgmn/EasyQuizz/cliparse"
	"github.com/Mathisgmn/EasyQuizz/models"
)

// QRCodePath is the stable resource path for a choice's QR code image.
func QRCodePath(choiceID int) string {
	return "/qrcodes/" + strconv.Itoa(choiceID)
}

// Resolver computes the effective round. When the store holds a round it
// is returned verbatim; otherwise a view is synthesized from environment
// defaults without persisting anything, so reads work before any round
// has ever been created.
type Resolver struct {
	store    *Store
	defaults func() cliparse.RoundDefaults
	now      func() time.Time
}

func NewResolver(store *Store, defaults func() cliparse.RoundDefaults) *Resolver {
	return &Resolver{store: store, defaults: defaults, now: time.Now}
}

// ResolveActiveRound returns the caller-facing view of the current round.
func (r *Resolver) ResolveActiveRound(ctx context.Context) (models.RoundView, error) {
	round, choices, err := r.store.ActiveRound(ctx)
	if err != nil {
		return models.RoundView{}, err
	}

	return r.roundView(round, choices), nil
}

// roundView builds the caller-facing view: the stored round verbatim, or
// a view synthesized from defaults when round is nil.
func (r *Resolver) roundView(round *models.Round, choices []models.Choice) models.RoundView {
	if round != nil {
		view := models.RoundView{
			SessionID:  round.ID,
			Question:   round.Question,
			VoteEndsAt: round.EndsAt,
			Choices:    make([]models.ChoiceView, 0, len(choices)),
		}
		for _, c := range choices {
			view.Choices = append(view.Choices, models.ChoiceView{
				ID:        c.ID,
				Label:     c.Label,
				QRCodeURL: QRCodePath(c.ID),
			})
		}
		return view
	}

	// Empty store: synthesize from defaults. SessionID stays 0 to mark
	// the view as not persisted.
	d := r.defaults()
	view := models.RoundView{
		Question:   d.Question,
		VoteEndsAt: cliparse.ResolveVoteEndsAt(d, r.now()),
		Choices:    make([]models.ChoiceView, 0, len(d.Labels)),
	}
	for i, label := range d.Labels {
		id := i + 1
		view.Choices = append(view.Choices, models.ChoiceView{
			ID:        id,
			Label:     label,
			QRCodeURL: QRCodePath(id),
		})
	}

	return view
}

// ResolveDeadline turns an explicit replacement request into an absolute
// deadline. The rules run once, in order: request timestamp, request
// duration, then the environment default chain. Unparseable input falls
// through; there is no error state.
func (r *Resolver) ResolveDeadline(expiryDate, duration string) time.Time {
	now := r.now()

	if expiryDate != "" {
		if ts, err := time.Parse(time.RFC3339, expiryDate); err == nil {
			return ts
		}
	}

	if duration != "" {
		if dur, ok := cliparse.ParseVoteDuration(duration); ok {
			return now.Add(dur)
		}
	}

	return cliparse.ResolveVoteEndsAt(r.defaults(), now)
}

// ReplaceFromDefaults creates a fresh round from the current environment
// defaults, discarding the old round and all its ballots. Backs the
// POST /session/reload reset semantic.
func (r *Resolver) ReplaceFromDefaults(ctx context.Context) (models.RoundView, error) {
	d := r.defaults()

	choices := make([]models.Choice, 0, len(d.Labels))
	for i, label := range d.Labels {
		choices = append(choices, models.Choice{ID: i + 1, Label: label})
	}

	endsAt := cliparse.ResolveVoteEndsAt(d, r.now())
	if _, err := r.store.ReplaceRound(ctx, d.Question, endsAt, choices); err != nil {
		return models.RoundView{}, err
	}

	return r.ResolveActiveRound(ctx)
}

// ComputeResults joins live ballot counts against the resolved round's
// choice list. The choice list is the reporting universe: a choice with
// no ballots still appears with a zero count, and output order follows
// the resolver's ascending id order so repeated calls are stable. Round,
// choices, and counts come from a single store snapshot, so a concurrent
// replacement can never pair one round's universe with another's counts.
func (r *Resolver) ComputeResults(ctx context.Context) (models.Results, error) {
	round, choices, counts, err := r.store.ActiveRoundTally(ctx)
	if err != nil {
		return models.Results{}, err
	}

	view := r.roundView(round, choices)

	results := models.Results{Results: make([]models.ChoiceCount, 0, len(view.Choices))}
	for _, c := range view.Choices {
		count := counts[c.ID]
		results.Results = append(results.Results, models.ChoiceCount{
			ChoiceID: c.ID,
			Label:    c.Label,
			Count:    count,
		})
		results.TotalVotes += count
	}

	return results, nil
}
