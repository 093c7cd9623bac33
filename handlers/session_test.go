package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mathisgmn/EasyQuizz/cliparse"
	"github.com/Mathisgmn/EasyQuizz/models"
	"github.com/Mathisgmn/EasyQuizz/session"
	"github.com/Mathisgmn/EasyQuizz/testutil"
)

func TestReplaceSession(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	store := session.NewStore(conn)
	resolver := session.NewResolver(store, cliparse.ReadRoundDefaults)
	handler := NewSessionHandler(store, resolver)

	endsAt := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Second)

	req := testutil.MakeRequest("POST", "/session", models.ReplaceSessionRequest{
		Question:   "Best lunch spot?",
		VoteEndsAt: endsAt.Format(time.RFC3339),
		Choices: []models.ChoiceInput{
			{ID: 1, Label: "Pizza"},
			{ID: 2, Label: "Sushi"},
		},
	}, nil)
	w := httptest.NewRecorder()

	handler.ReplaceSession(w, req)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var view models.RoundView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))

	assert.NotZero(t, view.SessionID)
	assert.Equal(t, "Best lunch spot?", view.Question)
	assert.True(t, view.VoteEndsAt.Equal(endsAt))
	require.Len(t, view.Choices, 2)
	assert.Equal(t, "Pizza", view.Choices[0].Label)
	assert.Equal(t, "/qrcodes/1", view.Choices[0].QRCodeURL)
	assert.Equal(t, "/qrcodes/2", view.Choices[1].QRCodeURL)
}

func TestReplaceSessionDiscardsBallots(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	store := session.NewStore(conn)
	resolver := session.NewResolver(store, cliparse.ReadRoundDefaults)
	handler := NewSessionHandler(store, resolver)

	testutil.CreateTestUser(t, conn, "alice", "pass-1234")
	testutil.CreateTestRound(t, conn, "Old question", time.Now().Add(time.Hour), []models.Choice{
		{ID: 1, Label: "A"},
		{ID: 2, Label: "B"},
	})
	require.NoError(t, store.CastVote(context.Background(), "alice", 1))
	require.Equal(t, 1, testutil.CountBallots(t, conn))

	req := testutil.MakeRequest("POST", "/session", models.ReplaceSessionRequest{
		Question: "New question",
		Duration: "30m",
		Choices:  []models.ChoiceInput{{ID: 1, Label: "A"}},
	}, nil)
	w := httptest.NewRecorder()

	handler.ReplaceSession(w, req)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	assert.Equal(t, 0, testutil.CountBallots(t, conn))
}

func TestReplaceSessionValidation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	store := session.NewStore(conn)
	resolver := session.NewResolver(store, cliparse.ReadRoundDefaults)
	handler := NewSessionHandler(store, resolver)

	tests := []struct {
		name        string
		requestBody models.ReplaceSessionRequest
	}{
		{
			name: "missing question",
			requestBody: models.ReplaceSessionRequest{
				Choices: []models.ChoiceInput{{ID: 1, Label: "A"}},
			},
		},
		{
			name:        "no choices",
			requestBody: models.ReplaceSessionRequest{Question: "Q?"},
		},
		{
			name: "non-positive choice id",
			requestBody: models.ReplaceSessionRequest{
				Question: "Q?",
				Choices:  []models.ChoiceInput{{ID: 0, Label: "A"}},
			},
		},
		{
			name: "empty label",
			requestBody: models.ReplaceSessionRequest{
				Question: "Q?",
				Choices:  []models.ChoiceInput{{ID: 1, Label: ""}},
			},
		},
		{
			name: "duplicate choice ids",
			requestBody: models.ReplaceSessionRequest{
				Question: "Q?",
				Choices: []models.ChoiceInput{
					{ID: 1, Label: "A"},
					{ID: 1, Label: "B"},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/session", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.ReplaceSession(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestReplaceSessionMalformedDeadlineFallsBack(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	store := session.NewStore(conn)
	resolver := session.NewResolver(store, cliparse.ReadRoundDefaults)
	handler := NewSessionHandler(store, resolver)

	// Unparseable deadline fields are not an error; the environment
	// default chain picks the deadline instead.
	req := testutil.MakeRequest("POST", "/session", models.ReplaceSessionRequest{
		Question:   "Q?",
		VoteEndsAt: "not-a-timestamp",
		Duration:   "soon",
		Choices:    []models.ChoiceInput{{ID: 1, Label: "A"}},
	}, nil)
	w := httptest.NewRecorder()

	handler.ReplaceSession(w, req)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var view models.RoundView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.False(t, view.VoteEndsAt.IsZero())
}

func TestReloadSession(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	store := session.NewStore(conn)
	resolver := session.NewResolver(store, cliparse.ReadRoundDefaults)
	handler := NewSessionHandler(store, resolver)

	t.Setenv("VOTE_QUESTION", "Question from environment")
	t.Setenv("QR1_LABEL", "Env A")
	t.Setenv("QR2_LABEL", "Env B")
	t.Setenv("QR3_LABEL", "Env C")
	t.Setenv("VOTE_DURATION", "1h")

	req := testutil.MakeRequest("POST", "/session/reload", nil, nil)
	w := httptest.NewRecorder()

	handler.ReloadSession(w, req)

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var view models.RoundView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))

	assert.NotZero(t, view.SessionID)
	assert.Equal(t, "Question from environment", view.Question)
	require.Len(t, view.Choices, 3)
	assert.Equal(t, "Env B", view.Choices[1].Label)

	// The reloaded round is persisted, not just synthesized
	round, _, err := store.ActiveRound(context.Background())
	require.NoError(t, err)
	require.NotNil(t, round)
	assert.Equal(t, "Question from environment", round.Question)
}
