package handlers

import (
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

// TestFullVotingWorkflow walks the complete round lifecycle:
// 1. Register two users
// 2. Replace the round with an explicit question and choices
// 3. Both users vote
// 4. One user revotes
// 5. Verify live tallies
// 6. Replace the round again
// 7. Verify tallies are back to zero
func TestFullVotingWorkflow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	cfg := testutil.GetTestConfig()
	store := session.NewStore(conn)
	resolver := session.NewResolver(store, cliparse.ReadRoundDefaults)

	authHandler := NewAuthHandler(store, cfg)
	sessionHandler := NewSessionHandler(store, resolver)
	voteHandler := NewVoteHandler(store, cfg)
	resultsHandler := NewResultsHandler(resolver)

	// Step 1: Register two users
	tokens := make(map[string]string)
	for _, username := range []string{"alice", "bob"} {
		req := testutil.MakeRequest("POST", "/auth/register", models.RegisterRequest{
			Username: username,
			Password: "integration-pass",
		}, nil)
		w := httptest.NewRecorder()
		authHandler.Register(w, req)
		require.Equal(t, http.StatusOK, w.Code, "register %s: %s", username, w.Body.String())

		var resp models.TokenResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		tokens[username] = resp.Token
	}

	// Step 2: Replace the round
	req := testutil.MakeRequest("POST", "/session", models.ReplaceSessionRequest{
		Question:   "Lunch?",
		VoteEndsAt: time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
		Choices: []models.ChoiceInput{
			{ID: 1, Label: "Pizza"},
			{ID: 2, Label: "Sushi"},
			{ID: 3, Label: "Tacos"},
		},
	}, nil)
	w := httptest.NewRecorder()
	sessionHandler.ReplaceSession(w, req)
	require.Equal(t, http.StatusOK, w.Code, "replace round: %s", w.Body.String())

	var view models.RoundView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	firstSessionID := view.SessionID
	require.NotZero(t, firstSessionID)

	// Step 3: Both users vote
	for username, choiceID := range map[string]int{"alice": 1, "bob": 2} {
		req := testutil.MakeRequest("POST", "/vote", models.VoteRequest{
			ChoiceID:  choiceID,
			UserToken: tokens[username],
		}, nil)
		w := httptest.NewRecorder()
		voteHandler.CastVote(w, req)
		require.Equal(t, http.StatusOK, w.Code, "vote %s: %s", username, w.Body.String())
	}

	// Step 4: Alice changes her mind
	req = testutil.MakeRequest("POST", "/vote", models.VoteRequest{
		ChoiceID:  2,
		UserToken: tokens["alice"],
	}, nil)
	w = httptest.NewRecorder()
	voteHandler.CastVote(w, req)
	require.Equal(t, http.StatusOK, w.Code, "revote: %s", w.Body.String())

	// Step 5: Tallies reflect the revote, not an extra ballot
	req = testutil.MakeRequest("GET", "/results", nil, nil)
	w = httptest.NewRecorder()
	resultsHandler.GetResults(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var results models.Results
	require.NoError(t, json.NewDecoder(w.Body).Decode(&results))
	assert.Equal(t, 2, results.TotalVotes)
	require.Len(t, results.Results, 3)
	assert.Equal(t, 0, results.Results[0].Count)
	assert.Equal(t, 2, results.Results[1].Count)
	assert.Equal(t, 0, results.Results[2].Count)

	// Step 6: Replace the round again
	req = testutil.MakeRequest("POST", "/session", models.ReplaceSessionRequest{
		Question: "Dinner?",
		Duration: "45m",
		Choices: []models.ChoiceInput{
			{ID: 1, Label: "Curry"},
			{ID: 2, Label: "Ramen"},
		},
	}, nil)
	w = httptest.NewRecorder()
	sessionHandler.ReplaceSession(w, req)
	require.Equal(t, http.StatusOK, w.Code, "second replace: %s", w.Body.String())

	require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
	assert.Greater(t, view.SessionID, firstSessionID)
	assert.Equal(t, "Dinner?", view.Question)

	// Step 7: The new round starts clean
	req = testutil.MakeRequest("GET", "/results", nil, nil)
	w = httptest.NewRecorder()
	resultsHandler.GetResults(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.NewDecoder(w.Body).Decode(&results))
	assert.Equal(t, 0, results.TotalVotes)
	require.Len(t, results.Results, 2)
	assert.Equal(t, "Curry", results.Results[0].Label)
	assert.Equal(t, 0, results.Results[0].Count)
	assert.Equal(t, 0, results.Results[1].Count)
	assert.Equal(t, 0, testutil.CountBallots(t, conn))
}
