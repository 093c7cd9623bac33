/*
Package router defines HTTP routes for the EasyQuizz API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Authentication (public):

	POST /auth/register - Create user, returns bearer token
	POST /auth/login    - Verify credentials, returns bearer token

Round and tallies (require Authorization: Bearer <token>):

	GET  /config         - Active round view
	POST /session        - Replace round from explicit payload
	POST /session/reload - Replace round from refreshed environment
	GET  /results        - Live per-choice tallies

Voting (token in the request body):

	POST /vote - Cast or change a ballot

QR codes (public):

	GET /qrcodes/{choiceId} - Cached PNG for a choice

# Handler Initialization

The router builds the core once and shares it across handlers:

	store := session.NewStore(db)
	resolver := session.NewResolver(store, cliparse.ReadRoundDefaults)

All handlers talk to the database through the store; none keep state of
their own.
*/
package router
