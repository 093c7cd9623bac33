/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables.

# Tables

The schema includes:

  - users: registered voters with password hashes
  - choices: the active round's choice set
  - vote_session: the voting round (question, deadline)
  - votes: one ballot per user per round

# Relationships

	vote_session 1──* votes
	users 1──* votes
	choices 1──* votes

votes carries UNIQUE (user_id, vote_session_id) - the storage-level
guarantee that a user holds at most one live ballot per round. Ballots
cascade-delete with their round, so replacing the round atomically
discards every prior ballot.
*/
package db
