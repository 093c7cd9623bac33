/*
Package auth provides password hashing and bearer token utilities.

# Password Hashing

Passwords are hashed with PBKDF2-SHA512 (100000 iterations, 64-byte key)
over a random 16-byte salt, stored as "salt:hash" in hex:

	stored, err := auth.HashPassword(password)
	ok := auth.VerifyPassword(password, stored)

Verification compares in constant time and treats malformed stored
values as a non-match rather than an error.

# Bearer Tokens

Tokens are HS256-signed JWTs carrying the username, valid for 24 hours:

	token, err := auth.CreateToken(username, cfg.JWTSecret)
	username, err := auth.VerifyToken(token, cfg.JWTSecret)

VerifyToken collapses every failure mode (bad signature, expiry, wrong
algorithm, missing username) into ErrInvalidToken so callers can map it
to a single 401 response.
*/
package auth
