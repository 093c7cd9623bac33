/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseURL: PostgreSQL connection string (required)
  - JWTSecret: Signing secret for bearer tokens (required)
  - QRStoragePath: Directory for cached QR images (default: qrcodes)

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	JWT_SECRET      → --jwt-secret
	QR_STORAGE_PATH → --qr-path

CLI flags take precedence over environment variables. main loads a .env
file via godotenv before parsing, so a checked-in dev .env works too.

# Round Defaults

ReadRoundDefaults snapshots the environment-level round definition
(VOTE_QUESTION, QR1_LABEL..QR3_LABEL, VOTE_EXPIRY_DATE, VOTE_DURATION).
It is re-read from the live environment on POST /session/reload.

# Deadline Resolution

ResolveVoteEndsAt turns the defaults into an absolute deadline:

 1. VOTE_EXPIRY_DATE, if it parses as RFC 3339
 2. VOTE_DURATION as "<number><d|h|m>" (default unit h), relative to now
 3. the FallbackVoteEndsAt constant

The chain is a total function: unparseable input falls through to the
next rule rather than producing an error.
*/
package cliparse
