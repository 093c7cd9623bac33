package cliparse

import (
	"errors"
	"flag"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// FallbackVoteEndsAt is the last resort of the deadline resolution chain,
// used when neither VOTE_EXPIRY_DATE nor VOTE_DURATION yields an instant.
const FallbackVoteEndsAt = "2026-01-10T10:30:00Z"

const defaultQuestion = "Choisissez votre option"

type Config struct {
	Port          int
	DatabaseURL   string
	JWTSecret     string
	QRStoragePath string
}

// RoundDefaults holds the environment-level round definition used when no
// round exists in the store, and as the payload for POST /session/reload.
type RoundDefaults struct {
	Question   string
	Labels     []string
	ExpiryDate string // raw VOTE_EXPIRY_DATE value, may be unparseable
	Duration   string // raw VOTE_DURATION value, may be unparseable
}

// ParseFlags validates flags and fills in environment fallbacks.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("easyquizz", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")
	fs.StringVar(&cfg.QRStoragePath, "qr-path", "", "Directory for cached QR code images")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 8000 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.QRStoragePath == "" {
		cfg.QRStoragePath = os.Getenv("QR_STORAGE_PATH")
	}
	if cfg.QRStoragePath == "" {
		cfg.QRStoragePath = "qrcodes"
	}

	return cfg, nil
}

// ReadRoundDefaults snapshots the environment-level round definition.
// Called again after godotenv.Overload on /session/reload, so it must not
// cache anything.
func ReadRoundDefaults() RoundDefaults {
	d := RoundDefaults{
		Question:   os.Getenv("VOTE_QUESTION"),
		ExpiryDate: os.Getenv("VOTE_EXPIRY_DATE"),
		Duration:   os.Getenv("VOTE_DURATION"),
	}
	if d.Question == "" {
		d.Question = defaultQuestion
	}

	for i := 1; i <= 3; i++ {
		label := os.Getenv("QR" + strconv.Itoa(i) + "_LABEL")
		if label == "" {
			label = "Choice " + strconv.Itoa(i)
		}
		d.Labels = append(d.Labels, label)
	}

	return d
}

// voteDurationRe accepts "<number><unit>" with an optional decimal part
// and an optional unit (d, h, or m; h when omitted).
var voteDurationRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)([dhmDHM])?$`)

// ParseVoteDuration parses a duration string like "2d", "1.5h", or "45m".
// The second return value reports whether the string was parseable; an
// unparseable duration is not an error, the deadline chain just moves on.
func ParseVoteDuration(value string) (time.Duration, bool) {
	m := voteDurationRe.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return 0, false
	}

	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	// A zero amount would make the deadline "now"; treat it as absent so
	// the chain falls through instead of opening an already-closed round.
	if amount == 0 {
		return 0, false
	}

	unit := time.Hour
	switch strings.ToLower(m[2]) {
	case "d":
		unit = 24 * time.Hour
	case "m":
		unit = time.Minute
	}

	return time.Duration(amount * float64(unit)), true
}

// ResolveVoteEndsAt computes the deadline for a round built from defaults.
// Resolution order: explicit absolute timestamp, then duration relative to
// now, then the hard fallback constant. Total function - unparseable input
// silently falls through to the next rule.
func ResolveVoteEndsAt(d RoundDefaults, now time.Time) time.Time {
	if d.ExpiryDate != "" {
		if ts, err := time.Parse(time.RFC3339, d.ExpiryDate); err == nil {
			return ts
		}
	}

	if d.Duration != "" {
		if dur, ok := ParseVoteDuration(d.Duration); ok {
			return now.Add(dur)
		}
	}

	fallback, _ := time.Parse(time.RFC3339, FallbackVoteEndsAt)
	return fallback
}
