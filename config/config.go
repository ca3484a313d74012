package config

import "time"

// Config carries every ambient setting the application reads. It is
// loaded once in main and injected; no other package reads the
// environment directly.
type Config struct {
	Port    string
	BaseURL string

	Database DatabaseConfig
	RedisURL string

	JWTSecret             string
	JWTExpiration         time.Duration
	RefreshExpiration     time.Duration

	GoogleClientID     string
	GoogleClientSecret string

	SuperadminEmail        string
	SuperadminPasswordHash string

	// Session staleness (advisory check) and the store-level TTL are
	// independent knobs; neither derives from the other.
	SessionInactivityLimit time.Duration
	SessionTTL             time.Duration

	InviteTTL time.Duration

	JudgeURL    string
	JudgeAPIKey string
}

func Load() Config {
	return Config{
		Port:    envString("PORT", "8080"),
		BaseURL: envString("BASE_URL", "http://localhost:8080"),

		Database: LoadDatabaseConfig(),
		RedisURL: envString("REDIS_URL", ""),

		JWTSecret:         envString("JWT_SECRET_KEY", ""),
		JWTExpiration:     envDuration("JWT_EXPIRATION", time.Hour),
		RefreshExpiration: envDuration("REFRESH_TOKEN_EXPIRATION", 7*24*time.Hour),

		GoogleClientID:     envString("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: envString("GOOGLE_CLIENT_SECRET", ""),

		SuperadminEmail:        envString("SUPERADMIN_EMAIL", ""),
		SuperadminPasswordHash: envString("SUPERADMIN_PASSWORD_HASH", ""),

		SessionInactivityLimit: envDuration("SESSION_INACTIVITY_LIMIT", 30*time.Minute),
		SessionTTL:             envDuration("SESSION_TTL", 7*24*time.Hour),

		InviteTTL: envDuration("INVITE_TTL", 72*time.Hour),

		JudgeURL:    envString("JUDGE_URL", ""),
		JudgeAPIKey: envString("JUDGE_API_KEY", ""),
	}
}
