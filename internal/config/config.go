package config

import (
	"os"
	"strings"
	"time"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr string

	// Postgres DSN. Empty => in-memory storage (dev mode).
	DBDSN string

	// JWT verification. Empty secret => dev mode, X-Debug-* headers.
	JWTSecret   []byte
	JWTIssuer   string
	JWTAudience string

	// Identity provider endpoint for role grants. Empty => local in-memory
	// granter.
	IdentityBaseURL string
	IdentityAPIKey  string
	IdentityTimeout time.Duration

	AllowedOrigins []string
}

// Load reads environment variables and returns a fully populated Config.
func Load() Config {
	identityTimeout := 5 * time.Second
	if raw := strings.TrimSpace(os.Getenv("IDENTITY_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			identityTimeout = parsed
		}
	}

	addr := envOrDefault("HTTP_ADDR", ":8080")
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		addr = ":" + v
	}

	return Config{
		Addr:            addr,
		DBDSN:           strings.TrimSpace(os.Getenv("DB_DSN")),
		JWTSecret:       []byte(strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET"))),
		JWTIssuer:       envOrDefault("AUTH_JWT_ISSUER", "pet-adoption-auth"),
		JWTAudience:     strings.TrimSpace(os.Getenv("AUTH_JWT_AUDIENCE")),
		IdentityBaseURL: strings.TrimSpace(os.Getenv("IDENTITY_BASE_URL")),
		IdentityAPIKey:  strings.TrimSpace(os.Getenv("IDENTITY_API_KEY")),
		IdentityTimeout: identityTimeout,
		AllowedOrigins:  parseList("API_ALLOWED_ORIGINS", []string{"*"}),
	}
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
