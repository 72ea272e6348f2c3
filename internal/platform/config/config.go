package config

import "os"

// Server captures process-level configuration. The core's behavior depends
// only on the signing key; everything else is transport and persistence
// wiring.
type Server struct {
	Addr          string
	LogFormat     string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	DatabaseURL   string
	RedisURL      string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("IMPACT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          addr,
		LogFormat:     os.Getenv("LOG_FORMAT"),
		JWTSigningKey: jwtSigningKey,
		JWTIssuer:     envOr("JWT_ISSUER", "global-impact-platform"),
		JWTAudience:   envOr("JWT_AUDIENCE", "global-impact-platform"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisURL:      os.Getenv("REDIS_URL"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
