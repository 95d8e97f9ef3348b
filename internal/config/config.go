package config

import (
	"os"
	"strings"
)

// AuthScheme selects how caller identity is established.
type AuthScheme string

const (
	AuthHeader AuthScheme = "header" // X-User-Id / X-Username headers
	AuthJWT    AuthScheme = "jwt"    // Bearer token
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	CORSOrigins []string

	LogLevel  string
	LogPretty bool

	Auth           AuthScheme
	AuthHMACSecret string

	// Dev login surface: POST /auth/token issues a JWT when enabled.
	EnableLocalAuth bool
	DevUser         string
	DevPassHash     string // bcrypt
}

func FromEnv() Config {
	return Config{
		HTTPAddr:        envOr("HTTP_ADDR", ":8080"),
		DBDriver:        envOr("DB_DRIVER", "sqlite"),
		DBDSN:           envOr("DB_DSN", ""),
		CORSOrigins:     csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		LogPretty:       envBool("LOG_PRETTY", true),
		Auth:            AuthScheme(envOr("AUTH_SCHEME", string(AuthHeader))),
		AuthHMACSecret:  envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		EnableLocalAuth: envBool("ENABLE_LOCAL_AUTH", false),
		DevUser:         envOr("DEV_USER", "dev"),
		DevPassHash:     os.Getenv("DEV_PASS_HASH"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
