package config

import (
	"log"

	"github.com/caarlos0/env/v11"
)

// Env holds all out-of-band configuration. DBDSN carries the elevated
// access credentials for the order store and must be supplied by the
// operator; the server refuses to start without it.
type Env struct {
	AppAddr string `env:"APP_ADDR" envDefault:":8080"`
	GinMode string `env:"GIN_MODE"`

	// e.g. admin:secret@tcp(127.0.0.1:3306)/notary_admin
	DBDSN string `env:"DB_DSN"`

	// Fallback admin password, overridden by the admin_password row in
	// notary_admin_settings when that row exists and is non-empty.
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"2026"`

	JWTSecret string `env:"JWT_SECRET" envDefault:"notary-admin-change-me"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// LoadEnv parses configuration from the environment.
func LoadEnv() Env {
	var e Env
	if err := env.Parse(&e); err != nil {
		log.Fatalf("failed to parse environment: %v", err)
	}
	if len(e.CORSAllowedOrigins) == 0 {
		e.CORSAllowedOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}
	return e
}
