// Package config loads process configuration from CELULA_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ErrWeakSecret is returned when a production process runs with a default secret.
var ErrWeakSecret = errors.New("a secret is unset or left at its development default")

// Development defaults. Production refuses to start with these.
const (
	devCSRFKey   = "celula-dev-csrf-key-32-bytes!!!!"
	devJWTSecret = "celula-dev-jwt-secret"
)

// Shared holds settings used by both binaries.
type Shared struct {
	Env           string        `env:"CELULA_ENV" envDefault:"development"`
	OTELEndpoint  string        `env:"CELULA_OTEL_ENDPOINT"`
	SlowRequestMS int           `env:"CELULA_SLOW_REQUEST_MS" envDefault:"500"`
	SlowQueryMS   int           `env:"CELULA_SLOW_QUERY_MS" envDefault:"100"`
	ShutdownGrace time.Duration `env:"CELULA_SHUTDOWN_GRACE" envDefault:"10s"`
}

// IsProduction reports whether the process runs in production mode.
func (s Shared) IsProduction() bool {
	return s.Env == "production"
}

// SlowRequest is the threshold above which a request is logged as slow.
func (s Shared) SlowRequest() time.Duration {
	return time.Duration(s.SlowRequestMS) * time.Millisecond
}

// SlowQuery is the threshold above which a query or upstream call is logged as slow.
func (s Shared) SlowQuery() time.Duration {
	return time.Duration(s.SlowQueryMS) * time.Millisecond
}

// Web configures the server-rendered front end.
type Web struct {
	Shared
	Addr            string `env:"CELULA_ADDR" envDefault:":8080"`
	APIURL          string `env:"CELULA_API_URL" envDefault:"http://127.0.0.1:8000"`
	CelulaID        int64  `env:"CELULA_ID" envDefault:"1"`
	APIToken        string `env:"CELULA_API_TOKEN"`
	CSRFKey         string `env:"CELULA_CSRF_KEY" envDefault:"celula-dev-csrf-key-32-bytes!!!!"`
	Lang            string `env:"CELULA_LANG" envDefault:"pt-BR"`
	ResendKey       string `env:"CELULA_RESEND_KEY"`
	MailFrom        string `env:"CELULA_MAIL_FROM" envDefault:"Célula <relatorios@celula.local>"`
	SupervisorEmail string `env:"CELULA_SUPERVISOR_EMAIL"`
}

// API configures the reference REST backend.
type API struct {
	Shared
	Addr          string        `env:"CELULA_API_ADDR" envDefault:":8000"`
	DBPath        string        `env:"CELULA_DB_PATH" envDefault:"celula.db"`
	JWTSecret     string        `env:"CELULA_JWT_SECRET" envDefault:"celula-dev-jwt-secret"`
	TokenTTL      time.Duration `env:"CELULA_TOKEN_TTL" envDefault:"12h"`
	AdminEmail    string        `env:"CELULA_ADMIN_EMAIL" envDefault:"admin@celula.local"`
	AdminPassword string        `env:"CELULA_ADMIN_PASSWORD" envDefault:"celula-admin-123"`
	CelulaID      int64         `env:"CELULA_ID" envDefault:"1"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadWeb parses the front end configuration.
// POST: production mode with the development CSRF key is an error
func LoadWeb() (Web, error) {
	var cfg Web
	if err := ParseEnv(&cfg); err != nil {
		return Web{}, err
	}
	if cfg.IsProduction() && (cfg.CSRFKey == devCSRFKey || len(cfg.CSRFKey) < 32) {
		return Web{}, fmt.Errorf("CELULA_CSRF_KEY: %w", ErrWeakSecret)
	}
	return cfg, nil
}

// LoadAPI parses the backend configuration.
// POST: production mode with the development JWT secret is an error
func LoadAPI() (API, error) {
	var cfg API
	if err := ParseEnv(&cfg); err != nil {
		return API{}, err
	}
	if cfg.IsProduction() && (cfg.JWTSecret == devJWTSecret || cfg.JWTSecret == "") {
		return API{}, fmt.Errorf("CELULA_JWT_SECRET: %w", ErrWeakSecret)
	}
	return cfg, nil
}
