package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Server captures gateway-level configuration. The gateway serves one
// traveller or administrator per process; the session file is that
// user's durable credential store.
type Server struct {
	Addr            string        `env:"WISATA_ADDR" envDefault:":4173"`
	Environment     string        `env:"WISATA_ENV" envDefault:"development"`
	LogLevel        string        `env:"WISATA_LOG_LEVEL" envDefault:"info"`
	APIBaseURL      string        `env:"WISATA_API_BASE_URL" envDefault:"http://localhost:8000/api"`
	UpstreamTimeout time.Duration `env:"WISATA_UPSTREAM_TIMEOUT" envDefault:"30s"`
	SessionFile     string        `env:"WISATA_SESSION_FILE"`
	SessionKey      string        `env:"WISATA_SESSION_KEY"`
	HomeCacheTTL    time.Duration `env:"WISATA_HOME_CACHE_TTL" envDefault:"5m"`
}

// Load builds a Server config from environment variables so main stays lean.
func Load() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Server{}, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.SessionFile = filepath.Join(home, ".wisata", "session")
	}
	return cfg, nil
}
