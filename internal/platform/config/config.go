package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config agrupa toda la configuración del servicio, cargada desde env vars.
type Config struct {
	Port      string `env:"PORT"       envDefault:"8080"`
	AppName   string `env:"APP_NAME"   envDefault:"pet-adoption-api"`
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Si DBDSN está vacío, el servicio corre con repos en memoria (modo dev).
	DBDSN string `env:"DB_DSN"`

	// Servicio externo de sesiones. Si BaseURL o APIKey faltan,
	// el middleware de auth queda en modo dev (X-Debug-User-ID).
	SessionsBaseURL string        `env:"SESSIONS_BASE_URL"`
	SessionsAPIKey  string        `env:"SESSIONS_API_KEY"`
	SessionsTimeout time.Duration `env:"SESSIONS_TIMEOUT" envDefault:"5s"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	return cfg, nil
}
