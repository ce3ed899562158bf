package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the process-wide settings
type Config struct {
	Addr           string   `env:"ADDR" envDefault:":8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ClientBaseURL  string   `env:"CLIENT_BASE_URL" envDefault:"http://localhost:5173"`
	RoundMs        int      `env:"ROUND_MS" envDefault:"4000"`
	IntermissionMs int      `env:"INTERMISSION_MS" envDefault:"1000"`
	PromptsFile    string   `env:"PROMPTS_FILE" envDefault:"data/prompts.json"`
}

// Load reads .env (when present) and then the environment
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
