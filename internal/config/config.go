package config

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across the trainer.
type App struct {
	Name     string `env:"APP_NAME" envDefault:"quiz-trainer"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`

	Store   Store
	Metrics Metrics
	UI      UI
	Random  Random
}

// Store points at the flat files backing the question bank and the results log.
type Store struct {
	QuestionsFile string `env:"QUIZ_QUESTIONS_FILE" envDefault:"questions.json"`
	ResultsFile   string `env:"QUIZ_RESULTS_FILE" envDefault:"results.txt"`
}

// Metrics configures the prometheus textfile export. Empty path disables it.
type Metrics struct {
	TextfilePath string `env:"QUIZ_METRICS_TEXTFILE" envDefault:""`
}

// UI groups console presentation switches.
type UI struct {
	NoColor bool `env:"NO_COLOR" envDefault:"false"`
}

// Random controls the selection engine seed. Zero seeds from the clock.
type Random struct {
	Seed int64 `env:"QUIZ_SEED" envDefault:"0"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Store.QuestionsFile == "" {
		return nil, fmt.Errorf("parse config: QUIZ_QUESTIONS_FILE must not be empty")
	}
	if cfg.Store.ResultsFile == "" {
		return nil, fmt.Errorf("parse config: QUIZ_RESULTS_FILE must not be empty")
	}
	return cfg, nil
}

// IsProduction reports whether the trainer runs with production defaults.
func (a *App) IsProduction() bool {
	return a.Env == "production"
}
