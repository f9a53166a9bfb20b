package app

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-trainer/internal/config"
	"github.com/gokatarajesh/quiz-trainer/internal/logging"
	"github.com/gokatarajesh/quiz-trainer/internal/metrics"
	"github.com/gokatarajesh/quiz-trainer/internal/question"
	"github.com/gokatarajesh/quiz-trainer/internal/results"
	"github.com/gokatarajesh/quiz-trainer/internal/selection"
	"github.com/gokatarajesh/quiz-trainer/internal/session"
	"github.com/gokatarajesh/quiz-trainer/internal/store"
)

// Application aggregates the trainer's shared infrastructure: logger, question
// store, results log, metrics and the selection engine.
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	store     *store.QuestionStore
	results   *results.Log
	metrics   *metrics.Metrics
	engine    *selection.Engine
	questions *question.Service
}

// New bootstraps the logger and opens the question bank named in cfg.
func New(ctx context.Context, cfg *config.App, logOut io.Writer) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel, logOut)
	logger.Debug().Msg("starting application bootstrap")

	qs, err := store.Open(cfg.Store.QuestionsFile, logger)
	if err != nil {
		return nil, fmt.Errorf("open question store: %w", err)
	}

	seed := cfg.Random.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug().Int64("seed", seed).Msg("selection engine seeded")

	return &Application{
		cfg:       cfg,
		logger:    logger,
		store:     qs,
		results:   results.NewLog(cfg.Store.ResultsFile),
		metrics:   metrics.New(cfg.Metrics.TextfilePath),
		engine:    selection.NewEngine(rand.New(rand.NewSource(seed))),
		questions: question.NewService(qs, logger),
	}, nil
}

// Config returns the configuration the application was built with.
func (a *Application) Config() *config.App {
	return a.cfg
}

// Logger returns the root logger.
func (a *Application) Logger() zerolog.Logger {
	return a.logger
}

// Questions returns the bank service used by the add, toggle and stats commands.
func (a *Application) Questions() *question.Service {
	return a.questions
}

// Results returns the test results log.
func (a *Application) Results() *results.Log {
	return a.results
}

// Runner builds a session runner that talks to the user through p.
func (a *Application) Runner(p session.Presenter) *session.Runner {
	return session.NewRunner(a.store, a.engine, a.results, p, a.logger, session.WithObserver(a.metrics))
}

// Close refreshes the bank gauges and writes the metrics textfile.
func (a *Application) Close() error {
	a.metrics.ObserveBank(a.store.All())
	if err := a.metrics.Flush(); err != nil {
		a.logger.Warn().Err(err).Msg("metrics flush failed")
		return err
	}
	return nil
}
