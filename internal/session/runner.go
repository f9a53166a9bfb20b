package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-trainer/internal/question"
	"github.com/gokatarajesh/quiz-trainer/internal/results"
	"github.com/gokatarajesh/quiz-trainer/internal/selection"
)

// Mode names a session flow.
type Mode string

const (
	ModeTest     Mode = "test"
	ModePractice Mode = "practice"
)

// ExitCommand ends a practice session when given instead of an answer.
const ExitCommand = "exit"

// ErrAborted is returned when input ends before a test is complete.
var ErrAborted = errors.New("test aborted before completion")

// Presenter is the interactive side of a session: it collects raw input and
// shows outcomes. Returning io.EOF from an Ask method ends the session.
type Presenter interface {
	AskCount(ctx context.Context, min, max int) (string, error)
	AskAnswer(ctx context.Context, q question.Question, mode Mode) (string, error)
	ShowVerdict(ctx context.Context, q question.Question, v question.Verdict)
	ShowSummary(ctx context.Context, s Summary)
	ShowError(ctx context.Context, err error)
}

// Store is the slice of the question store a session reads and mutates.
type Store interface {
	All() []question.Question
	RecordAnswer(id int, correct bool) (question.Question, error)
}

// ResultsLog receives one entry per completed test.
type ResultsLog interface {
	Append(e results.Entry) error
}

// Observer is notified of session outcomes (implemented by metrics.Metrics).
type Observer interface {
	AnswerRecorded(mode string, correct bool)
	InvalidQuestion(mode string)
	SessionFinished(mode string, correct, total int)
}

// Runner drives test and practice sessions against one store.
type Runner struct {
	store     Store
	engine    *selection.Engine
	results   ResultsLog
	presenter Presenter
	observer  Observer
	logger    zerolog.Logger
	now       func() time.Time
}

// Option customizes a Runner.
type Option func(*Runner)

// WithObserver attaches an outcome observer.
func WithObserver(o Observer) Option {
	return func(r *Runner) { r.observer = o }
}

// WithClock replaces time.Now for results timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// NewRunner wires a runner; time.Now and a no-op observer are the defaults.
func NewRunner(store Store, engine *selection.Engine, log ResultsLog, presenter Presenter, logger zerolog.Logger, opts ...Option) *Runner {
	r := &Runner{
		store:     store,
		engine:    engine,
		results:   log,
		presenter: presenter,
		observer:  nopObserver{},
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunTest runs one fixed-length assessment: AwaitingCount, Presenting(1..k),
// Summarizing. There is no early exit; the results line is only written once
// every sampled question has been presented.
func (r *Runner) RunTest(ctx context.Context) (Summary, error) {
	summary := Summary{Mode: ModeTest}
	active := selection.Active(r.store.All())
	if err := selection.CheckActive(active); err != nil {
		return summary, err
	}
	logger := r.sessionLogger(ModeTest)

	k, err := r.awaitCount(ctx, len(active))
	if err != nil {
		return summary, r.abort(logger, err)
	}
	picked, err := r.engine.Sample(active, k)
	if err != nil {
		return summary, err
	}
	logger.Info().Int("count", k).Msg("test started")

	for i, q := range picked {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		raw, err := r.presenter.AskAnswer(ctx, q, ModeTest)
		if err != nil {
			return summary, r.abort(logger, err)
		}
		correct, err := r.present(ctx, logger, ModeTest, q, raw)
		if errors.Is(err, question.ErrInvalidQuestionData) {
			summary.Skipped++
			continue
		}
		if err != nil {
			return summary, err
		}
		summary.Record(correct)
		logger.Debug().Int("position", i+1).Int("question_id", q.ID).Bool("correct", correct).Msg("answer recorded")
	}

	r.presenter.ShowSummary(ctx, summary)
	r.observer.SessionFinished(string(ModeTest), summary.Correct, summary.Total)
	entry := results.Entry{At: r.now(), Correct: summary.Correct, Total: summary.Total}
	if err := r.results.Append(entry); err != nil {
		logger.Error().Err(err).Msg("failed to append results log")
		return summary, fmt.Errorf("save test result: %w", err)
	}
	logger.Info().Int("correct", summary.Correct).Int("total", summary.Total).Msg("test finished")
	return summary, nil
}

// RunPractice presents weighted picks until the user answers "exit" or input ends.
func (r *Runner) RunPractice(ctx context.Context) (Summary, error) {
	summary := Summary{Mode: ModePractice}
	if err := selection.CheckActive(selection.Active(r.store.All())); err != nil {
		return summary, err
	}
	logger := r.sessionLogger(ModePractice)
	logger.Info().Msg("practice started")
	defer func() {
		r.observer.SessionFinished(string(ModePractice), summary.Correct, summary.Total)
		logger.Info().Int("correct", summary.Correct).Int("total", summary.Total).Msg("practice finished")
	}()

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		// re-read every round so weights reflect the answers just recorded
		q, err := r.engine.Pick(selection.Active(r.store.All()))
		if err != nil {
			return summary, err
		}
		raw, err := r.presenter.AskAnswer(ctx, q, ModePractice)
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		if err != nil {
			return summary, err
		}
		if IsExit(raw) {
			return summary, nil
		}
		correct, err := r.present(ctx, logger, ModePractice, q, raw)
		if errors.Is(err, question.ErrInvalidQuestionData) {
			summary.Skipped++
			continue
		}
		if err != nil {
			return summary, err
		}
		summary.Record(correct)
	}
}

// IsExit reports whether raw is the practice exit signal.
func IsExit(raw string) bool {
	return question.Normalize(raw) == ExitCommand
}

// ParseCount converts raw input into a test length between MinActiveQuestions and max.
func ParseCount(raw string, max int) (int, error) {
	k, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, question.ValidationError("count", "question count must be a number")
	}
	if err := selection.ValidateCount(k, max); err != nil {
		return 0, err
	}
	return k, nil
}

func (r *Runner) awaitCount(ctx context.Context, available int) (int, error) {
	for {
		raw, err := r.presenter.AskCount(ctx, selection.MinActiveQuestions, available)
		if err != nil {
			return 0, err
		}
		k, err := ParseCount(raw, available)
		if err != nil {
			r.presenter.ShowError(ctx, err)
			continue
		}
		return k, nil
	}
}

// present judges raw, persists the counters exactly once and shows the verdict.
// A malformed stored question is reported and leaves its counters untouched.
func (r *Runner) present(ctx context.Context, logger zerolog.Logger, mode Mode, q question.Question, raw string) (bool, error) {
	v, err := question.Evaluate(q, raw)
	if err != nil {
		logger.Error().Err(err).Int("question_id", q.ID).Msg("invalid question data")
		r.observer.InvalidQuestion(string(mode))
		r.presenter.ShowError(ctx, err)
		return false, err
	}
	if _, err := r.store.RecordAnswer(q.ID, v.Correct); err != nil {
		return false, fmt.Errorf("record answer: %w", err)
	}
	r.observer.AnswerRecorded(string(mode), v.Correct)
	r.presenter.ShowVerdict(ctx, q, v)
	return v.Correct, nil
}

func (r *Runner) abort(logger zerolog.Logger, err error) error {
	if errors.Is(err, io.EOF) {
		logger.Warn().Msg("input closed before the test finished")
		return ErrAborted
	}
	return err
}

func (r *Runner) sessionLogger(mode Mode) zerolog.Logger {
	return r.logger.With().
		Str("session_id", uuid.NewString()).
		Str("mode", string(mode)).
		Logger()
}

type nopObserver struct{}

func (nopObserver) AnswerRecorded(string, bool)      {}
func (nopObserver) InvalidQuestion(string)           {}
func (nopObserver) SessionFinished(string, int, int) {}
