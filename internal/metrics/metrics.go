package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gokatarajesh/quiz-trainer/internal/question"
)

// Metrics tracks answer and session outcomes on a private registry and, when
// a path is configured, writes them in the node_exporter textfile format.
type Metrics struct {
	registry *prometheus.Registry
	textfile string

	answers   *prometheus.CounterVec
	invalid   *prometheus.CounterVec
	sessions  *prometheus.CounterVec
	scores    prometheus.Histogram
	questions *prometheus.GaugeVec
}

// New registers the trainer collectors. textfile may be empty.
func New(textfile string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		textfile: textfile,
		answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "answers_total",
			Help:      "Answers evaluated, by session mode and outcome.",
		}, []string{"mode", "outcome"}),
		invalid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "invalid_questions_total",
			Help:      "Presentations aborted because the stored question was malformed.",
		}, []string{"mode"}),
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quiz",
			Name:      "sessions_total",
			Help:      "Sessions finished, by mode.",
		}, []string{"mode"}),
		scores: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quiz",
			Name:      "test_score_ratio",
			Help:      "Fraction of correct answers per completed test.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
		questions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "quiz",
			Name:      "questions",
			Help:      "Questions in the bank, by state.",
		}, []string{"state"}),
	}
	m.registry.MustRegister(m.answers, m.invalid, m.sessions, m.scores, m.questions)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// AnswerRecorded counts one evaluated answer.
func (m *Metrics) AnswerRecorded(mode string, correct bool) {
	outcome := "wrong"
	if correct {
		outcome = "correct"
	}
	m.answers.WithLabelValues(mode, outcome).Inc()
}

// InvalidQuestion counts one aborted presentation.
func (m *Metrics) InvalidQuestion(mode string) {
	m.invalid.WithLabelValues(mode).Inc()
}

// SessionFinished counts a finished session; tests with at least one answer
// also contribute their score ratio.
func (m *Metrics) SessionFinished(mode string, correct, total int) {
	m.sessions.WithLabelValues(mode).Inc()
	if mode == "test" && total > 0 {
		m.scores.Observe(float64(correct) / float64(total))
	}
}

// ObserveBank refreshes the question gauges from a bank snapshot.
func (m *Metrics) ObserveBank(all []question.Question) {
	var active, inactive int
	for _, q := range all {
		if q.Active {
			active++
		} else {
			inactive++
		}
	}
	m.questions.WithLabelValues("active").Set(float64(active))
	m.questions.WithLabelValues("inactive").Set(float64(inactive))
}

// Flush writes the textfile when one is configured.
func (m *Metrics) Flush() error {
	if m.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(m.textfile, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
