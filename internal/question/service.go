package question

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Bank is the persistence contract the service needs (implemented by store.QuestionStore).
type Bank interface {
	NextID() int
	Add(q Question) error
	ToggleActive(id int) (Question, error)
	All() []Question
}

// Draft carries the raw fields collected for a new question.
type Draft struct {
	Type    Type
	Text    string
	Options []string
	Answer  string
}

// Service exposes the question bank operations the menu layer invokes.
type Service struct {
	bank   Bank
	logger zerolog.Logger
}

// NewService creates a service over bank.
func NewService(bank Bank, logger zerolog.Logger) *Service {
	return &Service{bank: bank, logger: logger}
}

// AddQuestion validates the draft, assigns the next id and persists it.
func (s *Service) AddQuestion(ctx context.Context, d Draft) (Question, error) {
	if !d.Type.Valid() {
		return Question{}, validationError("type", "select 1 for multiple choice or 2 for free form")
	}
	if d.Type == TypeMultipleChoice {
		if len(d.Options) != OptionCount {
			return Question{}, validationError("options", "please provide exactly 4 options")
		}
		for _, opt := range d.Options {
			if strings.TrimSpace(opt) == "" {
				return Question{}, validationError("options", "options cannot be empty")
			}
		}
	}

	q := New(s.bank.NextID(), d.Text, d.Answer, d.Type, d.Options)
	if err := q.Validate(); err != nil {
		return Question{}, err
	}
	if err := s.bank.Add(q); err != nil {
		return Question{}, fmt.Errorf("add question: %w", err)
	}
	s.logger.Info().Int("question_id", q.ID).Str("type", string(q.Type)).Msg("question added")
	return q, nil
}

// ToggleActive flips the active flag of question id.
func (s *Service) ToggleActive(ctx context.Context, id int) (Question, error) {
	q, err := s.bank.ToggleActive(id)
	if err != nil {
		return Question{}, err
	}
	s.logger.Info().Int("question_id", q.ID).Bool("active", q.Active).Msg("question toggled")
	return q, nil
}

// Stat is one row of the statistics report.
type Stat struct {
	ID           int
	Text         string
	Type         Type
	Active       bool
	ShowCount    int
	CorrectCount int
	CorrectRate  float64
	Weight       int
}

// Report aggregates per-question performance.
type Report struct {
	Questions   []Stat
	Total       int
	Active      int
	Shown       int
	Correct     int
	CorrectRate float64
}

// Statistics builds the per-question report in id order.
func (s *Service) Statistics(ctx context.Context) Report {
	all := s.bank.All()
	report := Report{Questions: make([]Stat, 0, len(all)), Total: len(all)}
	for _, q := range all {
		report.Questions = append(report.Questions, Stat{
			ID:           q.ID,
			Text:         q.Text,
			Type:         q.Type,
			Active:       q.Active,
			ShowCount:    q.ShowCount,
			CorrectCount: q.CorrectCount,
			CorrectRate:  q.CorrectRate(),
			Weight:       q.Weight(),
		})
		if q.Active {
			report.Active++
		}
		report.Shown += q.ShowCount
		report.Correct += q.CorrectCount
	}
	if report.Shown > 0 {
		report.CorrectRate = float64(report.Correct) / float64(report.Shown) * 100
	}
	return report
}

// ParseID converts raw user input into a question id.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, validationError("id", "question id must be an integer")
	}
	if id <= 0 {
		return 0, validationError("id", "question id must be positive")
	}
	return id, nil
}

// ParseType accepts the menu choices "1"/"2" as well as the type names.
func ParseType(raw string) (Type, error) {
	switch Normalize(raw) {
	case "1", string(TypeMultipleChoice), "mc":
		return TypeMultipleChoice, nil
	case "2", string(TypeFreeForm), "ff":
		return TypeFreeForm, nil
	default:
		return "", validationError("type", "invalid choice, type '1' for multiple choice or '2' for free form")
	}
}

// SplitOptions splits a comma-separated option list, trimming each entry.
func SplitOptions(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
