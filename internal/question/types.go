package question

import (
	"encoding/json"
	"strings"
)

// Type identifies how a question is answered.
type Type string

// Type constants.
const (
	TypeMultipleChoice Type = "multiple_choice"
	TypeFreeForm       Type = "free_form"
)

// OptionCount is the number of options every multiple-choice question carries.
const OptionCount = 4

// Valid reports whether t is a known question type.
func (t Type) Valid() bool {
	return t == TypeMultipleChoice || t == TypeFreeForm
}

// Question is one quiz item plus its lifetime performance counters.
type Question struct {
	ID           int
	Text         string
	Answer       string
	Type         Type
	Options      []string
	Active       bool
	ShowCount    int
	CorrectCount int
}

// New builds an active question with zeroed counters. The answer is stored
// in canonical form and options are trimmed.
func New(id int, text, answer string, typ Type, options []string) Question {
	q := Question{
		ID:      id,
		Text:    strings.TrimSpace(text),
		Answer:  Normalize(answer),
		Type:    typ,
		Options: []string{},
		Active:  true,
	}
	if typ == TypeMultipleChoice {
		for _, opt := range options {
			q.Options = append(q.Options, strings.TrimSpace(opt))
		}
	}
	return q
}

// Normalize returns the canonical (trimmed, lower-cased) form of an answer.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IncrementShown records one more presentation.
func (q *Question) IncrementShown() {
	q.ShowCount++
}

// IncrementCorrect records one more correct answer. The count never passes ShowCount.
func (q *Question) IncrementCorrect() {
	if q.CorrectCount < q.ShowCount {
		q.CorrectCount++
	}
}

// CorrectRate returns correct/shown as a percentage, 0 when never shown.
func (q Question) CorrectRate() float64 {
	if q.ShowCount == 0 {
		return 0
	}
	return float64(q.CorrectCount) / float64(q.ShowCount) * 100
}

// Weight is the practice-mode sampling weight: the all-time miss tally, floored at 1.
func (q Question) Weight() int {
	misses := q.ShowCount - q.CorrectCount
	if misses < 1 {
		return 1
	}
	return misses
}

// Clone returns a copy that shares no memory with q.
func (q Question) Clone() Question {
	if q.Options != nil {
		q.Options = append([]string{}, q.Options...)
	}
	return q
}

// Validate checks the structural invariants of a stored question.
func (q Question) Validate() error {
	if q.ID <= 0 {
		return validationError("id", "id must be a positive integer")
	}
	if strings.TrimSpace(q.Text) == "" {
		return validationError("text", "question text cannot be empty")
	}
	if strings.TrimSpace(q.Answer) == "" {
		return validationError("answer", "answer cannot be empty")
	}
	switch q.Type {
	case TypeMultipleChoice:
		if len(q.Options) != OptionCount {
			return validationError("options", "multiple choice questions need exactly 4 options")
		}
		if _, ok := optionIndex(q.Options, q.Answer); !ok {
			return validationError("answer", "answer should be one of the options")
		}
	case TypeFreeForm:
		if len(q.Options) != 0 {
			return validationError("options", "free form questions take no options")
		}
	default:
		return validationError("type", "unknown question type "+string(q.Type))
	}
	if q.ShowCount < 0 || q.CorrectCount < 0 || q.CorrectCount > q.ShowCount {
		return validationError("correct_count", "counters must satisfy 0 <= correct_count <= show_count")
	}
	return nil
}

// record is the on-disk schema. Pointer fields distinguish missing from zero.
type record struct {
	ID           int      `json:"id"`
	Text         string   `json:"text"`
	Answer       string   `json:"answer"`
	Type         Type     `json:"type"`
	Options      []string `json:"options"`
	Active       *bool    `json:"active,omitempty"`
	ShowCount    *int     `json:"show_count,omitempty"`
	CorrectCount *int     `json:"correct_count,omitempty"`
}

// MarshalJSON writes every field of the record, including zero counters.
func (q Question) MarshalJSON() ([]byte, error) {
	options := q.Options
	if options == nil {
		options = []string{}
	}
	active, shown, correct := q.Active, q.ShowCount, q.CorrectCount
	return json.Marshal(record{
		ID:           q.ID,
		Text:         q.Text,
		Answer:       q.Answer,
		Type:         q.Type,
		Options:      options,
		Active:       &active,
		ShowCount:    &shown,
		CorrectCount: &correct,
	})
}

// UnmarshalJSON decodes a record, defaulting missing fields: active=true,
// counters=0, options empty.
func (q *Question) UnmarshalJSON(data []byte) error {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*q = Question{
		ID:      rec.ID,
		Text:    rec.Text,
		Answer:  rec.Answer,
		Type:    rec.Type,
		Options: rec.Options,
		Active:  true,
	}
	if q.Options == nil {
		q.Options = []string{}
	}
	if rec.Active != nil {
		q.Active = *rec.Active
	}
	if rec.ShowCount != nil {
		q.ShowCount = *rec.ShowCount
	}
	if rec.CorrectCount != nil {
		q.CorrectCount = *rec.CorrectCount
	}
	return nil
}
