package selection

import (
	"fmt"

	"github.com/gokatarajesh/quiz-trainer/internal/question"
)

// MinActiveQuestions is the smallest active pool either mode starts with.
const MinActiveQuestions = 5

// Rand is the randomness the engine draws from. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Engine draws questions for test mode (uniform, without replacement) and
// practice mode (weighted by all-time misses).
type Engine struct {
	rng Rand
}

// NewEngine creates an engine over rng.
func NewEngine(rng Rand) *Engine {
	return &Engine{rng: rng}
}

// Active filters all down to the questions eligible for presentation, keeping order.
func Active(all []question.Question) []question.Question {
	active := make([]question.Question, 0, len(all))
	for _, q := range all {
		if q.Active {
			active = append(active, q)
		}
	}
	return active
}

// CheckActive enforces the minimum pool size for a session.
func CheckActive(active []question.Question) error {
	if len(active) < MinActiveQuestions {
		return question.NotEnoughActive(MinActiveQuestions, len(active))
	}
	return nil
}

// ValidateCount checks a test-mode question count against the active pool.
func ValidateCount(k, available int) error {
	if k < MinActiveQuestions || k > available {
		return question.ValidationError("count",
			fmt.Sprintf("enter a number between %d and %d", MinActiveQuestions, available))
	}
	return nil
}

// Sample draws k distinct questions uniformly at random. The returned order
// is the draw order, which is itself uniformly random.
func (e *Engine) Sample(active []question.Question, k int) ([]question.Question, error) {
	if err := CheckActive(active); err != nil {
		return nil, err
	}
	if err := ValidateCount(k, len(active)); err != nil {
		return nil, err
	}

	pool := make([]question.Question, len(active))
	copy(pool, active)
	// partial Fisher-Yates: pool[:i] holds the draws so far
	for i := 0; i < k; i++ {
		j := i + e.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k], nil
}

// Pick draws one question with probability proportional to its Weight.
func (e *Engine) Pick(active []question.Question) (question.Question, error) {
	if err := CheckActive(active); err != nil {
		return question.Question{}, err
	}

	total := 0
	for _, q := range active {
		total += q.Weight()
	}
	r := e.rng.Intn(total)
	for _, q := range active {
		r -= q.Weight()
		if r < 0 {
			return q, nil
		}
	}
	// unreachable while every weight is >= 1
	return active[len(active)-1], nil
}
