package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/quiz-trainer/internal/config"
	"github.com/gokatarajesh/quiz-trainer/internal/question"
	"github.com/gokatarajesh/quiz-trainer/internal/store"
)

type harness struct {
	cfg *config.App
	out bytes.Buffer
	err bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	return &harness{cfg: &config.App{
		Name:     "quiz-trainer",
		Env:      "test",
		LogLevel: "error",
		Store: config.Store{
			QuestionsFile: filepath.Join(dir, "questions.json"),
			ResultsFile:   filepath.Join(dir, "results.txt"),
		},
		UI:     config.UI{NoColor: true},
		Random: config.Random{Seed: 1},
	}}
}

func (h *harness) run(input string, args ...string) int {
	h.out.Reset()
	h.err.Reset()
	return Run(context.Background(), h.cfg, args, strings.NewReader(input), &h.out, &h.err)
}

// seed writes n free-form questions that all share the answer "x".
func (h *harness) seed(t *testing.T, n int) {
	t.Helper()
	qs, err := store.Open(h.cfg.Store.QuestionsFile, zerolog.Nop())
	require.NoError(t, err)
	for i := 1; i <= n; i++ {
		require.NoError(t, qs.Add(question.New(i, fmt.Sprintf("question %d", i), "x", question.TypeFreeForm, nil)))
	}
}

func (h *harness) stored(t *testing.T) []question.Question {
	t.Helper()
	qs, err := store.Open(h.cfg.Store.QuestionsFile, zerolog.Nop())
	require.NoError(t, err)
	return qs.All()
}

func TestAddWithFlags(t *testing.T) {
	h := newHarness(t)

	code := h.run("", "add", "--type", "mc", "--text", "2+2?", "--options", "3, 4, 5, 6", "--answer", "4")
	require.Equal(t, 0, code, h.err.String())
	assert.Contains(t, h.out.String(), "Question 1 added successfully!")

	all := h.stored(t)
	require.Len(t, all, 1)
	assert.Equal(t, []string{"3", "4", "5", "6"}, all[0].Options)
	assert.Equal(t, question.TypeMultipleChoice, all[0].Type)
}

func TestAddWithFlagsRejectsWrongOptionCount(t *testing.T) {
	h := newHarness(t)

	code := h.run("", "add", "--type", "1", "--text", "2+2?", "--options", "3,4,5", "--answer", "4")
	assert.Equal(t, 1, code)
	assert.Contains(t, h.err.String(), "please provide exactly 4 options")
	assert.Empty(t, h.stored(t))
}

func TestAddInteractiveRepromptsForOptions(t *testing.T) {
	h := newHarness(t)

	code := h.run("1\n2+2?\n3,4\n3,4,5,6\n4\n", "add")
	require.Equal(t, 0, code, h.err.String())
	assert.Contains(t, h.out.String(), "Please provide exactly 4 options")
	assert.Len(t, h.stored(t), 1)
}

func TestToggleCommand(t *testing.T) {
	h := newHarness(t)
	h.seed(t, 1)

	require.Equal(t, 0, h.run("", "toggle", "1"))
	assert.Contains(t, h.out.String(), "Question 1 is now disabled")
	assert.False(t, h.stored(t)[0].Active)

	require.Equal(t, 0, h.run("", "toggle", "1"))
	assert.Contains(t, h.out.String(), "Question 1 is now active")
}

func TestToggleUnknownQuestion(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, 1, h.run("", "toggle", "9"))
	assert.Contains(t, h.err.String(), "question 9 not found")
}

func TestStatsCommand(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("", "stats"))
	assert.Contains(t, h.out.String(), "No questions yet.")

	h.seed(t, 2)
	require.Equal(t, 0, h.run("", "stats"))
	assert.Contains(t, h.out.String(), "question 2")
	assert.Contains(t, h.out.String(), "2 questions, 2 active")
}

func TestTestCommandWritesResult(t *testing.T) {
	h := newHarness(t)
	h.seed(t, 5)

	code := h.run("5\nx\nx\nX\nx\nx\n", "test")
	require.Equal(t, 0, code, h.err.String())
	assert.Contains(t, h.out.String(), "Your score is 5/5 (100%)")

	data, err := os.ReadFile(h.cfg.Store.ResultsFile)
	require.NoError(t, err)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} - Score: 5/5\n$`, string(data))

	require.Equal(t, 0, h.run("", "history"))
	assert.Contains(t, h.out.String(), "Score: 5/5")
}

func TestTestCommandNeedsFiveActive(t *testing.T) {
	h := newHarness(t)
	h.seed(t, 4)

	assert.Equal(t, 1, h.run("", "test"))
	assert.Contains(t, h.err.String(), "add at least 5 active questions")
	for _, q := range h.stored(t) {
		assert.Zero(t, q.ShowCount)
	}
}

func TestPracticeCommandExits(t *testing.T) {
	h := newHarness(t)
	h.seed(t, 5)

	code := h.run("x\nwrong\nexit\n", "practice")
	require.Equal(t, 0, code, h.err.String())
	assert.Contains(t, h.out.String(), "Practice finished: 1/2 correct")
	assert.Contains(t, h.out.String(), "or type 'exit' to quit")

	shown := 0
	for _, q := range h.stored(t) {
		shown += q.ShowCount
	}
	assert.Equal(t, 2, shown)
}

func TestHistoryEmpty(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, 0, h.run("", "history"))
	assert.Contains(t, h.out.String(), "No test results yet.")
}

func TestMenuAddThenExit(t *testing.T) {
	h := newHarness(t)

	code := h.run("1\n2\nkeyword for functions?\ndef\n7\n")
	require.Equal(t, 0, code, h.err.String())
	assert.Contains(t, h.out.String(), "Question 1 added successfully!")
	assert.Contains(t, h.out.String(), "Goodbye!")
	assert.Len(t, h.stored(t), 1)
}

func TestMenuRecoversFromMistakes(t *testing.T) {
	h := newHarness(t)

	code := h.run("9\n3\n2\nabc\n1\n3\n7\n")
	require.Equal(t, 0, code, h.err.String())
	out := h.out.String()
	assert.Contains(t, out, "Invalid choice")
	assert.Contains(t, out, "add at least 5 active questions")
	assert.Contains(t, out, "question id must be an integer")
	assert.Contains(t, out, "invalid choice, type '1' for multiple choice or '2' for free form")
	assert.Contains(t, out, "Goodbye!")
}

func TestMenuTestFlow(t *testing.T) {
	h := newHarness(t)
	h.seed(t, 6)

	code := h.run("4\n2\n5\nx\nx\nx\nwrong\nx\n7\n")
	require.Equal(t, 0, code, h.err.String())
	out := h.out.String()
	assert.Contains(t, out, "enter a number between 5 and 6")
	assert.Contains(t, out, "Your score is 4/5 (80%)")
	assert.Contains(t, out, "Wrong! The correct answer is: x")
}

func TestMenuEndOfInput(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, 0, h.run(""))
}

func TestMenuAbortedTestLeavesNoResult(t *testing.T) {
	h := newHarness(t)
	h.seed(t, 5)

	code := h.run("4\n5\nx\nx\n")
	assert.Equal(t, 0, code)
	assert.Contains(t, h.out.String(), "test aborted before completion")

	_, err := os.Stat(h.cfg.Store.ResultsFile)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestQuestionsFlagOverridesConfig(t *testing.T) {
	h := newHarness(t)
	other := filepath.Join(t.TempDir(), "other.json")

	require.Equal(t, 0, h.run("", "--questions", other, "add", "--type", "ff", "--text", "q", "--answer", "a"))
	_, err := os.Stat(other)
	assert.NoError(t, err)
}
