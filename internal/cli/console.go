package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/gokatarajesh/quiz-trainer/internal/question"
	"github.com/gokatarajesh/quiz-trainer/internal/results"
	"github.com/gokatarajesh/quiz-trainer/internal/session"
)

// Console reads answers line by line from in and prints prompts and feedback to out.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	style palette
}

var _ session.Presenter = (*Console)(nil)

// NewConsole builds a console reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer, noColor bool) *Console {
	return &Console{
		in:    bufio.NewReader(in),
		out:   out,
		style: newPalette(out, noColor),
	}
}

// Prompt prints label and returns the next input line without its line ending.
// io.EOF is returned only when input ends with nothing left to read.
func (c *Console) Prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Println writes one line of plain output.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// AskCount prompts for the test length.
func (c *Console) AskCount(ctx context.Context, min, max int) (string, error) {
	return c.Prompt(fmt.Sprintf("How many questions (%d-%d)? ", min, max))
}

// AskAnswer prints q with lettered options and reads the answer.
func (c *Console) AskAnswer(ctx context.Context, q question.Question, mode session.Mode) (string, error) {
	fmt.Fprintf(c.out, "\n%s\n%s\n", c.style.title(fmt.Sprintf("Question %d:", q.ID)), q.Text)

	exitHint := ""
	if mode == session.ModePractice {
		exitHint = " or type 'exit' to quit"
	}
	if q.Type == question.TypeMultipleChoice {
		letters := make([]string, 0, len(q.Options))
		for i, opt := range q.Options {
			letter := question.LetterFor(i)
			letters = append(letters, letter)
			fmt.Fprintf(c.out, "\t%s. %s\n", letter, opt)
		}
		return c.Prompt(fmt.Sprintf("Enter your answer (%s%s): ", strings.Join(letters, ", "), exitHint))
	}
	return c.Prompt(fmt.Sprintf("Type your answer%s: ", exitHint))
}

// ShowVerdict prints Correct! or Wrong! with the expected answer.
func (c *Console) ShowVerdict(ctx context.Context, q question.Question, v question.Verdict) {
	switch {
	case v.Correct && v.Letter != "":
		fmt.Fprintf(c.out, "%s Answer is %s) %s\n", c.style.good("Correct!"), v.Letter, v.Answer)
	case v.Correct:
		fmt.Fprintln(c.out, c.style.good("Correct!"))
	case v.Letter != "":
		fmt.Fprintf(c.out, "%s The correct answer is %s) %s\n", c.style.bad("Wrong!"), v.Letter, v.Answer)
	default:
		fmt.Fprintf(c.out, "%s The correct answer is: %s\n", c.style.bad("Wrong!"), v.Answer)
	}
}

// ShowSummary prints the final score.
func (c *Console) ShowSummary(ctx context.Context, s session.Summary) {
	fmt.Fprintf(c.out, "\nYour score is %d/%d (%.0f%%)\n", s.Correct, s.Total, s.Accuracy())
	if s.Skipped > 0 {
		fmt.Fprintln(c.out, c.style.muted(fmt.Sprintf("%d malformed question(s) skipped", s.Skipped)))
	}
}

// ShowError prints the user-facing message of err.
func (c *Console) ShowError(ctx context.Context, err error) {
	fmt.Fprintln(c.out, c.style.bad(describe(err)))
}

// ShowStatistics renders the per-question report as a table.
func (c *Console) ShowStatistics(r question.Report) {
	if r.Total == 0 {
		fmt.Fprintln(c.out, "No questions yet.")
		return
	}
	rows := make([][]string, 0, len(r.Questions))
	for _, s := range r.Questions {
		active := "no"
		if s.Active {
			active = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(s.ID),
			truncate(s.Text, 48),
			string(s.Type),
			active,
			strconv.Itoa(s.ShowCount),
			strconv.Itoa(s.CorrectCount),
			fmt.Sprintf("%.1f%%", s.CorrectRate),
			strconv.Itoa(s.Weight),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Question", "Type", "Active", "Shown", "Correct", "Rate", "Weight").
		Rows(rows...)
	fmt.Fprintln(c.out, t.String())
	fmt.Fprintf(c.out, "%d questions, %d active, %d/%d answered correctly (%.1f%%)\n",
		r.Total, r.Active, r.Correct, r.Shown, r.CorrectRate)
}

// ShowHistory lists past test results, oldest first.
func (c *Console) ShowHistory(entries []results.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No test results yet.")
		return
	}
	for _, e := range entries {
		pct := 0.0
		if e.Total > 0 {
			pct = float64(e.Correct) / float64(e.Total) * 100
		}
		fmt.Fprintf(c.out, "%s %s\n", e.String(), c.style.muted(fmt.Sprintf("(%.0f%%)", pct)))
	}
}

// describe turns a classified error into a user-facing message.
func describe(err error) string {
	var qe *question.Error
	if errors.As(err, &qe) {
		return qe.Message
	}
	return err.Error()
}
