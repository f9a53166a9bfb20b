package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gokatarajesh/quiz-trainer/internal/app"
	"github.com/gokatarajesh/quiz-trainer/internal/config"
	"github.com/gokatarajesh/quiz-trainer/internal/logging"
	"github.com/gokatarajesh/quiz-trainer/internal/question"
	"github.com/gokatarajesh/quiz-trainer/internal/session"
)

// command holds what every subcommand shares. app and console are built in
// PersistentPreRunE, after flags have been applied to cfg.
type command struct {
	cfg    *config.App
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	app     *app.Application
	console *Console
}

// Run executes the quiz command tree and returns the process exit code.
func Run(ctx context.Context, cfg *config.App, args []string, in io.Reader, out, errOut io.Writer) int {
	c := &command{cfg: cfg, in: in, out: out, errOut: errOut}
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if c.app != nil {
		_ = c.app.Close()
	}
	if err != nil {
		fmt.Fprintln(errOut, "error:", describe(err))
		return 1
	}
	return 0
}

func (c *command) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "quiz",
		Short:             "personal quiz trainer with test and error-weighted practice modes",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		RunE:              c.Menu,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&c.cfg.Store.QuestionsFile, "questions", c.cfg.Store.QuestionsFile, "question bank file")
	flags.StringVar(&c.cfg.Store.ResultsFile, "results", c.cfg.Store.ResultsFile, "test results log")
	flags.BoolVar(&c.cfg.UI.NoColor, "no-color", c.cfg.UI.NoColor, "disable coloured output")

	root.AddCommand(
		c.addCommand(),
		&cobra.Command{
			Use:   "toggle <id>",
			Short: "activate or disable a question",
			Args:  cobra.ExactArgs(1),
			RunE:  c.Toggle,
		},
		&cobra.Command{
			Use:   "practice",
			Short: "answer error-weighted questions until you type exit",
			RunE:  c.Practice,
		},
		&cobra.Command{
			Use:   "test",
			Short: "take a scored test over a uniform sample of active questions",
			RunE:  c.Test,
		},
		&cobra.Command{
			Use:   "stats",
			Short: "show per-question statistics",
			RunE:  c.Stats,
		},
		&cobra.Command{
			Use:   "history",
			Short: "list past test scores",
			RunE:  c.History,
		},
	)
	return root
}

func (c *command) setup(cmd *cobra.Command, args []string) error {
	instance, err := app.New(cmd.Context(), c.cfg, c.errOut)
	if err != nil {
		return err
	}
	c.app = instance
	c.console = NewConsole(c.in, c.out, c.cfg.UI.NoColor)
	cmd.SetContext(logging.IntoContext(cmd.Context(), instance.Logger()))
	return nil
}

func (c *command) addCommand() *cobra.Command {
	var d struct {
		typ, text, options, answer string
	}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "add a question (prompts for anything not given as a flag)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if d.typ == "" {
				return c.AddInteractive(cmd.Context())
			}
			typ, err := question.ParseType(d.typ)
			if err != nil {
				return err
			}
			draft := question.Draft{Type: typ, Text: d.text, Answer: d.answer}
			if typ == question.TypeMultipleChoice {
				draft.Options = question.SplitOptions(d.options)
			}
			return c.add(cmd.Context(), draft)
		},
	}
	cmd.Flags().StringVar(&d.typ, "type", "", "multiple_choice (1) or free_form (2)")
	cmd.Flags().StringVar(&d.text, "text", "", "question text")
	cmd.Flags().StringVar(&d.options, "options", "", "four comma-separated options")
	cmd.Flags().StringVar(&d.answer, "answer", "", "correct answer (option text for multiple choice)")
	return cmd
}

// AddInteractive prompts for the fields of a new question.
func (c *command) AddInteractive(ctx context.Context) error {
	raw, err := c.console.Prompt("Select the question type: \n 1. Multiple Choice \n 2. Free Form\n")
	if err != nil {
		return err
	}
	typ, err := question.ParseType(raw)
	if err != nil {
		return err
	}
	text, err := c.console.Prompt("Enter the question: ")
	if err != nil {
		return err
	}

	draft := question.Draft{Type: typ, Text: text}
	if typ == question.TypeMultipleChoice {
		for {
			raw, err := c.console.Prompt("Enter four options separated by commas: ")
			if err != nil {
				return err
			}
			draft.Options = question.SplitOptions(raw)
			if len(draft.Options) == question.OptionCount {
				break
			}
			c.console.Println("Please provide exactly 4 options")
		}
	}
	if draft.Answer, err = c.console.Prompt("Enter the answer: "); err != nil {
		return err
	}
	return c.add(ctx, draft)
}

func (c *command) add(ctx context.Context, d question.Draft) error {
	q, err := c.app.Questions().AddQuestion(ctx, d)
	if err != nil {
		return err
	}
	c.console.Println(fmt.Sprintf("Question %d added successfully!", q.ID))
	return nil
}

func (c *command) Toggle(cmd *cobra.Command, args []string) error {
	return c.toggle(cmd.Context(), args[0])
}

func (c *command) toggle(ctx context.Context, raw string) error {
	id, err := question.ParseID(raw)
	if err != nil {
		return err
	}
	q, err := c.app.Questions().ToggleActive(ctx, id)
	if err != nil {
		return err
	}
	state := "disabled"
	if q.Active {
		state = "active"
	}
	c.console.Println(fmt.Sprintf("Question %d is now %s", q.ID, state))
	return nil
}

func (c *command) Practice(cmd *cobra.Command, args []string) error {
	s, err := c.app.Runner(c.console).RunPractice(cmd.Context())
	if err != nil {
		return err
	}
	c.console.Println(fmt.Sprintf("Practice finished: %d/%d correct", s.Correct, s.Total))
	return nil
}

func (c *command) Test(cmd *cobra.Command, args []string) error {
	_, err := c.app.Runner(c.console).RunTest(cmd.Context())
	return err
}

func (c *command) Stats(cmd *cobra.Command, args []string) error {
	c.console.ShowStatistics(c.app.Questions().Statistics(cmd.Context()))
	return nil
}

func (c *command) History(cmd *cobra.Command, args []string) error {
	entries, err := c.app.Results().Entries()
	if err != nil {
		return err
	}
	c.console.ShowHistory(entries)
	return nil
}

// recoverable reports whether the menu can carry on after err.
func recoverable(err error) bool {
	return question.CodeOf(err) != "" && !errors.Is(err, io.EOF) && !errors.Is(err, session.ErrAborted)
}
