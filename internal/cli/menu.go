package cli

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gokatarajesh/quiz-trainer/internal/logging"
	"github.com/gokatarajesh/quiz-trainer/internal/session"
)

const menuText = `
1. Add question
2. Activate/Disable question
3. Practice mode
4. Test mode
5. Show statistics
6. Show test history
7. Exit
`

// Menu runs the interactive panel until the user exits or input ends.
// Input mistakes and failed preconditions are reported and the menu carries on.
func (c *command) Menu(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)
	for {
		c.console.Println(c.console.style.title(strings.TrimSpace(menuText)))
		choice, err := c.console.Prompt("Enter your choice: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		logger.Debug().Str("choice", strings.TrimSpace(choice)).Msg("menu choice")
		switch strings.TrimSpace(choice) {
		case "1":
			err = c.AddInteractive(ctx)
		case "2":
			var raw string
			if raw, err = c.console.Prompt("Enter the question id: "); err == nil {
				err = c.toggle(ctx, raw)
			}
		case "3":
			err = c.Practice(cmd, args)
		case "4":
			err = c.Test(cmd, args)
		case "5":
			err = c.Stats(cmd, args)
		case "6":
			err = c.History(cmd, args)
		case "7", "exit":
			c.console.Println("Goodbye!")
			return nil
		default:
			c.console.Println("Invalid choice")
			continue
		}

		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, session.ErrAborted):
			c.console.ShowError(ctx, err)
			return nil
		case recoverable(err):
			c.console.ShowError(ctx, err)
		default:
			logger.Error().Err(err).Msg("menu action failed")
			return err
		}
	}
}
