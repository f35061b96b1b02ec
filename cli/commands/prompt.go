package commands

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/strhash/cli/internal/ui"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Interactively intern values",
	Long:  "Ask for values one at a time and print their keys. An empty answer ends the session.",
	Args:  cobra.NoArgs,
	RunE:  runPrompt,
}

func init() {
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command, args []string) error {
	ui.PrintHeader("strhash", "Interactive session")

	s, err := openSession(cfg)
	if err != nil {
		return err
	}

	for {
		var value string
		err := survey.AskOne(&survey.Input{
			Message: "Value:",
			Help:    "Leave empty to finish",
		}, &value)
		if errors.Is(err, terminal.InterruptErr) {
			break
		}
		if err != nil {
			return err
		}
		if value == "" {
			break
		}

		k32, k64 := s.internValue(value)
		ui.PrintKey(value, k32, k64)
	}

	return s.save()
}
