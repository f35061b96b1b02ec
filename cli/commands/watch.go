package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/strhash/cli/internal/ui"
	"github.com/satishbabariya/strhash/cli/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Intern a file's lines every time it changes",
	Long: `Intern every non-empty line of a file, then keep watching it and
intern new lines whenever it is written. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ui.PrintHeader("strhash", "Watch "+args[0])

	s, err := openSession(cfg)
	if err != nil {
		return err
	}

	callback := func() error {
		lines, err := readLines(args[0])
		if err != nil {
			return err
		}

		before := s.len()
		for _, line := range lines {
			s.internValue(line)
		}
		if err := s.save(); err != nil {
			return err
		}
		ui.PrintInfo("%s: %d values, %d new entries", args[0], len(lines), s.len()-before)
		return nil
	}

	w, err := watch.NewWatcher(args[0], watch.DefaultDebounce, callback)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	ui.PrintInfo("Stopped watching %s", args[0])
	return w.Stop()
}
