package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/satishbabariya/strhash/cli/internal/ui"
)

var loadCmd = &cobra.Command{
	Use:   "load <file>...",
	Short: "Intern every line of one or more files",
	Long: `Intern every non-empty line of the given files.

Files are read concurrently but interned in argument order, so the keys
assigned on collision do not depend on which file finished reading first.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	ui.PrintHeader("strhash", "Load values")

	contents := make([][]string, len(args))
	var g errgroup.Group
	for i, path := range args {
		g.Go(func() error {
			lines, err := readLines(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			contents[i] = lines
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	before := s.len()

	total := 0
	for i, lines := range contents {
		for _, line := range lines {
			s.internValue(line)
		}
		total += len(lines)
		ui.PrintInfo("%s: %d values", args[i], len(lines))
	}

	if err := s.save(); err != nil {
		return err
	}
	ui.PrintSuccess("Interned %d values, %d new entries", total, s.len()-before)
	return nil
}
