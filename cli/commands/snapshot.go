package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/strhash/cli/internal/ui"
	"github.com/satishbabariya/strhash/intern/snapshot"
)

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write the table to a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Merge a snapshot file into the table",
	Long: `Merge a snapshot file into the table.

Entries identical to existing ones are accepted. The import is rejected as a
whole when any entry binds a key or value that is already bound differently.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var snapshotFormat string

func init() {
	for _, cmd := range []*cobra.Command{exportCmd, importCmd} {
		cmd.Flags().StringVar(&snapshotFormat, "format", "", "Snapshot format: json, yaml or text (default by extension)")
		rootCmd.AddCommand(cmd)
	}
}

func resolveFormat(path string) (snapshot.Format, error) {
	if snapshotFormat != "" {
		return snapshot.ParseFormat(snapshotFormat)
	}
	return snapshot.FormatFromPath(path)
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(cfg)
	if err != nil {
		return err
	}

	snap := snapshot.Capture(s.in)
	if err := writeSnapshot(args[0], format, snap); err != nil {
		return err
	}
	ui.PrintSuccess("Exported %d entries to %s", snap.Len(), args[0])
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(args[0])
	if err != nil {
		return err
	}

	snap, err := readSnapshot(args[0], format)
	if err != nil {
		return err
	}

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	before := s.len()

	if err := snap.Apply(s.in); err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return err
	}
	ui.PrintSuccess("Imported %d new entries from %s", s.len()-before, args[0])
	return nil
}
