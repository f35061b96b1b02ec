package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/strhash/cli/internal/config"
	"github.com/satishbabariya/strhash/cli/internal/ui"
	"github.com/satishbabariya/strhash/internal/debug"
)

var (
	cfgFile      string
	snapshotPath string
	debugMode    bool

	// cfg is loaded once before any command runs
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "strhash",
	Short: "Intern strings into stable integer keys",
	Long: `strhash maps strings to stable 32-bit and 64-bit integer keys.

Keys are derived from the string content (xxhash for int32, SHA-256 for
uint64). When two different strings derive the same key, the newcomer is
moved to a free key; an existing association is never overwritten.

The table is kept in a snapshot file (JSON, YAML or text) and can be pushed
to or pulled from a SQL database.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default .strhash.yaml)")
	rootCmd.PersistentFlags().StringVarP(&snapshotPath, "snapshot", "f", "", "Snapshot file (.json, .yaml or .txt)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&ui.Quiet, "quiet", "q", false, "Only print data")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if snapshotPath != "" {
		loaded.SnapshotPath = snapshotPath
	}
	if debugMode {
		loaded.Debug = true
	}

	debug.Init(loaded.Debug)
	debug.Debug("Loaded configuration", "snapshot", loaded.SnapshotPath, "provider", loaded.Provider)

	cfg = loaded
	return nil
}

// Execute is the main entry point for the CLI
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		debug.Error("Command failed", "error", err)
		ui.PrintError("%v", err)
	}
	_ = debug.Sync()
	return err
}
