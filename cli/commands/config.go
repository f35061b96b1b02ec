package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/strhash/cli/internal/config"
	"github.com/satishbabariya/strhash/cli/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or save configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ui.PrintTable([]string{"Setting", "Value"}, [][]string{
			{"snapshot_path", cfg.SnapshotPath},
			{"reserved32", strconv.FormatInt(int64(cfg.Reserved32), 10)},
			{"reserved64", strconv.FormatUint(cfg.Reserved64, 10)},
			{"seed", strconv.FormatUint(cfg.Seed, 10)},
			{"provider", cfg.Provider},
			{"database_url", redact(cfg.DatabaseURL)},
			{"debug", strconv.FormatBool(cfg.Debug)},
		})
		return nil
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Write the effective configuration to ~/.config/strhash",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.SaveConfig(cfg)
		if err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		ui.PrintSuccess("Saved configuration to %s", path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSaveCmd)
	rootCmd.AddCommand(configCmd)
}

// redact hides connection strings, which usually carry credentials
func redact(url string) string {
	if url == "" {
		return ""
	}
	return "(set)"
}
