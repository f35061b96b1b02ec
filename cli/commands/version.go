package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/strhash/cli/internal/ui"
	"github.com/satishbabariya/strhash/cli/internal/version"
)

var versionFull bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		if versionFull {
			if ui.Quiet {
				fmt.Println(info.FullString())
				return nil
			}
			ui.PrintBox("strhash", info.FullString())
			return nil
		}
		fmt.Println(info.String())
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionFull, "full", false, "Print build details")

	rootCmd.AddCommand(versionCmd)
}
