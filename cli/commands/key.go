package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/strhash/cli/internal/ui"
)

var keyCmd = &cobra.Command{
	Use:   "key <value>...",
	Short: "Intern values and print their keys",
	Long: `Intern each value in both tables and print its int32 and uint64 keys.

Without --desired32/--desired64 the keys are derived from the value's
content. A desired key that already holds a different value is resolved
like any other collision.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKey,
}

var (
	keyDesired32 int32
	keyDesired64 uint64
	keyNoCheck   bool
	keyDryRun    bool
)

func init() {
	keyCmd.Flags().Int32Var(&keyDesired32, "desired32", 0, "Preferred int32 key")
	keyCmd.Flags().Uint64Var(&keyDesired64, "desired64", 0, "Preferred uint64 key")
	keyCmd.Flags().BoolVar(&keyNoCheck, "no-check", false, "Skip the existing-value lookup when the desired key is free")
	keyCmd.Flags().BoolVar(&keyDryRun, "dry-run", false, "Do not write the snapshot")

	rootCmd.AddCommand(keyCmd)
}

func runKey(cmd *cobra.Command, args []string) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}

	t32, t64 := s.in.Int32(), s.in.Uint64()
	desired32, desired64 := t32.Reserved(), t64.Reserved()
	if cmd.Flags().Changed("desired32") {
		desired32 = keyDesired32
	}
	if cmd.Flags().Changed("desired64") {
		desired64 = keyDesired64
	}

	for _, value := range args {
		k32 := t32.GetOrAssignKey(desired32, value, !keyNoCheck)
		k64 := t64.GetOrAssignKey(desired64, value, !keyNoCheck)

		if ui.Quiet {
			fmt.Printf("%s\t%d\t%d\n", value, k32, k64)
			continue
		}
		ui.PrintKey(value, k32, k64)
	}

	if keyDryRun {
		return nil
	}
	return s.save()
}
