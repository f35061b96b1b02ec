package commands

import (
	"github.com/spf13/cobra"

	"github.com/satishbabariya/strhash/cli/internal/ui"
)

const keyRulesMarkdown = `# How keys are assigned

| Table | Reserved | Derived from |
|---|---|---|
| int32 | -1 | xxhash64 folded to 32 bits |
| uint64 | 0 | SHA-256, XOR of four 8-byte little-endian words |

1. An empty value always yields the reserved key and is never stored.
2. Asking for the reserved key derives the key from the value's content.
3. A key that already holds the same value is returned unchanged.
4. A key that holds a *different* value is never overwritten:
   - if the value already has a key elsewhere, that key is returned;
   - otherwise the key is scaled by 0.3, shifted by a random offset and
     probed upwards until a free key is found.
5. A free key is used as-is unless the value already has a key elsewhere.

The reserved key is never assigned to a value.
`

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Explain how keys are assigned",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return ui.PrintMarkdown(keyRulesMarkdown)
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
