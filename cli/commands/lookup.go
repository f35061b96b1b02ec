package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <key>",
	Short: "Print the value bound to a key",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

var lookupWidth int

func init() {
	lookupCmd.Flags().IntVarP(&lookupWidth, "width", "w", 32, "Table to search (32 or 64)")

	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}

	var (
		value string
		ok    bool
	)
	switch lookupWidth {
	case 32:
		key, err := strconv.ParseInt(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid int32 key: %w", err)
		}
		value, ok = s.in.Int32().Lookup(int32(key))
	case 64:
		key, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid uint64 key: %w", err)
		}
		value, ok = s.in.Uint64().Lookup(key)
	default:
		return fmt.Errorf("invalid width %d: expected 32 or 64", lookupWidth)
	}

	if !ok {
		return fmt.Errorf("no value bound to %s in the %d-bit table", args[0], lookupWidth)
	}
	fmt.Println(value)
	return nil
}
