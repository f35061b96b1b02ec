package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/strhash/cli/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List interned entries",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var listWidth int

func init() {
	listCmd.Flags().IntVarP(&listWidth, "width", "w", 0, "Only list one table (32 or 64)")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if listWidth != 0 && listWidth != 32 && listWidth != 64 {
		return fmt.Errorf("invalid width %d: expected 32 or 64", listWidth)
	}

	s, err := openSession(cfg)
	if err != nil {
		return err
	}

	var rows [][]string
	if listWidth != 64 {
		for _, e := range s.in.Int32().Entries() {
			rows = append(rows, []string{"int32", strconv.FormatInt(int64(e.Key), 10), e.Value})
		}
	}
	if listWidth != 32 {
		for _, e := range s.in.Uint64().Entries() {
			rows = append(rows, []string{"uint64", strconv.FormatUint(e.Key, 10), e.Value})
		}
	}

	if len(rows) == 0 {
		ui.PrintInfo("No entries in %s", s.path)
		return nil
	}
	if ui.Quiet {
		for _, row := range rows {
			fmt.Printf("%s\t%s\t%s\n", row[0], row[1], row[2])
		}
		return nil
	}

	ui.PrintTable([]string{"Width", "Key", "Value"}, rows)
	return nil
}
