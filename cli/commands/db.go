package commands

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/strhash/cli/internal/ui"
	"github.com/satishbabariya/strhash/intern/snapshot"
	"github.com/satishbabariya/strhash/internal/debug"
	"github.com/satishbabariya/strhash/store"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Store the table in a SQL database",
	Long: `Store the table in a SQL database.

Supported providers are sqlite, postgresql and mysql. The connection string
comes from --url, the database_url setting or DATABASE_URL.`,
}

var dbPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Replace the stored table with the snapshot file's contents",
	Args:  cobra.NoArgs,
	RunE:  runDBPush,
}

var dbPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Merge the stored table into the snapshot file",
	Args:  cobra.NoArgs,
	RunE:  runDBPull,
}

var (
	dbProvider string
	dbURL      string
)

func init() {
	dbCmd.PersistentFlags().StringVar(&dbProvider, "provider", "", "Database provider (sqlite, postgresql, mysql)")
	dbCmd.PersistentFlags().StringVar(&dbURL, "url", "", "Database connection string")

	dbCmd.AddCommand(dbPushCmd)
	dbCmd.AddCommand(dbPullCmd)
	rootCmd.AddCommand(dbCmd)
}

func openStore() (*store.Store, error) {
	provider := cfg.Provider
	if dbProvider != "" {
		provider = dbProvider
	}
	url := cfg.DatabaseURL
	if dbURL != "" {
		url = dbURL
	}
	if url == "" {
		return nil, errors.New("no database url: set --url, database_url or DATABASE_URL")
	}
	return store.Open(provider, url)
}

func runDBPush(cmd *cobra.Command, args []string) error {
	s, err := openSession(cfg)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	var spinner *pterm.SpinnerPrinter
	if !ui.Quiet {
		spinner, err = ui.PrintSpinner("Pushing entries...")
		if err != nil {
			debug.Warn("Spinner unavailable", "error", err)
			spinner = nil
		}
	}

	snap := snapshot.Capture(s.in)
	if err := st.Save(cmd.Context(), snap); err != nil {
		if spinner != nil {
			spinner.Fail("Push failed")
		}
		return err
	}

	message := fmt.Sprintf("Pushed %d entries", snap.Len())
	if spinner != nil {
		spinner.Success(message)
		return nil
	}
	ui.PrintSuccess("%s", message)
	return nil
}

func runDBPull(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	snap, err := st.Load(cmd.Context())
	if errors.Is(err, store.ErrEmpty) {
		ui.PrintWarning("Database holds no entries")
		return nil
	}
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
	ui.PrintSuccess("Pulled %d new entries into %s", s.len()-before, s.path)
	return nil
}
