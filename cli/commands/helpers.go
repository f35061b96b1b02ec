package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/satishbabariya/strhash/cli/internal/config"
	"github.com/satishbabariya/strhash/intern"
	"github.com/satishbabariya/strhash/intern/snapshot"
	"github.com/satishbabariya/strhash/internal/debug"
)

// session is the interner shared by one command invocation, backed by the
// snapshot file
type session struct {
	in     *intern.Interner
	path   string
	format snapshot.Format
	loaded int
}

// openSession builds the interner from configuration and loads the
// snapshot file if it exists
func openSession(cfg *config.Config) (*session, error) {
	format, err := snapshot.FormatFromPath(cfg.SnapshotPath)
	if err != nil {
		return nil, err
	}

	s := &session{
		in: intern.New(
			intern.WithReserved32(cfg.Reserved32),
			intern.WithReserved64(cfg.Reserved64),
			intern.WithSeed(cfg.Seed),
			intern.WithLogger(debug.Logger()),
		),
		path:   cfg.SnapshotPath,
		format: format,
	}

	snap, err := readSnapshot(cfg.SnapshotPath, format)
	if os.IsNotExist(err) {
		debug.Debug("No snapshot yet", "path", cfg.SnapshotPath)
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	if err := snap.Apply(s.in); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.SnapshotPath, err)
	}
	s.loaded = s.len()
	debug.Debug("Loaded snapshot", "path", cfg.SnapshotPath, "entries", s.loaded)
	return s, nil
}

func (s *session) len() int {
	return s.in.Int32().Len() + s.in.Uint64().Len()
}

// internValue binds value in both tables under its content-derived keys
func (s *session) internValue(value string) (int32, uint64) {
	return s.in.Key32(value), s.in.Key64(value)
}

// save writes the snapshot back when entries were added
func (s *session) save() error {
	if s.len() == s.loaded {
		return nil
	}
	if err := writeSnapshot(s.path, s.format, snapshot.Capture(s.in)); err != nil {
		return err
	}
	debug.Debug("Saved snapshot", "path", s.path, "entries", s.len())
	s.loaded = s.len()
	return nil
}

func readSnapshot(path string, format snapshot.Format) (*snapshot.Snapshot, error) {
	f, err := config.AppFs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return snapshot.Decode(f, format)
}

func writeSnapshot(path string, format snapshot.Format, snap *snapshot.Snapshot) error {
	f, err := config.AppFs.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := snapshot.Encode(f, snap, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// readLines returns the trimmed, non-empty lines of a file
func readLines(path string) ([]string, error) {
	f, err := config.AppFs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return scanLines(f)
}

func scanLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
