// Package store persists interner snapshots in a SQL database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/satishbabariya/strhash/intern"
	"github.com/satishbabariya/strhash/intern/snapshot"
	"github.com/satishbabariya/strhash/internal/debug"
)

const (
	width32 = "int32"
	width64 = "uint64"
)

var (
	// ErrEmpty is returned by Load when nothing has been saved yet.
	ErrEmpty = errors.New("no snapshot stored")
	// ErrUnsupportedProvider is returned for providers without SQL dialect support.
	ErrUnsupportedProvider = errors.New("unsupported provider")
)

// Store saves and loads snapshots
type Store struct {
	db       *sql.DB
	provider string
}

// Open connects to the database for the given provider
func Open(provider, dsn string) (*Store, error) {
	driver, err := driverName(provider)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", provider, err)
	}
	return New(db, provider), nil
}

// New wraps an existing connection
func New(db *sql.DB, provider string) *Store {
	return &Store{
		db:       db,
		provider: provider,
	}
}

// Close closes the underlying connection
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) log() *slog.Logger {
	return debug.With("provider", s.provider)
}

func driverName(provider string) (string, error) {
	switch provider {
	case "sqlite", "sqlite3":
		return "sqlite3", nil
	case "postgresql", "postgres":
		return "postgres", nil
	case "mysql":
		return "mysql", nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
}

// InitTables creates the entry and metadata tables
func (s *Store) InitTables(ctx context.Context) error {
	for _, stmt := range s.getCreateTablesSQL() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}
	return nil
}

// Save replaces the stored snapshot with snap
func (s *Store) Save(ctx context.Context, snap *snapshot.Snapshot) (err error) {
	if err := s.InitTables(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, stmt := range []string{"DELETE FROM strhash_entries", "DELETE FROM strhash_meta"} {
		if _, err = tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to clear stored snapshot: %w", err)
		}
	}

	meta := map[string]string{
		"version":    snap.Version,
		"reserved32": strconv.FormatInt(int64(snap.Reserved32), 10),
		"reserved64": strconv.FormatUint(snap.Reserved64, 10),
	}
	for name, value := range meta {
		if _, err = tx.ExecContext(ctx, s.getInsertMetaSQL(), name, value); err != nil {
			return fmt.Errorf("failed to store %s: %w", name, err)
		}
	}

	insert := s.getInsertEntrySQL()
	for _, e := range snap.Int32 {
		if _, err = tx.ExecContext(ctx, insert, width32, strconv.FormatInt(int64(e.Key), 10), e.Value); err != nil {
			return fmt.Errorf("failed to store int32 entry %d: %w", e.Key, err)
		}
	}
	for _, e := range snap.Uint64 {
		if _, err = tx.ExecContext(ctx, insert, width64, strconv.FormatUint(e.Key, 10), e.Value); err != nil {
			return fmt.Errorf("failed to store uint64 entry %d: %w", e.Key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	s.log().Debug("Stored snapshot", "entries", snap.Len())
	return nil
}

// Load reads the stored snapshot
func (s *Store) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	if err := s.InitTables(ctx); err != nil {
		return nil, err
	}

	snap, err := s.loadMeta(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT width, hash_key, value FROM strhash_entries")
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var width, key, value string
		if err := rows.Scan(&width, &key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if err := addEntry(snap, width, key, value); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortEntries(snap)
	s.log().Debug("Loaded snapshot", "entries", snap.Len())
	return snap, nil
}

func (s *Store) loadMeta(ctx context.Context) (*snapshot.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, value FROM strhash_meta")
	if err != nil {
		return nil, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	meta := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}
		meta[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(meta) == 0 {
		return nil, ErrEmpty
	}

	reserved32, err := strconv.ParseInt(meta["reserved32"], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid stored reserved32: %w", err)
	}
	reserved64, err := strconv.ParseUint(meta["reserved64"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid stored reserved64: %w", err)
	}

	return &snapshot.Snapshot{
		Version:    meta["version"],
		Reserved32: int32(reserved32),
		Reserved64: reserved64,
	}, nil
}

func addEntry(snap *snapshot.Snapshot, width, key, value string) error {
	switch width {
	case width32:
		k, err := strconv.ParseInt(key, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid stored int32 key %q: %w", key, err)
		}
		snap.Int32 = append(snap.Int32, intern.Entry[int32]{Key: int32(k), Value: value})
	case width64:
		k, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid stored uint64 key %q: %w", key, err)
		}
		snap.Uint64 = append(snap.Uint64, intern.Entry[uint64]{Key: k, Value: value})
	default:
		return fmt.Errorf("unknown stored width %q", width)
	}
	return nil
}
