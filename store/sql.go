package store

import (
	"cmp"
	"slices"

	"github.com/satishbabariya/strhash/intern"
	"github.com/satishbabariya/strhash/intern/snapshot"
)

// getCreateTablesSQL returns the DDL for the entry and metadata tables
func (s *Store) getCreateTablesSQL() []string {
	switch s.provider {
	case "postgresql", "postgres":
		return []string{
			`CREATE TABLE IF NOT EXISTS strhash_entries (
				width VARCHAR(8) NOT NULL,
				hash_key VARCHAR(20) NOT NULL,
				value TEXT NOT NULL,
				PRIMARY KEY (width, hash_key)
			)`,
			`CREATE TABLE IF NOT EXISTS strhash_meta (
				name VARCHAR(32) PRIMARY KEY,
				value TEXT NOT NULL
			)`,
		}
	case "mysql":
		return []string{
			`CREATE TABLE IF NOT EXISTS strhash_entries (
				width VARCHAR(8) NOT NULL,
				hash_key VARCHAR(20) NOT NULL,
				value TEXT NOT NULL,
				PRIMARY KEY (width, hash_key)
			) DEFAULT CHARSET=utf8mb4`,
			`CREATE TABLE IF NOT EXISTS strhash_meta (
				name VARCHAR(32) PRIMARY KEY,
				value TEXT NOT NULL
			) DEFAULT CHARSET=utf8mb4`,
		}
	default:
		return []string{
			`CREATE TABLE IF NOT EXISTS strhash_entries (
				width TEXT NOT NULL,
				hash_key TEXT NOT NULL,
				value TEXT NOT NULL,
				PRIMARY KEY (width, hash_key)
			)`,
			`CREATE TABLE IF NOT EXISTS strhash_meta (
				name TEXT PRIMARY KEY,
				value TEXT NOT NULL
			)`,
		}
	}
}

// getInsertEntrySQL returns SQL to insert one entry
func (s *Store) getInsertEntrySQL() string {
	switch s.provider {
	case "postgresql", "postgres":
		return `INSERT INTO strhash_entries (width, hash_key, value) VALUES ($1, $2, $3)`
	default:
		return `INSERT INTO strhash_entries (width, hash_key, value) VALUES (?, ?, ?)`
	}
}

// getInsertMetaSQL returns SQL to insert one metadata value
func (s *Store) getInsertMetaSQL() string {
	switch s.provider {
	case "postgresql", "postgres":
		return `INSERT INTO strhash_meta (name, value) VALUES ($1, $2)`
	default:
		return `INSERT INTO strhash_meta (name, value) VALUES (?, ?)`
	}
}

// sortEntries orders entries by key; keys are stored as text so the
// database cannot order them numerically.
func sortEntries(snap *snapshot.Snapshot) {
	slices.SortFunc(snap.Int32, func(a, b intern.Entry[int32]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	slices.SortFunc(snap.Uint64, func(a, b intern.Entry[uint64]) int {
		return cmp.Compare(a.Key, b.Key)
	})
}
