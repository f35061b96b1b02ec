// Package snapshot captures the contents of an Interner so it can be
// written to disk or a database and restored later.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"

	"github.com/satishbabariya/strhash/intern"
)

// CurrentVersion is the format version written by Capture.
const CurrentVersion = "1.0.0"

// supportedVersions is the range of format versions Apply accepts.
const supportedVersions = ">= 1.0, < 2.0"

var (
	// ErrIncompatibleVersion is returned for snapshots outside the supported range.
	ErrIncompatibleVersion = errors.New("incompatible snapshot version")
	// ErrReservedMismatch is returned when a snapshot was taken with other sentinels.
	ErrReservedMismatch = errors.New("snapshot reserved key differs from interner")
	// ErrUnknownFormat is returned for unrecognised format names or extensions.
	ErrUnknownFormat = errors.New("unknown snapshot format")
)

// Snapshot is a serialisable copy of both tables of an Interner.
type Snapshot struct {
	Version    string                 `json:"version" yaml:"version"`
	Reserved32 int32                  `json:"reserved32" yaml:"reserved32"`
	Reserved64 uint64                 `json:"reserved64" yaml:"reserved64"`
	Int32      []intern.Entry[int32]  `json:"int32" yaml:"int32"`
	Uint64     []intern.Entry[uint64] `json:"uint64" yaml:"uint64"`
}

// Capture copies the current contents of in.
func Capture(in *intern.Interner) *Snapshot {
	return &Snapshot{
		Version:    CurrentVersion,
		Reserved32: in.Int32().Reserved(),
		Reserved64: in.Uint64().Reserved(),
		Int32:      in.Int32().Entries(),
		Uint64:     in.Uint64().Entries(),
	}
}

// Len returns the number of entries across both tables.
func (s *Snapshot) Len() int {
	return len(s.Int32) + len(s.Uint64)
}

// Apply restores the snapshot's entries into in.
// Entries already present with the same key and value are left alone.
func (s *Snapshot) Apply(in *intern.Interner) error {
	if err := CheckVersion(s.Version); err != nil {
		return err
	}
	if s.Reserved32 != in.Int32().Reserved() {
		return fmt.Errorf("int32 table: snapshot %d, interner %d: %w",
			s.Reserved32, in.Int32().Reserved(), ErrReservedMismatch)
	}
	if s.Reserved64 != in.Uint64().Reserved() {
		return fmt.Errorf("uint64 table: snapshot %d, interner %d: %w",
			s.Reserved64, in.Uint64().Reserved(), ErrReservedMismatch)
	}

	if err := in.Int32().Restore(s.Int32); err != nil {
		return fmt.Errorf("int32 table: %w", err)
	}
	if err := in.Uint64().Restore(s.Uint64); err != nil {
		return fmt.Errorf("uint64 table: %w", err)
	}
	return nil
}

// CheckVersion reports whether a snapshot format version can be applied.
func CheckVersion(v string) error {
	parsed, err := version.NewVersion(v)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrIncompatibleVersion, v, err)
	}

	constraints, err := version.NewConstraint(supportedVersions)
	if err != nil {
		return err
	}
	if !constraints.Check(parsed) {
		return fmt.Errorf("%w: %s (supported %s)", ErrIncompatibleVersion, v, supportedVersions)
	}
	return nil
}

// Format is an on-disk encoding of a Snapshot.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	Text Format = "text"
)

// ParseFormat resolves a format name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "text", "txt":
		return Text, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
	}
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".txt", ".strhash":
		return Text, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Encode writes s to w in the given format.
func Encode(w io.Writer, s *Snapshot, format Format) error {
	switch format {
	case JSON:
		return encodeJSON(w, s)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case Text:
		return encodeText(w, s)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// newSnapshot returns an empty snapshot carrying the default sentinels, so
// every format treats an omitted reserved key the same way.
func newSnapshot() *Snapshot {
	return &Snapshot{
		Reserved32: intern.Int32Keys().Reserved,
		Reserved64: intern.Uint64Keys().Reserved,
	}
}

// Decode reads a snapshot in the given format from r.
// Omitted reserved keys default to -1 (int32) and 0 (uint64).
func Decode(r io.Reader, format Format) (*Snapshot, error) {
	switch format {
	case JSON:
		s, err := decodeJSON(r)
		if err != nil {
			return nil, fmt.Errorf("failed to decode json snapshot: %w", err)
		}
		return s, nil
	case YAML:
		s := newSnapshot()
		if err := yaml.NewDecoder(r).Decode(s); err != nil {
			return nil, fmt.Errorf("failed to decode yaml snapshot: %w", err)
		}
		return s, nil
	case Text:
		return decodeText(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
