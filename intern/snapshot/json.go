package snapshot

import (
	"encoding/json"
	"io"
	"unicode/utf8"

	"github.com/satishbabariya/strhash/intern"
)

// jsonEntry carries values that are not valid UTF-8 in Bytes (base64 on the
// wire), since encoding/json would replace their invalid bytes.
type jsonEntry[K intern.Key] struct {
	Key   K      `json:"key"`
	Value string `json:"value,omitempty"`
	Bytes []byte `json:"bytes,omitempty"`
}

type jsonSnapshot struct {
	Version    string              `json:"version"`
	Reserved32 int32               `json:"reserved32"`
	Reserved64 uint64              `json:"reserved64"`
	Int32      []jsonEntry[int32]  `json:"int32"`
	Uint64     []jsonEntry[uint64] `json:"uint64"`
}

func toJSONEntries[K intern.Key](entries []intern.Entry[K]) []jsonEntry[K] {
	if entries == nil {
		return nil
	}

	out := make([]jsonEntry[K], len(entries))
	for i, e := range entries {
		out[i].Key = e.Key
		if utf8.ValidString(e.Value) {
			out[i].Value = e.Value
		} else {
			out[i].Bytes = []byte(e.Value)
		}
	}
	return out
}

func fromJSONEntries[K intern.Key](entries []jsonEntry[K]) []intern.Entry[K] {
	if entries == nil {
		return nil
	}

	out := make([]intern.Entry[K], len(entries))
	for i, e := range entries {
		out[i].Key = e.Key
		out[i].Value = e.Value
		if e.Bytes != nil {
			out[i].Value = string(e.Bytes)
		}
	}
	return out
}

func encodeJSON(w io.Writer, s *Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonSnapshot{
		Version:    s.Version,
		Reserved32: s.Reserved32,
		Reserved64: s.Reserved64,
		Int32:      toJSONEntries(s.Int32),
		Uint64:     toJSONEntries(s.Uint64),
	})
}

func decodeJSON(r io.Reader) (*Snapshot, error) {
	defaults := newSnapshot()
	wire := jsonSnapshot{
		Reserved32: defaults.Reserved32,
		Reserved64: defaults.Reserved64,
	}
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, err
	}

	return &Snapshot{
		Version:    wire.Version,
		Reserved32: wire.Reserved32,
		Reserved64: wire.Reserved64,
		Int32:      fromJSONEntries(wire.Int32),
		Uint64:     fromJSONEntries(wire.Uint64),
	}, nil
}
