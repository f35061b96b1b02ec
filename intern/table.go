package intern

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

var (
	// ErrReservedKey is returned when restoring an entry under the reserved key.
	ErrReservedKey = errors.New("reserved key cannot hold a value")
	// ErrEmptyValue is returned when restoring an entry with an empty value.
	ErrEmptyValue = errors.New("empty value cannot be interned")
	// ErrKeyConflict is returned when a key is already bound to another value.
	ErrKeyConflict = errors.New("key already bound to a different value")
	// ErrValueConflict is returned when a value is already bound to another key.
	ErrValueConflict = errors.New("value already bound to a different key")
)

// Entry is one key/value association of a Table.
type Entry[K Key] struct {
	Key   K      `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Table associates strings with integer keys of one width.
//
// Keys are either supplied by the caller or derived from the string's
// content. A key, once bound, is never rebound to a different string, and a
// string is bound to at most one key.
type Table[K Key] struct {
	mu      sync.Mutex
	space   KeySpace[K]
	rnd     Rand
	logger  *slog.Logger
	entries map[K]string
	index   map[string]K
}

// NewTable creates an empty table over the given key space.
func NewTable[K Key](space KeySpace[K], rnd Rand, logger *slog.Logger) *Table[K] {
	return &Table[K]{
		space:   space,
		rnd:     rnd,
		logger:  logger,
		entries: make(map[K]string),
		index:   make(map[string]K),
	}
}

// Reserved returns the sentinel key meaning "no association".
func (t *Table[K]) Reserved() K {
	return t.space.Reserved
}

// GetOrAssignKey returns the key bound to value, binding one if needed.
//
// Passing the reserved key as desired derives the key from value's content.
// An empty value yields the reserved key and leaves the table untouched.
//
// checkExistingValue does not change the result: a value already bound to
// another key always returns that key, so no value is ever stored twice.
// Passing false only logs when the desired key is ignored for that reason.
func (t *Table[K]) GetOrAssignKey(desired K, value string, checkExistingValue bool) K {
	if value == "" {
		return t.space.Reserved
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if desired == t.space.Reserved {
		desired = t.space.Hash(value)
		if desired == t.space.Reserved {
			desired++
		}
	}

	if current, ok := t.entries[desired]; ok {
		if current == value {
			return desired
		}
		if key, ok := t.index[value]; ok {
			return key
		}
		return t.resolveCollision(desired, value)
	}

	// Values stay unique even when the caller skips the existing-value check.
	if key, ok := t.index[value]; ok {
		if !checkExistingValue {
			t.logger.Debug("value already interned, ignoring desired key",
				"desired", desired, "key", key)
		}
		return key
	}

	t.insert(desired, value)
	return desired
}

// resolveCollision moves value off a key that holds a different string.
// Probing is unbounded: a saturated key space never terminates.
func (t *Table[K]) resolveCollision(desired K, value string) K {
	key := t.space.Perturb(desired, t.rnd)
	probes := 0
	for t.used(key) {
		key++
		probes++
	}

	t.logger.Debug("resolved key collision",
		"desired", desired,
		"key", key,
		"probes", probes,
		"occupant", t.entries[desired])

	t.insert(key, value)
	return key
}

func (t *Table[K]) used(key K) bool {
	if key == t.space.Reserved {
		return true
	}
	_, ok := t.entries[key]
	return ok
}

func (t *Table[K]) insert(key K, value string) {
	t.entries[key] = value
	t.index[value] = key
}

// Lookup returns the value bound to key.
func (t *Table[K]) Lookup(key K) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	value, ok := t.entries[key]
	return value, ok
}

// KeyOf returns the key value is bound to.
func (t *Table[K]) KeyOf(value string) (K, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	key, ok := t.index[value]
	return key, ok
}

// Len returns the number of entries.
func (t *Table[K]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Entries returns all entries ordered by key.
func (t *Table[K]) Entries() []Entry[K] {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := make([]Entry[K], 0, len(t.entries))
	for key, value := range t.entries {
		entries = append(entries, Entry[K]{Key: key, Value: value})
	}
	slices.SortFunc(entries, func(a, b Entry[K]) int {
		return cmp.Compare(a.Key, b.Key)
	})
	return entries
}

// Restore binds the given pairs exactly as supplied.
// Pairs identical to existing entries are accepted. The table is left
// unchanged when any pair is rejected.
func (t *Table[K]) Restore(entries []Entry[K]) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	pending := make(map[K]string, len(entries))
	pendingIndex := make(map[string]K, len(entries))
	for _, e := range entries {
		if err := t.checkRestore(e, pending, pendingIndex); err != nil {
			return err
		}
		pending[e.Key] = e.Value
		pendingIndex[e.Value] = e.Key
	}

	for key, value := range pending {
		t.insert(key, value)
	}
	return nil
}

func (t *Table[K]) checkRestore(e Entry[K], pending map[K]string, pendingIndex map[string]K) error {
	if e.Key == t.space.Reserved {
		return fmt.Errorf("restore %v: %w", e.Key, ErrReservedKey)
	}
	if e.Value == "" {
		return fmt.Errorf("restore %v: %w", e.Key, ErrEmptyValue)
	}

	for _, entries := range []map[K]string{t.entries, pending} {
		if current, ok := entries[e.Key]; ok && current != e.Value {
			return fmt.Errorf("restore %v=%q (bound to %q): %w", e.Key, e.Value, current, ErrKeyConflict)
		}
	}
	for _, index := range []map[string]K{t.index, pendingIndex} {
		if key, ok := index[e.Value]; ok && key != e.Key {
			return fmt.Errorf("restore %v=%q (bound to %v): %w", e.Key, e.Value, key, ErrValueConflict)
		}
	}
	return nil
}
