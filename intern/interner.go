// Package intern maps strings to stable integer keys.
//
// An Interner owns two independent tables, one keyed by int32 and one keyed
// by uint64. Keys are derived from string content unless the caller asks
// for a specific one, and collisions between different strings are resolved
// by moving the newcomer to a free key instead of overwriting.
//
// There is no package-level instance: construct one Interner and pass it to
// whatever needs it.
package intern

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/satishbabariya/strhash/internal/debug"
)

// Interner holds a 32-bit and a 64-bit table.
type Interner struct {
	int32Table  *Table[int32]
	uint64Table *Table[uint64]
}

type options struct {
	space32 KeySpace[int32]
	space64 KeySpace[uint64]
	rnd     Rand
	logger  *slog.Logger
}

// Option configures an Interner.
type Option func(*options)

// WithReserved32 sets the sentinel of the 32-bit table.
func WithReserved32(reserved int32) Option {
	return func(o *options) { o.space32 = o.space32.WithReserved(reserved) }
}

// WithReserved64 sets the sentinel of the 64-bit table.
func WithReserved64(reserved uint64) Option {
	return func(o *options) { o.space64 = o.space64.WithReserved(reserved) }
}

// WithHash32 replaces the content hash of the 32-bit table.
func WithHash32(hash func(string) int32) Option {
	return func(o *options) { o.space32 = o.space32.WithHash(hash) }
}

// WithHash64 replaces the content hash of the 64-bit table.
func WithHash64(hash func(string) uint64) Option {
	return func(o *options) { o.space64 = o.space64.WithHash(hash) }
}

// WithRand sets the random source used for collision perturbation.
func WithRand(r Rand) Option {
	return func(o *options) { o.rnd = r }
}

// WithSeed seeds the collision perturbation source; 0 keeps a random seed.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		if seed != 0 {
			o.rnd = rand.New(rand.NewPCG(seed, seed))
		}
	}
}

// WithLogger sets the logger collision resolutions are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates an empty Interner.
func New(opts ...Option) *Interner {
	o := &options{
		space32: Int32Keys(),
		space64: Uint64Keys(),
		rnd:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:  debug.Logger(),
	}
	for _, opt := range opts {
		opt(o)
	}

	rnd := &lockedRand{r: o.rnd}
	return &Interner{
		int32Table:  NewTable(o.space32, rnd, o.logger.With("table", "int32")),
		uint64Table: NewTable(o.space64, rnd, o.logger.With("table", "uint64")),
	}
}

// lockedRand serialises a Rand shared by both tables.
type lockedRand struct {
	mu sync.Mutex
	r  Rand
}

func (l *lockedRand) Uint64N(n uint64) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Uint64N(n)
}

// Int32 returns the 32-bit table.
func (i *Interner) Int32() *Table[int32] {
	return i.int32Table
}

// Uint64 returns the 64-bit table.
func (i *Interner) Uint64() *Table[uint64] {
	return i.uint64Table
}

// Key32 interns value in the 32-bit table under its content-derived key.
func (i *Interner) Key32(value string) int32 {
	return i.int32Table.GetOrAssignKey(i.int32Table.Reserved(), value, true)
}

// Key64 interns value in the 64-bit table under its content-derived key.
func (i *Interner) Key64(value string) uint64 {
	return i.uint64Table.GetOrAssignKey(i.uint64Table.Reserved(), value, true)
}
