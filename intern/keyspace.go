package intern

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Key is the set of integer widths a Table can be keyed by.
type Key interface {
	~int32 | ~uint64
}

// Rand is the random source used when a collision has to be perturbed.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Uint64N(n uint64) uint64
}

// KeySpace describes one key width: its sentinel, how keys are derived from
// content and how a colliding key is moved away before probing.
type KeySpace[K Key] struct {
	Reserved K
	Hash     func(string) K
	Perturb  func(key K, r Rand) K
}

// WithReserved returns a copy of the key space using reserved as sentinel.
func (s KeySpace[K]) WithReserved(reserved K) KeySpace[K] {
	s.Reserved = reserved
	return s
}

// WithHash returns a copy of the key space deriving keys with hash.
func (s KeySpace[K]) WithHash(hash func(string) K) KeySpace[K] {
	s.Hash = hash
	return s
}

// Int32Keys is the 32-bit key space: reserved -1, xxhash-derived keys.
func Int32Keys() KeySpace[int32] {
	return KeySpace[int32]{
		Reserved: -1,
		Hash:     Hash32,
		Perturb:  Perturb32,
	}
}

// Uint64Keys is the 64-bit key space: reserved 0, SHA-256-derived keys.
func Uint64Keys() KeySpace[uint64] {
	return KeySpace[uint64]{
		Reserved: 0,
		Hash:     Hash64,
		Perturb:  Perturb64,
	}
}

// Hash32 folds the 64-bit xxhash of s into 32 bits.
func Hash32(s string) int32 {
	h := xxhash.Sum64String(s)
	return int32(uint32(h>>32) ^ uint32(h))
}

// Hash64 XOR-folds the SHA-256 digest of s in 8-byte little-endian chunks.
func Hash64(s string) uint64 {
	sum := sha256.Sum256([]byte(s))
	digest := sum[:]
	if pad := len(digest) % 8; pad != 0 {
		digest = append(digest, make([]byte, 8-pad)...)
	}

	var h uint64
	for i := 0; i < len(digest); i += 8 {
		h ^= binary.LittleEndian.Uint64(digest[i : i+8])
	}
	return h
}

const (
	perturbScale    = 0.3
	perturbSpan32   = 1 << 30
	perturbSpan64   = 1 << 62
	minPerturbShift = 1
)

// Perturb32 scales key down and adds a random offset in [1, 2^30).
// |0.3 * key| + 2^30 stays below 2^31, so the result never overflows.
func Perturb32(key int32, r Rand) int32 {
	base := int32(float64(key) * perturbScale)
	return base + int32(randRange(r, minPerturbShift, perturbSpan32))
}

// Perturb64 scales key down and adds a random offset in [1, 2^62).
func Perturb64(key uint64, r Rand) uint64 {
	base := uint64(float64(key) * perturbScale)
	return base + randRange(r, minPerturbShift, perturbSpan64)
}

// randRange returns a uniform value in [lo, hi).
func randRange(r Rand, lo, hi uint64) uint64 {
	return lo + r.Uint64N(hi-lo)
}
