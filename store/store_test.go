package store

import (
	"context"
	"math"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/strhash/intern"
	"github.com/satishbabariya/strhash/intern/snapshot"
)

func openMemory(t *testing.T) *Store {
	t.Helper()

	s, err := Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	s.db.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	in := intern.New()
	for _, v := range []string{"Hello", "World", "ünïcödé"} {
		in.Key32(v)
		in.Key64(v)
	}
	in.Uint64().GetOrAssignKey(math.MaxUint64, "max", true)
	in.Int32().GetOrAssignKey(math.MinInt32, "min", true)
	want := snapshot.Capture(in)

	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)

	first := intern.New()
	first.Key32("old")
	require.NoError(t, s.Save(ctx, snapshot.Capture(first)))

	second := intern.New()
	second.Key64("new")
	require.NoError(t, s.Save(ctx, snapshot.Capture(second)))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.Int32)
	require.Len(t, got.Uint64, 1)
	assert.Equal(t, "new", got.Uint64[0].Value)
}

func TestLoadEmpty(t *testing.T) {
	s := openMemory(t)

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestOpenUnsupportedProvider(t *testing.T) {
	_, err := Open("oracle", "dsn")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}
