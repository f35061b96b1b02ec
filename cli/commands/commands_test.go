package commands

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/strhash/cli/internal/config"
	"github.com/satishbabariya/strhash/intern"
	"github.com/satishbabariya/strhash/intern/snapshot"
	"github.com/satishbabariya/strhash/store"
)

func useMemFs(t *testing.T) afero.Fs {
	t.Helper()

	prev := config.AppFs
	fs := afero.NewMemMapFs()
	config.AppFs = fs
	viper.Reset()
	t.Cleanup(func() {
		config.AppFs = prev
		viper.Reset()
	})
	return fs
}

// resetFlags returns every flag to its default so one command run does not
// leak into the next
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command with fresh flags
func run(t *testing.T, args ...string) error {
	t.Helper()

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func readKeys(t *testing.T, fs afero.Fs, path string) *snapshot.Snapshot {
	t.Helper()

	f, err := fs.Open(path)
	require.NoError(t, err)
	defer f.Close()

	format, err := snapshot.FormatFromPath(path)
	require.NoError(t, err)
	snap, err := snapshot.Decode(f, format)
	require.NoError(t, err)
	return snap
}

func writeKeys(t *testing.T, fs afero.Fs, path string, snap *snapshot.Snapshot) {
	t.Helper()

	format, err := snapshot.FormatFromPath(path)
	require.NoError(t, err)
	f, err := fs.Create(path)
	require.NoError(t, err)
	require.NoError(t, snapshot.Encode(f, snap, format))
	require.NoError(t, f.Close())
}

func int32Value(snap *snapshot.Snapshot, key int32) (string, bool) {
	for _, e := range snap.Int32 {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

func int32Key(snap *snapshot.Snapshot, value string) (int32, bool) {
	for _, e := range snap.Int32 {
		if e.Value == value {
			return e.Key, true
		}
	}
	return 0, false
}

func testConfig(path string) *config.Config {
	return &config.Config{SnapshotPath: path, Reserved32: -1, Provider: "sqlite"}
}

func TestSessionSaveAndReopen(t *testing.T) {
	fs := useMemFs(t)
	cfg := testConfig("/data/keys.txt")

	s, err := openSession(cfg)
	require.NoError(t, err)
	require.Zero(t, s.len())

	k32, k64 := s.internValue("Hello")
	require.NoError(t, s.save())

	exists, err := afero.Exists(fs, "/data/keys.txt")
	require.NoError(t, err)
	assert.True(t, exists)

	reopened, err := openSession(cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, reopened.len())

	got32, got64 := reopened.internValue("Hello")
	assert.Equal(t, k32, got32)
	assert.Equal(t, k64, got64)
}

func TestSessionSaveSkipsUnchanged(t *testing.T) {
	fs := useMemFs(t)

	s, err := openSession(testConfig("/keys.json"))
	require.NoError(t, err)
	require.NoError(t, s.save())

	exists, err := afero.Exists(fs, "/keys.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestOpenSessionRejectsUnknownExtension(t *testing.T) {
	useMemFs(t)

	_, err := openSession(testConfig("/keys.csv"))
	assert.ErrorIs(t, err, snapshot.ErrUnknownFormat)
}

func TestOpenSessionRejectsReservedMismatch(t *testing.T) {
	fs := useMemFs(t)

	in := intern.New()
	in.Key32("Hello")
	f, err := fs.Create("/keys.yaml")
	require.NoError(t, err)
	require.NoError(t, snapshot.Encode(f, snapshot.Capture(in), snapshot.YAML))
	require.NoError(t, f.Close())

	cfg := testConfig("/keys.yaml")
	cfg.Reserved32 = 0
	_, err = openSession(cfg)
	assert.ErrorIs(t, err, snapshot.ErrReservedMismatch)
}

func TestScanLines(t *testing.T) {
	lines, err := scanLines(strings.NewReader("  Hello \n\n\tWorld\n  \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "World"}, lines)
}

func TestLoadAndExportCommands(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "/in/a.txt", []byte("Hello\nWorld\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/in/b.txt", []byte("World\nAgain\n"), 0o644))

	require.NoError(t, run(t, "-q", "-f", "/keys.json", "load", "/in/a.txt", "/in/b.txt"))
	require.NoError(t, run(t, "-q", "-f", "/keys.json", "export", "/out/keys.txt"))

	f, err := fs.Open("/out/keys.txt")
	require.NoError(t, err)
	defer f.Close()

	snap, err := snapshot.Decode(f, snapshot.Text)
	require.NoError(t, err)
	assert.Len(t, snap.Int32, 3)
	assert.Len(t, snap.Uint64, 3)
	assert.Equal(t, int32(-1), snap.Reserved32)
}

func TestKeyCommandDesiredKeys(t *testing.T) {
	fs := useMemFs(t)

	require.NoError(t, run(t, "-q", "-f", "/keys.json", "key", "--desired32", "100", "--desired64", "7", "Hello"))

	snap := readKeys(t, fs, "/keys.json")
	assert.Equal(t, []intern.Entry[int32]{{Key: 100, Value: "Hello"}}, snap.Int32)
	assert.Equal(t, []intern.Entry[uint64]{{Key: 7, Value: "Hello"}}, snap.Uint64)

	require.NoError(t, run(t, "-q", "-f", "/keys.json", "key", "--desired32", "100", "World"))

	snap = readKeys(t, fs, "/keys.json")
	hello, ok := int32Value(snap, 100)
	require.True(t, ok)
	assert.Equal(t, "Hello", hello)

	world, ok := int32Key(snap, "World")
	require.True(t, ok)
	assert.NotEqual(t, int32(100), world)
	assert.NotEqual(t, int32(-1), world)

	// --desired64 was not repeated, so World's uint64 key is content-derived.
	require.Len(t, snap.Uint64, 2)
	assert.Contains(t, snap.Uint64, intern.Entry[uint64]{Key: intern.Hash64("World"), Value: "World"})
}

func TestKeyCommandNoCheckReturnsExistingKey(t *testing.T) {
	fs := useMemFs(t)

	require.NoError(t, run(t, "-q", "-f", "/keys.json", "key", "Hello"))
	require.NoError(t, run(t, "-q", "-f", "/keys.json", "key", "--desired32", "5", "--no-check", "Hello"))

	snap := readKeys(t, fs, "/keys.json")
	assert.Equal(t, []intern.Entry[int32]{{Key: intern.Hash32("Hello"), Value: "Hello"}}, snap.Int32)
	_, ok := int32Value(snap, 5)
	assert.False(t, ok)
}

func TestKeyCommandDryRun(t *testing.T) {
	fs := useMemFs(t)

	require.NoError(t, run(t, "-q", "-f", "/keys.json", "key", "--dry-run", "Hello"))

	exists, err := afero.Exists(fs, "/keys.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestImportCommand(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, run(t, "-q", "-f", "/keys.json", "key", "Hello"))

	other := intern.New()
	other.Key32("World")
	other.Key64("World")
	other.Key32("Hello")
	other.Key64("Hello")
	writeKeys(t, fs, "/other.yaml", snapshot.Capture(other))

	require.NoError(t, run(t, "-q", "-f", "/keys.json", "import", "/other.yaml"))

	snap := readKeys(t, fs, "/keys.json")
	assert.Equal(t, 4, snap.Len())
	assert.Equal(t, other.Int32().Entries(), snap.Int32)
	assert.Equal(t, other.Uint64().Entries(), snap.Uint64)
}

func TestImportCommandRejectsConflicts(t *testing.T) {
	fs := useMemFs(t)
	require.NoError(t, run(t, "-q", "-f", "/keys.json", "key", "Hello"))

	before, err := afero.ReadFile(fs, "/keys.json")
	require.NoError(t, err)

	writeKeys(t, fs, "/conflict.txt", &snapshot.Snapshot{
		Version:    snapshot.CurrentVersion,
		Reserved32: -1,
		Int32:      []intern.Entry[int32]{{Key: intern.Hash32("Hello"), Value: "Other"}},
	})

	err = run(t, "-q", "-f", "/keys.json", "import", "--format", "text", "/conflict.txt")
	require.ErrorIs(t, err, intern.ErrKeyConflict)

	after, err := afero.ReadFile(fs, "/keys.json")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDBPushAndPull(t *testing.T) {
	fs := useMemFs(t)
	dbPath := filepath.Join(t.TempDir(), "strhash.db")

	stored := intern.New()
	for _, v := range []string{"Hello", "Stored"} {
		stored.Key32(v)
		stored.Key64(v)
	}
	st, err := store.Open("sqlite", dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Save(context.Background(), snapshot.Capture(stored)))
	require.NoError(t, st.Close())

	require.NoError(t, run(t, "-q", "-f", "/keys.json", "key", "Hello", "Local"))
	require.NoError(t, run(t, "-q", "-f", "/keys.json", "db", "pull", "--provider", "sqlite", "--url", dbPath))

	snap := readKeys(t, fs, "/keys.json")
	assert.Equal(t, 6, snap.Len())
	key, ok := int32Key(snap, "Stored")
	require.True(t, ok)
	assert.Equal(t, intern.Hash32("Stored"), key)

	require.NoError(t, run(t, "-q", "-f", "/keys.json", "db", "push", "--provider", "sqlite", "--url", dbPath))

	st, err = store.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer st.Close()
	pushed, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap.Int32, pushed.Int32)
	assert.Equal(t, snap.Uint64, pushed.Uint64)
}

func TestVersionCommand(t *testing.T) {
	useMemFs(t)

	require.NoError(t, run(t, "version", "--full"))
	require.NoError(t, run(t, "-q", "version", "--full"))
}
