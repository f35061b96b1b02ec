package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/satishbabariya/strhash/intern/snapshot"
)

func TestGet(t *testing.T) {
	info := Get()

	if info.GoVersion != runtime.Version() {
		t.Errorf("Expected Go version %s, got %s", runtime.Version(), info.GoVersion)
	}
	if info.SnapshotFormat != snapshot.CurrentVersion {
		t.Errorf("Expected snapshot format %s, got %s", snapshot.CurrentVersion, info.SnapshotFormat)
	}
	if err := snapshot.CheckVersion(info.SnapshotFormat); err != nil {
		t.Errorf("Written snapshot format must be readable: %v", err)
	}
}

func TestFullString(t *testing.T) {
	full := Get().FullString()

	for _, want := range []string{"strhash version " + Version, "Snapshot Format: " + snapshot.CurrentVersion} {
		if !strings.Contains(full, want) {
			t.Errorf("Expected %q in %q", want, full)
		}
	}
}
