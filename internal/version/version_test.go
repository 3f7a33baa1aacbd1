package version

import (
	"runtime"
	"testing"
)

// withBuild подменяет значения, которые обычно проставляются через -ldflags.
func withBuild(t *testing.T, v, c, d string) {
	t.Helper()
	prevV, prevC, prevD := version, commit, date
	version, commit, date = v, c, d
	t.Cleanup(func() { version, commit, date = prevV, prevC, prevD })
}

func TestDefaults(t *testing.T) {
	v, c, d := Info()
	if v == "" || c == "" || d == "" {
		t.Fatalf("build info must never be empty: %q %q %q", v, c, d)
	}
	if GetVersion() != v || GetCommit() != c || GetDate() != d {
		t.Fatal("getters must agree with Info")
	}
}

func TestLinkerValues(t *testing.T) {
	withBuild(t, "v1.4.0", "3f2a9c1", "2026-10-01")

	if got, want := String(), "version=v1.4.0 commit=3f2a9c1 date=2026-10-01"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := GetVersion(); got != "v1.4.0" {
		t.Errorf("GetVersion() = %q", got)
	}
}

func TestUserAgent(t *testing.T) {
	withBuild(t, "v1.4.0", "3f2a9c1", "2026-10-01")

	want := "storefront/v1.4.0 (" + runtime.GOOS + "/" + runtime.GOARCH + ")"
	if got := UserAgent(); got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}
