package version

import (
	"strings"
	"testing"
)

func stubBuildVars(t *testing.T, ver, commit, branch, buildTime string) {
	t.Helper()
	origVersion, origCommit, origBranch, origBuildTime, origGoVersion :=
		Version, GitCommit, GitBranch, BuildTime, GoVersion
	t.Cleanup(func() {
		Version, GitCommit, GitBranch, BuildTime, GoVersion =
			origVersion, origCommit, origBranch, origBuildTime, origGoVersion
	})
	Version, GitCommit, GitBranch, BuildTime, GoVersion = ver, commit, branch, buildTime, "go1.26"
}

func TestGetVersionInfo(t *testing.T) {
	stubBuildVars(t, "1.2.0", "abc1234", "main", "2026-03-01T12:00:00Z")

	info := GetVersionInfo()
	if info.Version != "1.2.0" {
		t.Errorf("version = %q", info.Version)
	}
	if !info.IsRelease {
		t.Error("tagged version should be a release")
	}
	if info.BuildDate.Year() != 2026 {
		t.Errorf("build year = %d", info.BuildDate.Year())
	}
}

func TestGetVersionInfoDevDefaults(t *testing.T) {
	stubBuildVars(t, "dev", "", "", "")
	GoVersion = ""

	info := GetVersionInfo()
	if info.IsRelease {
		t.Error("dev should not be a release")
	}
	if info.BuildDate.IsZero() {
		t.Error("BuildDate should be backfilled")
	}
}

func TestShortAndFullVersion(t *testing.T) {
	stubBuildVars(t, "1.2.0", "abc1234", "fix/timecode", "2026-03-01T12:00:00Z")

	if got := GetShortVersion(); got != "1.2.0-abc1234" {
		t.Errorf("short version = %q", got)
	}

	full := GetFullVersion()
	for _, want := range []string{"1.2.0", "abc1234", "fix/timecode", "built"} {
		if !strings.Contains(full, want) {
			t.Errorf("full version %q missing %q", full, want)
		}
	}
}

func TestFullVersionHidesMainBranch(t *testing.T) {
	stubBuildVars(t, "1.2.0", "abc1234", "main", "2026-03-01T12:00:00Z")

	if full := GetFullVersion(); strings.Contains(full, "main") {
		t.Errorf("main branch should not appear: %q", full)
	}
}
