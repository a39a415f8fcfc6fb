package version

import (
	"strings"
	"testing"
)

func TestVersionDefault(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestPlainHasNoEscapes(t *testing.T) {
	if got := Plain(); strings.ContainsRune(got, '\x1b') {
		t.Errorf("Plain() = %q, contains escape sequences", got)
	}
}

func TestVersionCanBeOverridden(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "1.2.3"
	GitCommit = "abc123def456"
	BuildDate = "2026-01-15T10:30:00Z"

	if Version != "1.2.3" || GitCommit != "abc123def456" || BuildDate != "2026-01-15T10:30:00Z" {
		t.Errorf("override failed: %q %q %q", Version, GitCommit, BuildDate)
	}
}
