package version

import (
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
)

func TestVersionIsSemantic(t *testing.T) {
	if _, err := semver.NewVersion(Version); err != nil {
		t.Fatalf("Version %q is not semantic: %v", Version, err)
	}
}

func TestColoredKeepsText(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	orig := Version
	defer func() { Version = orig }()

	for _, v := range []string{"0.1.0", "1.2.3-rc.1+build.123", "dev"} {
		Version = v
		if got := Colored(); got != v {
			t.Fatalf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestBannerOptionalFields(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "", ""
	b := Banner()
	if !strings.HasPrefix(b, "minic "+Version+"\n") {
		t.Fatalf("banner = %q", b)
	}
	if strings.Contains(b, "commit:") || strings.Contains(b, "built:") {
		t.Fatalf("empty fields must be omitted: %q", b)
	}

	GitCommit, BuildDate = "abc123", "2024-01-15"
	b = Banner()
	if !strings.Contains(b, "commit: abc123\n") || !strings.Contains(b, "built:  2024-01-15\n") {
		t.Fatalf("banner = %q", b)
	}
}
