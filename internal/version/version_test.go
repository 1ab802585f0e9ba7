package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestCurrent_Overrides(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version = " 1.2.3 "
	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"

	info := Current()
	if info.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", info.Version, "1.2.3")
	}
	if got, want := info.String(), "1.2.3 (abc123d, 2024-01-15T10:30:00Z)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestInfo_StringWithoutOptionalFields(t *testing.T) {
	if got := (Info{Version: "0.1.0"}).String(); got != "0.1.0" {
		t.Errorf("String() = %q", got)
	}
}

func TestColored(t *testing.T) {
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })

	cases := map[string]string{
		"0.1.0-dev":   "0.1.0-dev",
		"1.2.3+meta":  "1.2.3+meta",
		"unversioned": "unversioned",
	}
	for in, want := range cases {
		if got := Colored(in); got != want {
			t.Errorf("Colored(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestColored_Paints(t *testing.T) {
	orig := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = orig })

	if got := Colored("1.2.3"); got == "1.2.3" {
		t.Error("expected escape sequences with color enabled")
	}
}
