// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/halmod/halmod/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origDate
	})

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q", got)
	}

	Version, Commit, BuildDate = "v1.2.3", "abc123", "2026-01-01"
	want := "v1.2.3 (commit: abc123, built: 2026-01-01)"
	if got := getVersionString(); got != want {
		t.Errorf("getVersionString() = %q, want %q", got, want)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	root := NewRootCommand(NewApp(Dependencies{}))
	for _, name := range []string{"get", "paths", "props", "config"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("subcommand %q not registered (err=%v)", name, err)
		}
	}
	for _, flag := range []string{"verbose", "config", "prop", "root", "ext"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	plain := errors.New("plain failure")
	if got := formatErrorForDisplay(plain, false); got != "plain failure" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	ae := issue.NewErrorContext().
		WithOperation("load module").
		WithResource("sensors").
		WithSuggestion("Run 'halmod paths sensors'").
		Wrap(errors.New("no candidate loaded")).
		BuildError()
	wrapped := &ExitError{Code: ExitNotFound, Err: ae}

	got := formatErrorForDisplay(wrapped, false)
	if !strings.Contains(got, "Run 'halmod paths sensors'") {
		t.Errorf("suggestions missing:\n%s", got)
	}
	if strings.Contains(got, "Error chain") {
		t.Errorf("non-verbose output should not show the chain:\n%s", got)
	}
	if verbose := formatErrorForDisplay(wrapped, true); !strings.Contains(verbose, "Error chain") {
		t.Errorf("verbose output should show the chain:\n%s", verbose)
	}
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	ae := issue.NewErrorContext().
		WithOperation("load module").
		WithIssue(issue.ModuleNotFoundId).
		Wrap(errors.New("nothing loaded")).
		BuildError()

	var quiet bytes.Buffer
	writeError(&quiet, ae, false)
	if !strings.Contains(quiet.String(), "Error:") || strings.Contains(quiet.String(), "Module not found!") {
		t.Errorf("non-verbose writeError output:\n%s", quiet.String())
	}
	if !strings.Contains(quiet.String(), "See also:") || !strings.Contains(quiet.String(), "source.android.com") {
		t.Errorf("non-verbose writeError should list the issue links:\n%s", quiet.String())
	}

	var plain bytes.Buffer
	writeError(&plain, errors.New("boom"), false)
	if strings.Contains(plain.String(), "See also:") {
		t.Errorf("errors without an issue should not list links:\n%s", plain.String())
	}

	var loud bytes.Buffer
	writeError(&loud, ae, true)
	if loud.Len() <= quiet.Len() || !strings.Contains(loud.String(), "Module") {
		t.Errorf("verbose writeError should include the issue guide:\n%s", loud.String())
	}
}
