// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/halmod/halmod/internal/config"
	"github.com/halmod/halmod/internal/issue"
	"github.com/halmod/halmod/internal/testutil"
)

const (
	testRoot    = "/lib/hw"
	boardPath   = "/lib/hw/sensors.board7.so"
	defaultPath = "/lib/hw/sensors.default.so"
)

type (
	staticConfig struct {
		cfg   *config.Config
		err   error
		calls []config.LoadOptions
	}

	cliResult struct {
		stdout string
		stderr string
		err    error
	}
)

func (p *staticConfig) Load(_ context.Context, opts config.LoadOptions) (*config.Config, error) {
	p.calls = append(p.calls, opts)
	if p.err != nil {
		return nil, p.err
	}
	cfg := *p.cfg
	return &cfg, nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.LibraryRoot = testRoot
	cfg.PropertyFiles = nil
	return cfg
}

// runCLI executes the root command with args against linker and cfg.
func runCLI(t *testing.T, linker *testutil.FakeLinker, provider ConfigProvider, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := NewApp(Dependencies{
		Config: provider,
		Linker: linker,
		Stdout: &stdout,
		Stderr: &stderr,
	})
	root := NewRootCommand(app)
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.ExecuteContext(context.Background())
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func exitCode(t *testing.T, err error) ExitCode {
	t.Helper()
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error %v is not an *ExitError", err)
	}
	return exitErr.Code
}

func TestNewApp_Defaults(t *testing.T) {
	t.Parallel()

	app := NewApp(Dependencies{})
	if app.Config == nil || app.stdout == nil || app.stderr == nil {
		t.Fatalf("NewApp() left nil defaults: %+v", app)
	}
	if app.linkerFor(config.LinkerNative) == nil || app.linkerFor(config.LinkerPlugin) == nil {
		t.Error("linkerFor() returned nil")
	}
}

func TestApp_LinkerOverride(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeLinker()
	app := NewApp(Dependencies{Linker: fake})
	if app.linkerFor(config.LinkerPlugin) != fake {
		t.Error("Dependencies.Linker should replace the configured linker")
	}
}

func TestApp_ConfigPathFlagReachesProvider(t *testing.T) {
	t.Parallel()

	provider := &staticConfig{cfg: testConfig()}
	res := runCLI(t, testutil.NewFakeLinker(), provider, "--config", "/etc/halmod.cue", "config", "dump")
	if res.err != nil {
		t.Fatalf("config dump error = %v", res.err)
	}
	if len(provider.calls) != 1 || provider.calls[0].ConfigFilePath != "/etc/halmod.cue" {
		t.Errorf("provider calls = %+v", provider.calls)
	}
}

func TestApp_ConfigLoadFailure(t *testing.T) {
	t.Parallel()

	loadErr := issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource("/etc/halmod.cue").
		Wrap(errors.New("syntax error")).
		BuildError()
	provider := &staticConfig{err: loadErr}

	fake := testutil.NewFakeLinker()
	res := runCLI(t, fake, provider, "get", "sensors")
	if code := exitCode(t, res.err); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}

	ae, ok := asActionable(res.err)
	if !ok || ae.IssueId != issue.ConfigLoadFailedId {
		t.Errorf("expected ConfigLoadFailed issue, got %#v", res.err)
	}
	if fake.Opens() != 0 {
		t.Errorf("Opens() = %d, want 0", fake.Opens())
	}
}

func TestApp_InvalidPropAssignment(t *testing.T) {
	t.Parallel()

	res := runCLI(t, testutil.NewFakeLinker(), &staticConfig{cfg: testConfig()}, "--prop", "ro.arch", "get", "sensors")
	if code := exitCode(t, res.err); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	ae, ok := asActionable(res.err)
	if !ok || ae.IssueId != issue.InvalidPropertyAssignmentId {
		t.Errorf("expected InvalidPropertyAssignment issue, got %#v", res.err)
	}
}

func TestApp_UnreadablePropertyFile(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.PropertyFiles = []string{t.TempDir()} // a directory cannot be parsed as build.prop
	res := runCLI(t, testutil.NewFakeLinker(), &staticConfig{cfg: cfg}, "props")

	if code := exitCode(t, res.err); code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	ae, ok := asActionable(res.err)
	if !ok || ae.IssueId != issue.PropertyFileUnreadableId {
		t.Errorf("expected PropertyFileUnreadable issue, got %#v", res.err)
	}
}

func TestWithIssue_KeepsExistingId(t *testing.T) {
	t.Parallel()

	err := issue.NewErrorContext().WithOperation("x").WithIssue(issue.ModuleNotFoundId).BuildError()
	withIssue(err, issue.ConfigLoadFailedId)
	if ae, _ := asActionable(err); ae.IssueId != issue.ModuleNotFoundId {
		t.Errorf("IssueId = %d, want %d", ae.IssueId, issue.ModuleNotFoundId)
	}

	plain := errors.New("plain")
	if got := withIssue(plain, issue.ConfigLoadFailedId); got != plain {
		t.Error("withIssue() should return non-actionable errors unchanged")
	}
}
