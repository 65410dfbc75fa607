// Package wails drives the Wails CLI: detecting and installing it, running
// `init`, and orchestrating a full project generation around the feature
// pipeline.
package wails

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/exec"
	"github.com/ehsanpo/create-wails-app/internal/logging"
)

// ErrCLINotFound is returned when the Wails CLI for a version is not on PATH.
var ErrCLINotFound = errors.New("wails CLI not found")

// CLI identifies the command line tool of one Wails major version.
type CLI struct {
	Name    string
	Version int
}

// InstallPackage is the `go install` target of the CLI.
func (c CLI) InstallPackage() string {
	if c.Version == 3 {
		return "github.com/wailsapp/wails/v3/cmd/wails3@latest"
	}
	return "github.com/wailsapp/wails/v2/cmd/wails@latest"
}

// CLIFor returns the CLI of a Wails major version.
func CLIFor(version int) CLI {
	if version == 3 {
		return CLI{Name: "wails3", Version: 3}
	}
	return CLI{Name: "wails", Version: 2}
}

// Manager detects, installs and runs the Wails CLI.
type Manager struct {
	exec *exec.Executor
	out  io.Writer
}

// NewManager returns a Manager running commands through e.
func NewManager(e *exec.Executor, out io.Writer) *Manager {
	if out == nil {
		out = os.Stdout
	}
	return &Manager{exec: e, out: out}
}

// Detect returns the installed CLI's version string.
func (m *Manager) Detect(ctx context.Context, version int) (string, error) {
	cli := CLIFor(version)
	if _, err := m.exec.LookPath(cli.Name); err != nil {
		return "", fmt.Errorf("%w: %s", ErrCLINotFound, cli.Name)
	}
	out, err := m.exec.Output(ctx, cli.Name, "version")
	if err != nil {
		return "", fmt.Errorf("%s version: %w", cli.Name, err)
	}
	return out, nil
}

// Install runs `go install` for the CLI and checks it is reachable afterwards.
func (m *Manager) Install(ctx context.Context, version int) error {
	cli := CLIFor(version)
	err := m.exec.RunWithSpinner(ctx, "Installing "+cli.Name, "go", "install", cli.InstallPackage())
	if err != nil {
		fmt.Fprint(m.out, ManualInstall(cli))
		return fmt.Errorf("installing %s: %w", cli.Name, err)
	}
	if _, err := m.Detect(ctx, version); err != nil {
		fmt.Fprint(m.out, ManualInstall(cli))
		return fmt.Errorf("%s installed but not on PATH (add $(go env GOPATH)/bin): %w", cli.Name, err)
	}
	return nil
}

// Ensure detects the CLI and installs it when missing and confirm allows.
// A nil confirm installs without asking.
func (m *Manager) Ensure(ctx context.Context, version int, confirm func(CLI) bool) error {
	log := logging.Get("wails")

	v, err := m.Detect(ctx, version)
	if err == nil {
		log.Debug().Int("wails", version).Str("version", v).Msg("CLI detected")
		return nil
	}
	if !errors.Is(err, ErrCLINotFound) {
		return err
	}

	cli := CLIFor(version)
	if confirm != nil && !confirm(cli) {
		fmt.Fprint(m.out, ManualInstall(cli))
		return err
	}
	return m.Install(ctx, version)
}

// Init runs `<cli> init` in the parent of the project root.
func (m *Manager) Init(ctx context.Context, cfg *config.Config) error {
	parent := filepath.Dir(cfg.ProjectRoot)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", parent, err)
	}

	args := []string{"init", "-n", cfg.ProjectName, "-t", cfg.Template.Arg}
	logging.Get("wails").Info().Str("cli", cfg.CLI).Strs("args", args).Str("dir", parent).Msg("initializing project")

	return m.exec.WithDir(parent).RunWithSpinner(ctx, "Initializing Wails project", cfg.CLI, args...)
}

// ManualInstall returns instructions for installing cli by hand.
func ManualInstall(cli CLI) string {
	return fmt.Sprintf(`
Install the Wails v%d CLI manually:

    go install %s

Make sure $(go env GOPATH)/bin is on your PATH, then check with:

    %s doctor

`, cli.Version, cli.InstallPackage(), cli.Name)
}
