package wails

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/exec"
	"github.com/ehsanpo/create-wails-app/internal/logging"
	"github.com/ehsanpo/create-wails-app/internal/pipeline"
	"github.com/ehsanpo/create-wails-app/internal/templates"
)

// ErrDirectoryExists is returned when the project directory is already there.
var ErrDirectoryExists = errors.New("target directory already exists")

// Engine generates a complete project: init through the Wails CLI, feature
// pipeline, npm install.
type Engine struct {
	Manager  *Manager
	Exec     *exec.Executor
	Store    *templates.Store
	Features []pipeline.Feature
	Out      io.Writer

	// ConfirmInstall is asked before installing a missing CLI.
	ConfirmInstall func(CLI) bool
}

// Generate creates the project described by cfg.
func (e *Engine) Generate(ctx context.Context, cfg *config.Config) (*pipeline.Report, error) {
	log := logging.Get("wails")

	if _, err := os.Stat(cfg.ProjectRoot); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryExists, cfg.ProjectRoot)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if err := e.Manager.Ensure(ctx, cfg.WailsVersion, e.ConfirmInstall); err != nil {
		return nil, err
	}
	if err := e.Manager.Init(ctx, cfg); err != nil {
		return nil, fmt.Errorf("wails init: %w", err)
	}

	env, err := pipeline.NewEnv(cfg, pipeline.ProjectFs(cfg.ProjectRoot, false), e.Store)
	if err != nil {
		return nil, err
	}
	if e.Out != nil {
		env.Out = e.Out
	}

	report, err := pipeline.Run(ctx, env, e.Features)
	if err != nil {
		return report, err
	}
	log.Info().Int("applied", len(report.Applied)).Int("skipped", len(report.Skips)).Msg("features applied")

	if cfg.InstallDeps {
		if err := e.installDependencies(ctx, cfg.ProjectRoot); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (e *Engine) installDependencies(ctx context.Context, root string) error {
	dir := filepath.Join(root, "frontend")
	if _, err := os.Stat(filepath.Join(dir, "package.json")); err != nil {
		dir = root
		if _, err := os.Stat(filepath.Join(dir, "package.json")); err != nil {
			logging.Get("wails").Warn().Str("root", root).Msg("no package.json, skipping npm install")
			return nil
		}
	}
	if err := e.Exec.WithDir(dir).RunWithSpinner(ctx, "Installing frontend dependencies", "npm", "install"); err != nil {
		return fmt.Errorf("npm install: %w", err)
	}
	return nil
}
