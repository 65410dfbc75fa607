package pipeline

import (
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/dialect"
	"github.com/ehsanpo/create-wails-app/internal/patch"
	"github.com/ehsanpo/create-wails-app/internal/templates"
	"github.com/spf13/afero"
)

// Env is what every feature plans against. Fs is rooted at the project, so
// all paths are project-relative.
type Env struct {
	Config   *config.Config
	Strategy dialect.Strategy
	Store    *templates.Store
	Fs       afero.Fs
	Out      io.Writer
	Preview  bool

	applicator *patch.Applicator
}

// NewEnv selects the dialect strategy for cfg and wires the patch applicator.
func NewEnv(cfg *config.Config, fsys afero.Fs, store *templates.Store) (*Env, error) {
	strategy, err := dialect.ForVersion(cfg.WailsVersion)
	if err != nil {
		return nil, err
	}
	return &Env{
		Config:     cfg,
		Strategy:   strategy,
		Store:      store,
		Fs:         fsys,
		Out:        os.Stdout,
		applicator: patch.NewApplicator(fsys, strategy),
	}, nil
}

// ProjectFs returns a filesystem rooted at root. In dry-run mode writes land
// in memory on top of a read-only view of the disk, so later operations still
// see earlier ones.
func ProjectFs(root string, dryRun bool) afero.Fs {
	base := afero.NewBasePathFs(afero.NewOsFs(), root)
	if !dryRun {
		return base
	}
	return afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(base), afero.NewMemMapFs())
}

// Render reads a template asset for the configured dialect and fills in its
// placeholders.
func (e *Env) Render(asset string) (string, error) {
	raw, err := e.Store.Read(asset, e.Config.WailsVersion)
	if err != nil {
		return "", err
	}
	return templates.Substitute(raw, e.Config.Params), nil
}

// RenderWith is Render with extra placeholders layered over the project's.
func (e *Env) RenderWith(asset string, extra map[string]string) (string, error) {
	raw, err := e.Store.Read(asset, e.Config.WailsVersion)
	if err != nil {
		return "", err
	}
	params := make(map[string]string, len(e.Config.Params)+len(extra))
	maps.Copy(params, e.Config.Params)
	maps.Copy(params, extra)
	return templates.Substitute(raw, params), nil
}

// Has reports whether another feature is enabled in this run.
func (e *Env) Has(f config.Feature) bool {
	return e.Config.Features.Has(f)
}

// TypeScript reports whether generated frontend code should be TypeScript.
func (e *Env) TypeScript() bool {
	return e.Config.Template.HasTypeScript || e.Has(config.TypeScript)
}

// ScriptExt is "ts" or "js" depending on TypeScript.
func (e *Env) ScriptExt() string {
	if e.TypeScript() {
		return "ts"
	}
	return "js"
}

func (e *Env) String() string {
	return fmt.Sprintf("%s (wails v%d, %s)", e.Config.ProjectName, e.Config.WailsVersion, e.Strategy.Name())
}
