package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/mod/modfile"
)

const (
	wailsV2Module = "github.com/wailsapp/wails/v2"
	wailsV3Module = "github.com/wailsapp/wails/v3"
)

// ErrNotWails is returned when go.mod does not require any Wails module.
var ErrNotWails = errors.New("go.mod does not require wails v2 or v3")

// ModuleInfo contains information from go.mod
type ModuleInfo struct {
	Path      string   // Module path (e.g., "changeme")
	GoVersion string   // Go version requirement (e.g., "1.22")
	Requires  []string // Required module paths, direct and indirect
}

// DetectModule reads go.mod and returns module information.
// Returns an error if go.mod doesn't exist or is invalid.
func DetectModule(fsys afero.Fs, root string) (*ModuleInfo, error) {
	f, err := readModFile(fsys, root)
	if err != nil {
		return nil, err
	}

	info := &ModuleInfo{}
	if f.Module != nil {
		info.Path = f.Module.Mod.Path
	}
	if f.Go != nil {
		info.GoVersion = f.Go.Version
	}
	for _, r := range f.Require {
		info.Requires = append(info.Requires, r.Mod.Path)
	}
	return info, nil
}

// WailsVersion returns the Wails major version the module depends on.
func (m *ModuleInfo) WailsVersion() (int, error) {
	for _, r := range m.Requires {
		switch {
		case r == wailsV3Module || strings.HasPrefix(r, wailsV3Module+"/"):
			return 3, nil
		case r == wailsV2Module || strings.HasPrefix(r, wailsV2Module+"/"):
			return 2, nil
		}
	}
	return 0, ErrNotWails
}

// AddRequire adds a requirement to go.mod unless the module is already
// required at any version. It reports whether the file changed.
func AddRequire(fsys afero.Fs, root, path, version string) (bool, error) {
	f, err := readModFile(fsys, root)
	if err != nil {
		return false, err
	}

	for _, r := range f.Require {
		if r.Mod.Path == path {
			return false, nil
		}
	}

	if err := f.AddRequire(path, version); err != nil {
		return false, fmt.Errorf("adding %s: %w", path, err)
	}
	f.Cleanup()

	data, err := f.Format()
	if err != nil {
		return false, fmt.Errorf("formatting go.mod: %w", err)
	}

	modPath := filepath.Join(root, "go.mod")
	if err := afero.WriteFile(fsys, modPath, data, 0o644); err != nil {
		return false, fmt.Errorf("writing go.mod: %w", err)
	}
	return true, nil
}

func readModFile(fsys afero.Fs, root string) (*modfile.File, error) {
	modPath := filepath.Join(root, "go.mod")
	data, err := afero.ReadFile(fsys, modPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("go.mod not found in %s: %w", root, err)
		}
		return nil, fmt.Errorf("failed to read go.mod: %w", err)
	}

	f, err := modfile.Parse(modPath, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod: %w", err)
	}
	return f, nil
}
