package project

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/pkgjson"
	"github.com/spf13/afero"
)

// frontendPackages maps a framework package to its frontend, in match order.
var frontendPackages = []struct {
	pkg      string
	frontend config.Frontend
}{
	{"react", config.React},
	{"vue", config.Vue},
	{"svelte", config.Svelte},
	{"solid-js", config.Solid},
}

// DetectFrontend guesses the frontend of the project at root from its
// package.json dependencies. Projects without a known framework, or
// without a package.json, are vanilla.
func DetectFrontend(fsys afero.Fs, root string) (config.Frontend, error) {
	base := afero.NewBasePathFs(fsys, root)
	file, err := pkgjson.Locate(base)
	if errors.Is(err, pkgjson.ErrNoPackage) {
		return config.Vanilla, nil
	} else if err != nil {
		return "", err
	}

	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := decode(base, file, func(data []byte) error {
		return json.Unmarshal(data, &pkg)
	}); err != nil {
		return "", err
	}

	for _, fp := range frontendPackages {
		if _, ok := pkg.Dependencies[fp.pkg]; ok {
			return fp.frontend, nil
		}
		if _, ok := pkg.DevDependencies[fp.pkg]; ok {
			return fp.frontend, nil
		}
	}
	return config.Vanilla, nil
}

// Inspect builds the configuration for adding features to the Wails
// project at root.
func Inspect(fsys afero.Fs, root string, features []string) (*config.Config, error) {
	info, err := DetectModule(fsys, root)
	if err != nil {
		return nil, err
	}
	version, err := info.WailsVersion()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", root, err)
	}
	frontend, err := DetectFrontend(fsys, root)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Existing(root, version, frontend, features)
	if err != nil {
		return nil, err
	}

	// The Wails project file names the app when the directory does not.
	if meta, err := ReadMetadata(fsys, root, version); err == nil && meta.Name != cfg.ProjectName &&
		config.ValidateProjectName(meta.Name) == nil {
		cfg.ProjectName = meta.Name
		cfg.Params = config.Params(cfg)
	}
	return cfg, nil
}
