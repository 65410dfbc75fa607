package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Metadata is the project information the Wails CLI keeps next to the code.
type Metadata struct {
	Name        string
	Description string
	Identifier  string
}

// v2: wails.json
type wailsJSON struct {
	Name           string `json:"name"`
	OutputFilename string `json:"outputfilename"`
	Info           struct {
		ProductName string `json:"productName"`
		Comments    string `json:"comments"`
	} `json:"info"`
}

// v3: build/config.yml
type buildConfig struct {
	Info struct {
		ProductName       string `yaml:"productName"`
		ProductIdentifier string `yaml:"productIdentifier"`
		Description       string `yaml:"description"`
	} `yaml:"info"`
}

// ReadMetadata reads the Wails project file for the given major version.
func ReadMetadata(fsys afero.Fs, root string, version int) (*Metadata, error) {
	switch version {
	case 2:
		var w wailsJSON
		if err := decode(fsys, filepath.Join(root, "wails.json"), func(data []byte) error {
			return json.Unmarshal(data, &w)
		}); err != nil {
			return nil, err
		}
		name := w.Name
		if name == "" {
			name = w.OutputFilename
		}
		return &Metadata{Name: name, Description: w.Info.Comments}, nil

	case 3:
		var c buildConfig
		if err := decode(fsys, filepath.Join(root, "build", "config.yml"), func(data []byte) error {
			return yaml.Unmarshal(data, &c)
		}); err != nil {
			return nil, err
		}
		return &Metadata{
			Name:        c.Info.ProductName,
			Description: c.Info.Description,
			Identifier:  c.Info.ProductIdentifier,
		}, nil
	}
	return nil, fmt.Errorf("unsupported wails version %d", version)
}

func decode(fsys afero.Fs, path string, fn func([]byte) error) error {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s not found: %w", path, err)
		}
		return err
	}
	if err := fn(data); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
