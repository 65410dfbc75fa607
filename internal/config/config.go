// Package config turns collected answers into the immutable configuration
// every generation stage reads.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Frontend is the frontend stack of the generated project.
type Frontend string

const (
	React   Frontend = "react"
	Vue     Frontend = "vue"
	Svelte  Frontend = "svelte"
	Solid   Frontend = "solid"
	Vanilla Frontend = "vanilla"
)

// Frontends lists the supported frontends in prompt order.
var Frontends = []Frontend{React, Vue, Svelte, Solid, Vanilla}

var projectNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Answers is what the user chose, from prompts, flags, a preset file or the
// environment. Zero values mean "not answered".
type Answers struct {
	ProjectName     string   `mapstructure:"name" yaml:"name"`
	OutputDir       string   `mapstructure:"dir" yaml:"dir,omitempty"`
	WailsVersion    int      `mapstructure:"wails" yaml:"wails"`
	Frontend        string   `mapstructure:"frontend" yaml:"frontend"`
	Features        []string `mapstructure:"features" yaml:"features"`
	SupabaseOptions []string `mapstructure:"supabase" yaml:"supabase,omitempty"`
	NoInstall       bool     `mapstructure:"no-install" yaml:"no-install,omitempty"`
}

// Template is the starter template handed to the Wails CLI.
type Template struct {
	Name          string
	Arg           string // value passed to `init -t`
	HasTypeScript bool
}

// SupabaseOptions selects the helper sections of the generated client.
type SupabaseOptions struct {
	Auth     bool
	Database bool
	Storage  bool
}

// Config is the resolved configuration for one run.
type Config struct {
	ProjectName  string
	ProjectRoot  string
	WailsVersion int
	CLI          string
	Frontend     Frontend
	Template     Template
	Features     FeatureSet
	Supabase     SupabaseOptions
	InstallDeps  bool
	Params       map[string]string
}

// ExperimentalDialect reports whether the chosen Wails version is still in alpha.
func (c *Config) ExperimentalDialect() bool {
	return c.WailsVersion == 3
}

// Map validates answers and builds a Config. cwd is used when no output
// directory was given.
func Map(a Answers, cwd string) (*Config, error) {
	var errs []error

	if err := ValidateProjectName(a.ProjectName); err != nil {
		errs = append(errs, err)
	}
	if a.WailsVersion != 2 && a.WailsVersion != 3 {
		errs = append(errs, fmt.Errorf("invalid wails version %d: must be 2 or 3", a.WailsVersion))
	}

	frontend := Frontend(strings.ToLower(a.Frontend))
	if !validFrontend(frontend) {
		errs = append(errs, fmt.Errorf("unknown frontend %q", a.Frontend))
	}

	features := make(FeatureSet)
	for _, name := range a.Features {
		info, ok := Lookup(strings.TrimSpace(name))
		if !ok {
			errs = append(errs, fmt.Errorf("unknown feature %q", name))
			continue
		}
		features[info.Name] = true
	}

	var supa SupabaseOptions
	for _, opt := range a.SupabaseOptions {
		switch opt {
		case "auth":
			supa.Auth = true
		case "database":
			supa.Database = true
		case "storage":
			supa.Storage = true
		default:
			errs = append(errs, fmt.Errorf("unknown supabase option %q", opt))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	base := a.OutputDir
	if strings.TrimSpace(base) == "" {
		base = cwd
	}
	root, err := filepath.Abs(filepath.Join(base, a.ProjectName))
	if err != nil {
		return nil, fmt.Errorf("resolving project path: %w", err)
	}

	cli := "wails"
	if a.WailsVersion == 3 {
		cli = "wails3"
	}

	cfg := &Config{
		ProjectName:  a.ProjectName,
		ProjectRoot:  root,
		WailsVersion: a.WailsVersion,
		CLI:          cli,
		Frontend:     frontend,
		Template:     SelectTemplate(a.WailsVersion, frontend, features.Has(TypeScript)),
		Features:     features,
		Supabase:     supa,
		InstallDeps:  !a.NoInstall,
	}
	cfg.Params = Params(cfg)
	return cfg, nil
}

// ValidateProjectName reports why name cannot be used as a project name.
func ValidateProjectName(name string) error {
	if !projectNamePattern.MatchString(name) {
		return fmt.Errorf("invalid project name %q: use letters, digits, '-' and '_', starting with a letter", name)
	}
	return nil
}

func validFrontend(f Frontend) bool {
	for _, known := range Frontends {
		if f == known {
			return true
		}
	}
	return false
}

// SelectTemplate picks the starter template. Wails v2 uses community
// templates where one exists; v3 uses the built-in templates, with the -ts
// variant when TypeScript was requested.
func SelectTemplate(wailsVersion int, f Frontend, typescript bool) Template {
	if wailsVersion == 3 {
		t := Template{Name: string(f), Arg: string(f)}
		if typescript {
			t.Name += "-ts"
			t.Arg += "-ts"
			t.HasTypeScript = true
		}
		return t
	}

	switch f {
	case React:
		return Template{Name: "react-vite-ts-tailwind", Arg: "https://github.com/wailsapp/wails-vite-react-ts-tailwind-template", HasTypeScript: true}
	case Vue:
		return Template{Name: "vue-ts-tailwind", Arg: "https://github.com/misitebao/wails-template-vue", HasTypeScript: true}
	case Svelte:
		return Template{Name: "svelte-vite-tailwind", Arg: "https://github.com/BillBuilt/wails-vite-svelte-tailwind-template"}
	case Solid:
		return Template{Name: "solid-vite-ts", Arg: "https://github.com/xijaja/wails-template-solid-ts", HasTypeScript: true}
	default:
		return Template{Name: "vanilla", Arg: "vanilla"}
	}
}

// Params returns the placeholder values used in template assets.
func Params(c *Config) map[string]string {
	words := strings.FieldsFunc(c.ProjectName, func(r rune) bool { return r == '-' || r == '_' })
	title := cases.Title(language.English).String(strings.Join(words, " "))

	return map[string]string{
		"PROJECT_NAME":        c.ProjectName,
		"PROJECT_NAME_LOWER":  strings.ToLower(c.ProjectName),
		"PROJECT_TITLE":       title,
		"PROJECT_NAME_PASCAL": strings.ReplaceAll(title, " ", ""),
		"FRONTEND":            string(c.Frontend),
		"WAILS_CLI":           c.CLI,
	}
}

// Existing builds a Config for features added to a project that already
// exists at root.
func Existing(root string, wailsVersion int, frontend Frontend, features []string) (*Config, error) {
	a := Answers{
		ProjectName:  filepath.Base(root),
		WailsVersion: wailsVersion,
		Frontend:     string(frontend),
		Features:     features,
		NoInstall:    true,
	}
	if !projectNamePattern.MatchString(a.ProjectName) {
		a.ProjectName = "app"
	}

	cfg, err := Map(a, filepath.Dir(root))
	if err != nil {
		return nil, err
	}
	cfg.ProjectName = filepath.Base(root)
	cfg.ProjectRoot = root
	cfg.Template = Template{Name: "existing"}
	cfg.Params = Params(cfg)
	return cfg, nil
}
