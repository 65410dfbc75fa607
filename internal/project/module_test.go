package project_test

import (
	"testing"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/project"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const v3GoMod = `module changeme

go 1.22

require github.com/wailsapp/wails/v3 v3.0.0-alpha.9

require (
	github.com/google/uuid v1.6.0 // indirect
)
`

const v2GoMod = `module demo

go 1.21

require github.com/wailsapp/wails/v2 v2.9.2
`

func memFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
	return fs
}

func TestDetectModule(t *testing.T) {
	fs := memFs(t, map[string]string{"app/go.mod": v3GoMod})

	info, err := project.DetectModule(fs, "app")
	require.NoError(t, err)
	assert.Equal(t, "changeme", info.Path)
	assert.Equal(t, "1.22", info.GoVersion)
	assert.Contains(t, info.Requires, "github.com/google/uuid")
}

func TestDetectModule_Errors(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		_, err := project.DetectModule(afero.NewMemMapFs(), "app")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "go.mod not found")
	})

	t.Run("invalid", func(t *testing.T) {
		fs := memFs(t, map[string]string{"go.mod": "this is not valid go.mod syntax\nmodule\n"})
		_, err := project.DetectModule(fs, ".")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse go.mod")
	})
}

func TestWailsVersion(t *testing.T) {
	tests := []struct {
		name    string
		gomod   string
		want    int
		wantErr error
	}{
		{"v3", v3GoMod, 3, nil},
		{"v2", v2GoMod, 2, nil},
		{"none", "module plain\n\ngo 1.22\n", 0, project.ErrNotWails},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memFs(t, map[string]string{"go.mod": tt.gomod})
			info, err := project.DetectModule(fs, ".")
			require.NoError(t, err)

			got, err := info.WailsVersion()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddRequire(t *testing.T) {
	fs := memFs(t, map[string]string{"go.mod": v2GoMod})

	changed, err := project.AddRequire(fs, ".", "github.com/fsnotify/fsnotify", "v1.9.0")
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := afero.ReadFile(fs, "go.mod")
	require.NoError(t, err)
	assert.Contains(t, string(data), "github.com/fsnotify/fsnotify v1.9.0")
	assert.Contains(t, string(data), "github.com/wailsapp/wails/v2 v2.9.2")

	changed, err = project.AddRequire(fs, ".", "github.com/fsnotify/fsnotify", "v1.8.0")
	require.NoError(t, err)
	assert.False(t, changed)

	again, err := afero.ReadFile(fs, "go.mod")
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestReadMetadata(t *testing.T) {
	fs := memFs(t, map[string]string{
		"v2/wails.json": `{"name": "demo", "outputfilename": "demo-bin", "info": {"comments": "A demo"}}`,
		"v3/build/config.yml": `version: '3'
info:
  companyName: "My Company"
  productName: "Demo App"
  productIdentifier: "com.example.demo"
  description: "A program"
`,
	})

	meta, err := project.ReadMetadata(fs, "v2", 2)
	require.NoError(t, err)
	assert.Equal(t, "demo", meta.Name)
	assert.Equal(t, "A demo", meta.Description)

	meta, err = project.ReadMetadata(fs, "v3", 3)
	require.NoError(t, err)
	assert.Equal(t, "Demo App", meta.Name)
	assert.Equal(t, "com.example.demo", meta.Identifier)

	_, err = project.ReadMetadata(fs, "missing", 3)
	assert.Error(t, err)

	_, err = project.ReadMetadata(fs, "v2", 4)
	assert.Error(t, err)
}

func TestDetectFrontend(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  config.Frontend
	}{
		{"react in frontend", map[string]string{"app/frontend/package.json": `{"dependencies":{"react":"^18.2.0","react-dom":"^18.2.0"}}`}, config.React},
		{"vue dev dependency", map[string]string{"app/frontend/package.json": `{"devDependencies":{"vue":"^3.4.0"}}`}, config.Vue},
		{"solid", map[string]string{"app/frontend/package.json": `{"dependencies":{"solid-js":"^1.8.0"}}`}, config.Solid},
		{"root package.json", map[string]string{"app/package.json": `{"devDependencies":{"svelte":"^4.0.0"}}`}, config.Svelte},
		{"no framework", map[string]string{"app/frontend/package.json": `{"devDependencies":{"vite":"^5.0.0"}}`}, config.Vanilla},
		{"no package.json", map[string]string{"app/go.mod": v2GoMod}, config.Vanilla},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := project.DetectFrontend(memFs(t, tt.files), "app")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFrontend_InvalidJSON(t *testing.T) {
	_, err := project.DetectFrontend(memFs(t, map[string]string{"app/frontend/package.json": `{`}), "app")
	assert.ErrorContains(t, err, "parsing frontend/package.json")
}

func TestInspect(t *testing.T) {
	fs := memFs(t, map[string]string{
		"/work/demo/go.mod":                v3GoMod,
		"/work/demo/frontend/package.json": `{"dependencies":{"vue":"^3.4.0"}}`,
	})

	cfg, err := project.Inspect(fs, "/work/demo", []string{"clipboard"})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.WailsVersion)
	assert.Equal(t, config.Vue, cfg.Frontend)
	assert.Equal(t, "/work/demo", cfg.ProjectRoot)
	assert.True(t, cfg.Features.Has(config.Clipboard))
	assert.False(t, cfg.InstallDeps)

	_, err = project.Inspect(memFs(t, map[string]string{"/x/go.mod": "module x\n\ngo 1.22\n"}), "/x", nil)
	assert.ErrorIs(t, err, project.ErrNotWails)
}

func TestInspect_NameFromWailsJSON(t *testing.T) {
	fs := memFs(t, map[string]string{
		"/work/checkout/go.mod":     v2GoMod,
		"/work/checkout/wails.json": `{"name":"notes-app","outputfilename":"notes"}`,
	})

	cfg, err := project.Inspect(fs, "/work/checkout", nil)
	require.NoError(t, err)
	assert.Equal(t, "notes-app", cfg.ProjectName)
	assert.Equal(t, "notes-app", cfg.Params["PROJECT_NAME"])
	assert.Equal(t, "NotesApp", cfg.Params["PROJECT_NAME_PASCAL"])
	assert.Equal(t, config.Vanilla, cfg.Frontend)
}
