package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/ehsanpo/create-wails-app/internal/anchor"
	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/dialect"
	"github.com/ehsanpo/create-wails-app/internal/patch"
	"github.com/ehsanpo/create-wails-app/internal/pipeline"
	"github.com/ehsanpo/create-wails-app/internal/pkgjson"
	"github.com/ehsanpo/create-wails-app/internal/templates"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const v3Main = `package main

func main() {
	app := application.New(application.Options{
		Name: "demo",
		Services: []application.Service{
			application.NewService(&GreetService{}),
		},
	})

	app.NewWebviewWindow()

	err := app.Run()
	if err != nil {
		log.Fatal(err)
	}
}
`

const v2Main = `package main

func main() {
	app := NewApp()

	err := wails.Run(&options.App{
		Title: "demo",
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
`

const goMod = `module demo

go 1.22
`

// stub is a feature whose plan is a plain function.
type stub struct {
	name config.Feature
	plan func(env *pipeline.Env, p *pipeline.Plan) error
}

func (s stub) Name() config.Feature { return s.name }

func (s stub) Plan(env *pipeline.Env, p *pipeline.Plan) error { return s.plan(env, p) }

func service(name config.Feature, expr string) stub {
	return stub{name: name, plan: func(env *pipeline.Env, p *pipeline.Plan) error {
		return p.Patch(dialect.RegisterService, expr, expr)
	}}
}

func newEnv(t *testing.T, version int, main string, features ...config.Feature) (*pipeline.Env, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "main.go", []byte(main), 0o644))
	require.NoError(t, afero.WriteFile(fsys, "go.mod", []byte(goMod), 0o644))

	store, err := templates.NewFromFS(fstest.MapFS{
		"common/hello.txt.tmpl": {Data: []byte("hello {{PROJECT_NAME}}")},
	})
	require.NoError(t, err)

	set := config.FeatureSet{}
	for _, f := range features {
		set[f] = true
	}
	cfg := &config.Config{
		ProjectName:  "demo",
		WailsVersion: version,
		Features:     set,
		Params:       map[string]string{"PROJECT_NAME": "demo"},
	}

	env, err := pipeline.NewEnv(cfg, fsys, store)
	require.NoError(t, err)
	env.Out = &bytes.Buffer{}
	return env, fsys
}

func readFile(t *testing.T, fsys afero.Fs, path string) string {
	t.Helper()
	data, err := afero.ReadFile(fsys, path)
	require.NoError(t, err)
	return string(data)
}

func TestRun_RegistersServicesInOrder(t *testing.T) {
	env, fsys := newEnv(t, 3, v3Main, config.Clipboard, config.AutoUpdate)

	report, err := pipeline.Run(context.Background(), env, []pipeline.Feature{
		service(config.Clipboard, "&ClipboardService{}"),
		service(config.AutoUpdate, "&UpdateService{}"),
	})
	require.NoError(t, err)
	assert.Equal(t, []config.Feature{config.Clipboard, config.AutoUpdate}, report.Applied)

	main := readFile(t, fsys, "main.go")
	assert.Contains(t, main, "\t\tServices: []application.Service{\n"+
		"\t\t\tapplication.NewService(&GreetService{}),\n"+
		"\t\t\tapplication.NewService(&ClipboardService{}),\n"+
		"\t\t\tapplication.NewService(&UpdateService{}),\n"+
		"\t\t},")
}

func TestRun_SortsByCategory(t *testing.T) {
	env, _ := newEnv(t, 3, v3Main, config.SQLite, config.TypeScript, config.Clipboard)

	var order []config.Feature
	record := func(name config.Feature) stub {
		return stub{name: name, plan: func(*pipeline.Env, *pipeline.Plan) error {
			order = append(order, name)
			return nil
		}}
	}

	_, err := pipeline.Run(context.Background(), env, []pipeline.Feature{
		record(config.SQLite), record(config.Clipboard), record(config.TypeScript),
	})
	require.NoError(t, err)
	assert.Equal(t, []config.Feature{config.TypeScript, config.Clipboard, config.SQLite}, order)
}

func TestRun_SkipsDisabledFeatures(t *testing.T) {
	env, fsys := newEnv(t, 3, v3Main, config.Clipboard)

	report, err := pipeline.Run(context.Background(), env, []pipeline.Feature{
		service(config.AutoUpdate, "&UpdateService{}"),
		service(config.Clipboard, "&ClipboardService{}"),
	})
	require.NoError(t, err)
	assert.Equal(t, []config.Feature{config.Clipboard}, report.Applied)
	assert.NotContains(t, readFile(t, fsys, "main.go"), "UpdateService")
}

func TestRun_IsIdempotent(t *testing.T) {
	env, fsys := newEnv(t, 3, v3Main, config.Clipboard)
	features := []pipeline.Feature{service(config.Clipboard, "&ClipboardService{}")}

	_, err := pipeline.Run(context.Background(), env, features)
	require.NoError(t, err)
	first := readFile(t, fsys, "main.go")

	report, err := pipeline.Run(context.Background(), env, features)
	require.NoError(t, err)
	assert.Equal(t, first, readFile(t, fsys, "main.go"))
	assert.Equal(t, []string{"clipboard: main.go"}, report.AlreadyPresent)
}

func TestRun_FlatRecordSkipsServiceRegistration(t *testing.T) {
	env, fsys := newEnv(t, 2, v2Main, config.Clipboard)

	report, err := pipeline.Run(context.Background(), env, []pipeline.Feature{
		stub{name: config.Clipboard, plan: func(env *pipeline.Env, p *pipeline.Plan) error {
			p.Write("clipboard.go", "package main\n")
			return p.Patch(dialect.RegisterService, "", "&ClipboardService{}")
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, v2Main, readFile(t, fsys, "main.go"))
	assert.Equal(t, "package main\n", readFile(t, fsys, "clipboard.go"))
	require.Len(t, report.Skips, 1)
	assert.Equal(t, config.Clipboard, report.Skips[0].Feature)
	assert.Contains(t, report.Skips[0].Reason, "flat-record")
}

func TestRun_BuilderPatternsDoNotMatchFlatRecord(t *testing.T) {
	env, fsys := newEnv(t, 2, v2Main, config.SingleInstance)

	_, err := pipeline.Run(context.Background(), env, []pipeline.Feature{
		stub{name: config.SingleInstance, plan: func(env *pipeline.Env, p *pipeline.Plan) error {
			return p.Patch(dialect.BeforeRun, "acquireInstanceLock(", "defer acquireInstanceLock()")
		}},
	})
	require.NoError(t, err)

	main := readFile(t, fsys, "main.go")
	assert.Contains(t, main, "defer acquireInstanceLock()\n\n\terr := wails.Run(")
	assert.NotContains(t, main, "application.")
}

func TestRun_MissingAnchorIsFatal(t *testing.T) {
	noServices := strings.Replace(v3Main, "\t\tServices: []application.Service{\n\t\t\tapplication.NewService(&GreetService{}),\n\t\t},\n", "", 1)
	env, fsys := newEnv(t, 3, noServices, config.SystemTray, config.Clipboard, config.SQLite)

	var sqliteRan bool
	report, err := pipeline.Run(context.Background(), env, []pipeline.Feature{
		stub{name: config.SystemTray, plan: func(env *pipeline.Env, p *pipeline.Plan) error {
			p.Write("systray.go", "package main\n")
			return nil
		}},
		service(config.Clipboard, "&ClipboardService{}"),
		stub{name: config.SQLite, plan: func(*pipeline.Env, *pipeline.Plan) error {
			sqliteRan = true
			return nil
		}},
	})

	var fe *pipeline.FeatureError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, config.Clipboard, fe.Feature)
	assert.ErrorIs(t, err, anchor.ErrNotFound)

	var pe *patch.Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "main.go", pe.Path)

	assert.False(t, sqliteRan)
	assert.Equal(t, []config.Feature{config.SystemTray}, report.Applied)
	assert.Equal(t, noServices, readFile(t, fsys, "main.go"))

	exists, _ := afero.Exists(fsys, "systray.go")
	assert.True(t, exists)
}

func TestRun_MissingBootstrapIsFatal(t *testing.T) {
	env, fsys := newEnv(t, 3, v3Main, config.Clipboard)
	require.NoError(t, fsys.Remove("main.go"))

	_, err := pipeline.Run(context.Background(), env, []pipeline.Feature{
		stub{name: config.Clipboard, plan: func(env *pipeline.Env, p *pipeline.Plan) error {
			p.Write("clipboard.go", "package main\n")
			return p.Patch(dialect.RegisterService, "", "&ClipboardService{}")
		}},
	})
	assert.ErrorIs(t, err, patch.ErrMissingTarget)

	// validation runs before any write
	exists, _ := afero.Exists(fsys, "clipboard.go")
	assert.False(t, exists)
}

func TestRun_PlanError(t *testing.T) {
	env, _ := newEnv(t, 3, v3Main, config.Router)
	boom := errors.New("boom")

	_, err := pipeline.Run(context.Background(), env, []pipeline.Feature{
		stub{name: config.Router, plan: func(*pipeline.Env, *pipeline.Plan) error { return boom }},
	})
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "feature router: boom")
}

func TestRun_Cancelled(t *testing.T) {
	env, _ := newEnv(t, 3, v3Main, config.Clipboard)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pipeline.Run(ctx, env, []pipeline.Feature{service(config.Clipboard, "&ClipboardService{}")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlan_TemplateDependenciesAndRequire(t *testing.T) {
	env, fsys := newEnv(t, 3, v3Main, config.SQLite)
	require.NoError(t, afero.WriteFile(fsys, "frontend/package.json", []byte(`{"name":"demo"}`), 0o644))

	_, err := pipeline.Run(context.Background(), env, []pipeline.Feature{
		stub{name: config.SQLite, plan: func(env *pipeline.Env, p *pipeline.Plan) error {
			if err := p.Template("hello.txt", "hello.txt"); err != nil {
				return err
			}
			p.Dependencies(pkgjson.Dependencies, pkgjson.Entry{Name: "left-pad", Value: "^1.3.0"})
			p.Require("modernc.org/sqlite", "v1.34.5")
			return nil
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "hello demo", readFile(t, fsys, "hello.txt"))
	assert.Contains(t, readFile(t, fsys, "frontend/package.json"), `"left-pad": "^1.3.0"`)
	assert.Contains(t, readFile(t, fsys, "go.mod"), "modernc.org/sqlite v1.34.5")
}

func TestPlan_DependenciesWithoutPackageJSON(t *testing.T) {
	env, _ := newEnv(t, 3, v3Main, config.Tailwind)

	_, err := pipeline.Run(context.Background(), env, []pipeline.Feature{
		stub{name: config.Tailwind, plan: func(env *pipeline.Env, p *pipeline.Plan) error {
			p.Dependencies(pkgjson.DevDependencies, pkgjson.Entry{Name: "tailwindcss", Value: "^4.0.0"})
			return nil
		}},
	})
	require.NoError(t, err)
	assert.Contains(t, env.Out.(*bytes.Buffer).String(), "Skip devDependencies (no package.json)")
}

func TestPreview_LeavesDiskUntouched(t *testing.T) {
	disk := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(disk, "main.go", []byte(v3Main), 0o644))
	overlay := afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(disk), afero.NewMemMapFs())

	store, err := templates.NewFromFS(fstest.MapFS{})
	require.NoError(t, err)
	cfg := &config.Config{ProjectName: "demo", WailsVersion: 3, Features: config.FeatureSet{config.Clipboard: true}}
	env, err := pipeline.NewEnv(cfg, overlay, store)
	require.NoError(t, err)
	var out bytes.Buffer
	env.Out = &out
	env.Preview = true

	_, err = pipeline.Run(context.Background(), env, []pipeline.Feature{service(config.Clipboard, "&ClipboardService{}")})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "application.NewService(&ClipboardService{})")
	assert.Equal(t, v3Main, readFile(t, disk, "main.go"))
	assert.Contains(t, readFile(t, overlay, "main.go"), "ClipboardService")
}

func TestDescribe(t *testing.T) {
	env, fsys := newEnv(t, 2, v2Main, config.Clipboard)

	sideFile := stub{name: config.Clipboard, plan: func(env *pipeline.Env, p *pipeline.Plan) error {
		p.Write("clipboard.go", "package main\n")
		return p.Patch(dialect.RegisterService, "&ClipboardService{}", "&ClipboardService{}")
	}}

	plan, err := pipeline.Describe(env, sideFile)
	require.NoError(t, err)
	assert.Len(t, plan.Ops(), 1)
	assert.Zero(t, plan.Patches())
	require.Len(t, plan.Skips(), 1)
	assert.Equal(t, config.Clipboard, plan.Skips()[0].Feature)

	exists, err := afero.Exists(fsys, "clipboard.go")
	require.NoError(t, err)
	assert.False(t, exists)

	env3, _ := newEnv(t, 3, v3Main, config.Clipboard)
	plan, err = pipeline.Describe(env3, sideFile)
	require.NoError(t, err)
	assert.Equal(t, 1, plan.Patches())
	assert.Empty(t, plan.Skips())
}
