package wails

import (
	"bytes"
	"context"
	"fmt"
	"os"
	osexec "os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/exec"
	"github.com/ehsanpo/create-wails-app/internal/features"
	"github.com/ehsanpo/create-wails-app/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const initMain = `package main

func main() {
	app := application.New(application.Options{
		Name: "demo",
		Services: []application.Service{
			application.NewService(&GreetService{}),
		},
	})

	err := app.Run()
	if err != nil {
		log.Fatal(err)
	}
}
`

// TestHelperProcess stands in for wails3, go and npm.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}

	switch strings.Join(args[:min(2, len(args))], " ") {
	case "wails3 version":
		fmt.Println("v3.0.0-alpha.9")
	case "wails3 init":
		name := args[3]
		files := map[string]string{
			"main.go":               initMain,
			"go.mod":                "module " + name + "\n\ngo 1.22\n\nrequire github.com/wailsapp/wails/v3 v3.0.0-alpha.9\n",
			"frontend/package.json": `{"name":"frontend"}`,
		}
		for file, content := range files {
			path := filepath.Join(name, file)
			_ = os.MkdirAll(filepath.Dir(path), 0o755)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
		}
	case "go install":
		fmt.Println("installed", args[2])
	case "npm install":
		_ = os.WriteFile("npm-installed", nil, 0o644)
	default:
		fmt.Fprintf(os.Stderr, "unexpected command: %v\n", args)
		os.Exit(1)
	}
	os.Exit(0)
}

// fakeTools records invocations and controls which CLIs are on PATH.
type fakeTools struct {
	mu        sync.Mutex
	calls     []string
	installed map[string]bool
}

func (f *fakeTools) command(name string, args ...string) *osexec.Cmd {
	f.mu.Lock()
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	if name == "go" && len(args) > 0 && args[0] == "install" {
		f.installed["wails3"] = true
	}
	f.mu.Unlock()

	cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
	cmd := osexec.Command(os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

func (f *fakeTools) lookPath(file string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.installed[file] {
		return "/go/bin/" + file, nil
	}
	return "", osexec.ErrNotFound
}

func newTools(t *testing.T, installed ...string) (*fakeTools, *exec.Executor) {
	t.Helper()
	f := &fakeTools{installed: map[string]bool{}}
	for _, name := range installed {
		f.installed[name] = true
	}
	e := exec.NewExecutor(&exec.Options{
		Stdout:      &bytes.Buffer{},
		Stderr:      &bytes.Buffer{},
		CommandFunc: f.command,
		LookPath:    f.lookPath,
	})
	return f, e
}

func TestCLIFor(t *testing.T) {
	assert.Equal(t, CLI{Name: "wails", Version: 2}, CLIFor(2))
	assert.Equal(t, CLI{Name: "wails3", Version: 3}, CLIFor(3))
	assert.Equal(t, "github.com/wailsapp/wails/v3/cmd/wails3@latest", CLIFor(3).InstallPackage())
	assert.Equal(t, "github.com/wailsapp/wails/v2/cmd/wails@latest", CLIFor(2).InstallPackage())
}

func TestManager_Detect(t *testing.T) {
	_, e := newTools(t, "wails3")
	m := NewManager(e, &bytes.Buffer{})

	v, err := m.Detect(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "v3.0.0-alpha.9", v)

	_, err = m.Detect(context.Background(), 2)
	assert.ErrorIs(t, err, ErrCLINotFound)
}

func TestManager_EnsureInstallsMissingCLI(t *testing.T) {
	tools, e := newTools(t)
	m := NewManager(e, &bytes.Buffer{})

	var asked CLI
	err := m.Ensure(context.Background(), 3, func(c CLI) bool {
		asked = c
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, "wails3", asked.Name)
	assert.Contains(t, tools.calls, "go install github.com/wailsapp/wails/v3/cmd/wails3@latest")
}

func TestManager_EnsureDeclined(t *testing.T) {
	tools, e := newTools(t)
	var out bytes.Buffer
	m := NewManager(e, &out)

	err := m.Ensure(context.Background(), 2, func(CLI) bool { return false })
	assert.ErrorIs(t, err, ErrCLINotFound)
	assert.Contains(t, out.String(), "go install github.com/wailsapp/wails/v2/cmd/wails@latest")
	assert.Empty(t, tools.calls)
}

func newConfig(t *testing.T, features ...string) *config.Config {
	t.Helper()
	cfg, err := config.Map(config.Answers{
		ProjectName:  "demo",
		WailsVersion: 3,
		Frontend:     "vanilla",
		Features:     features,
	}, t.TempDir())
	require.NoError(t, err)
	return cfg
}

func TestEngine_Generate(t *testing.T) {
	tools, e := newTools(t, "wails3")
	cfg := newConfig(t, "clipboard")

	engine := &Engine{
		Manager:  NewManager(e, &bytes.Buffer{}),
		Exec:     e,
		Store:    templates.New(),
		Features: features.All(),
		Out:      &bytes.Buffer{},
	}

	report, err := engine.Generate(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []config.Feature{config.Clipboard}, report.Applied)

	assert.Contains(t, tools.calls, "wails3 init -n demo -t vanilla")

	main, err := os.ReadFile(filepath.Join(cfg.ProjectRoot, "main.go"))
	require.NoError(t, err)
	assert.Contains(t, string(main), "application.NewService(&ClipboardService{}),")
	assert.FileExists(t, filepath.Join(cfg.ProjectRoot, "clipboard.go"))
	assert.FileExists(t, filepath.Join(cfg.ProjectRoot, "frontend", "npm-installed"))
}

func TestEngine_GenerateWithoutInstall(t *testing.T) {
	tools, e := newTools(t, "wails3")
	cfg := newConfig(t)
	cfg.InstallDeps = false

	engine := &Engine{Manager: NewManager(e, &bytes.Buffer{}), Exec: e, Store: templates.New(), Features: features.All()}
	_, err := engine.Generate(context.Background(), cfg)
	require.NoError(t, err)

	for _, c := range tools.calls {
		assert.NotContains(t, c, "npm")
	}
}

func TestEngine_GenerateRefusesExistingDirectory(t *testing.T) {
	tools, e := newTools(t, "wails3")
	cfg := newConfig(t)
	require.NoError(t, os.MkdirAll(cfg.ProjectRoot, 0o755))

	engine := &Engine{Manager: NewManager(e, &bytes.Buffer{}), Exec: e, Store: templates.New()}
	_, err := engine.Generate(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrDirectoryExists)
	assert.Empty(t, tools.calls)
}
