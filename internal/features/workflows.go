package features

import (
	"bytes"
	"fmt"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/pipeline"
	"gopkg.in/yaml.v3"
)

// workflow is the subset of the GitHub Actions schema the generated
// workflows use. Field order is output order.
type workflow struct {
	Name string         `yaml:"name"`
	On   map[string]any `yaml:"on"`
	Jobs map[string]job `yaml:"jobs"`
}

type job struct {
	Needs    string    `yaml:"needs,omitempty"`
	If       string    `yaml:"if,omitempty"`
	Strategy *strategy `yaml:"strategy,omitempty"`
	RunsOn   string    `yaml:"runs-on"`
	Steps    []step    `yaml:"steps"`
}

type strategy struct {
	FailFast bool                `yaml:"fail-fast"`
	Matrix   map[string][]string `yaml:"matrix"`
}

type step struct {
	Name             string            `yaml:"name,omitempty"`
	If               string            `yaml:"if,omitempty"`
	Uses             string            `yaml:"uses,omitempty"`
	With             map[string]string `yaml:"with,omitempty"`
	Env              map[string]string `yaml:"env,omitempty"`
	WorkingDirectory string            `yaml:"working-directory,omitempty"`
	Run              string            `yaml:"run,omitempty"`
}

// runnerSpec differs per Wails version: v3 links against webkit2gtk 4.1.
type runnerSpec struct {
	ubuntu  string
	webkit  string
	install string
}

func runnerFor(version int) runnerSpec {
	if version == 3 {
		return runnerSpec{
			ubuntu:  "ubuntu-24.04",
			webkit:  "libwebkit2gtk-4.1-dev",
			install: "go install github.com/wailsapp/wails/v3/cmd/wails3@latest",
		}
	}
	return runnerSpec{
		ubuntu:  "ubuntu-22.04",
		webkit:  "libwebkit2gtk-4.0-dev",
		install: "go install github.com/wailsapp/wails/v2/cmd/wails@latest",
	}
}

func setupSteps(r runnerSpec) []step {
	return []step{
		{Uses: "actions/checkout@v4"},
		{Name: "Set up Go", Uses: "actions/setup-go@v5", With: map[string]string{"go-version-file": "go.mod"}},
		{Name: "Set up Node.js", Uses: "actions/setup-node@v4", With: map[string]string{"node-version": "20"}},
		{
			Name: "Install Linux dependencies",
			If:   "runner.os == 'Linux'",
			Run:  "sudo apt-get update\nsudo apt-get install -y libgtk-3-dev " + r.webkit + " pkg-config gcc\n",
		},
		{Name: "Install frontend dependencies", WorkingDirectory: frontendDir, Run: "npm install"},
	}
}

func ciWorkflow(env *pipeline.Env) workflow {
	r := runnerFor(env.Config.WailsVersion)
	steps := setupSteps(r)

	if env.Has(config.ESLintPrettier) {
		steps = append(steps, step{Name: "Lint", WorkingDirectory: frontendDir, Run: "npm run lint"})
	}
	if env.Has(config.TestingUnit) {
		steps = append(steps, step{Name: "Unit tests", WorkingDirectory: frontendDir, Run: "npm test"})
	}
	steps = append(steps, step{Name: "Build frontend", WorkingDirectory: frontendDir, Run: "npm run build"})
	if env.Has(config.TestingBackend) {
		steps = append(steps, step{Name: "Go tests", Run: "go test ./..."})
	}

	return workflow{
		Name: "CI",
		On: map[string]any{
			"push":         map[string][]string{"branches": {"main"}},
			"pull_request": map[string][]string{"branches": {"main"}},
		},
		Jobs: map[string]job{
			"test": {RunsOn: r.ubuntu, Steps: steps},
		},
	}
}

func releaseWorkflow(env *pipeline.Env) workflow {
	r := runnerFor(env.Config.WailsVersion)
	name := env.Config.ProjectName
	oses := []string{r.ubuntu, "macos-latest", "windows-latest"}

	build := append(setupSteps(r),
		step{Name: "Install Wails", Run: r.install},
		step{Name: "Build", Run: env.Config.CLI + " build"},
		step{
			Name: "Upload artifacts",
			Uses: "actions/upload-artifact@v4",
			With: map[string]string{"name": name + "-${{ matrix.os }}", "path": "build/bin/"},
		},
	)

	var files bytes.Buffer
	for _, o := range oses {
		fmt.Fprintf(&files, "%s-%s/*\n", name, o)
	}

	return workflow{
		Name: "Build & Release",
		On:   map[string]any{"push": map[string][]string{"tags": {"v*"}}},
		Jobs: map[string]job{
			"build": {
				Strategy: &strategy{Matrix: map[string][]string{"os": oses}},
				RunsOn:   "${{ matrix.os }}",
				Steps:    build,
			},
			"release": {
				Needs:  "build",
				If:     "startsWith(github.ref, 'refs/tags/')",
				RunsOn: r.ubuntu,
				Steps: []step{
					{Name: "Download artifacts", Uses: "actions/download-artifact@v4"},
					{
						Name: "Create release",
						Uses: "softprops/action-gh-release@v2",
						With: map[string]string{"files": files.String()},
						Env:  map[string]string{"GITHUB_TOKEN": "${{ secrets.GITHUB_TOKEN }}"},
					},
				},
			},
		},
	}
}

func marshalWorkflow(w workflow) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(w); err != nil {
		return "", fmt.Errorf("encoding workflow %q: %w", w.Name, err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type githubActions struct{}

func (githubActions) Name() config.Feature { return config.GitHubActions }

func (githubActions) Plan(env *pipeline.Env, p *pipeline.Plan) error {
	files := []struct {
		name string
		w    workflow
	}{
		{"ci.yml", ciWorkflow(env)},
		{"release.yml", releaseWorkflow(env)},
	}
	for _, f := range files {
		text, err := marshalWorkflow(f.w)
		if err != nil {
			return err
		}
		p.Write(".github/workflows/"+f.name, text)
	}
	return nil
}
