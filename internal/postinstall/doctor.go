package postinstall

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ehsanpo/create-wails-app/internal/logging"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Runner resolves and queries executables. *exec.Executor implements it.
type Runner interface {
	LookPath(name string) (string, error)
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// Tool is an executable the generated project relies on.
type Tool struct {
	Name     string
	Command  string
	Args     []string
	Required bool
}

// Tools are the executables checked by doctor and after generation.
var Tools = []Tool{
	{Name: "Node.js", Command: "node", Args: []string{"--version"}, Required: true},
	{Name: "npm", Command: "npm", Args: []string{"--version"}, Required: true},
	{Name: "Go", Command: "go", Args: []string{"version"}, Required: true},
	{Name: "Wails v2 CLI", Command: "wails", Args: []string{"version"}},
	{Name: "Wails v3 CLI", Command: "wails3", Args: []string{"version"}},
}

// CheckResult is the outcome of checking one Tool.
type CheckResult struct {
	Tool    Tool
	Path    string
	Version string
	Found   bool
}

// Check looks up every tool and asks it for its version.
func Check(ctx context.Context, r Runner, tools []Tool) []CheckResult {
	log := logging.Get("doctor")

	results := make([]CheckResult, 0, len(tools))
	for _, t := range tools {
		res := CheckResult{Tool: t}
		path, err := r.LookPath(t.Command)
		if err != nil {
			log.Debug().Str("tool", t.Command).Err(err).Msg("not found")
			results = append(results, res)
			continue
		}
		res.Path = path
		res.Found = true

		out, err := r.Output(ctx, t.Command, t.Args...)
		if err != nil {
			log.Debug().Str("tool", t.Command).Err(err).Msg("version query failed")
		} else {
			res.Version = parseVersion(out)
		}
		results = append(results, res)
	}
	return results
}

// Missing returns the required tools that were not found.
func Missing(results []CheckResult) []string {
	var out []string
	for _, r := range results {
		if r.Tool.Required && !r.Found {
			out = append(out, r.Tool.Name)
		}
	}
	return out
}

// parseVersion picks the version token out of the first line of output,
// e.g. "go version go1.23.2 linux/amd64" gives "go1.23.2".
func parseVersion(out string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	for _, field := range strings.Fields(line) {
		trimmed := strings.TrimPrefix(strings.TrimPrefix(field, "go"), "v")
		if trimmed != "" && trimmed[0] >= '0' && trimmed[0] <= '9' {
			return field
		}
	}
	return strings.TrimSpace(line)
}

// WriteTable renders results as a table.
func WriteTable(w io.Writer, results []CheckResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "Tool", "Version", "Path"})
	for _, r := range results {
		status := "✓"
		switch {
		case !r.Found && r.Tool.Required:
			status = "✗"
		case !r.Found:
			status = "-"
		}
		version := r.Version
		if !r.Found {
			version = "not found"
		}
		t.AppendRow(table.Row{status, r.Tool.Name, version, r.Path})
	}
	t.Render()
}

// Summary returns a one-line verdict for results.
func Summary(results []CheckResult) string {
	missing := Missing(results)
	if len(missing) == 0 {
		return "All required tools are installed"
	}
	return fmt.Sprintf("Missing required tools: %s", strings.Join(missing, ", "))
}
