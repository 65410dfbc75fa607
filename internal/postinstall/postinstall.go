// Package postinstall prints what a user needs after generation: the
// project details, a dependency check, next steps and notes for the chosen
// features.
//
// Messages are assembled as markdown and rendered with glamour when the
// destination is a terminal, so piped output stays readable as plain text.
package postinstall

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/pipeline"
	"github.com/ehsanpo/create-wails-app/internal/wails"
	"github.com/mattn/go-isatty"
)

// NextSteps returns the markdown shown after a successful run.
func NextSteps(cfg *config.Config, report *pipeline.Report) string {
	var b strings.Builder

	b.WriteString("# ✨ Project created successfully!\n\n")
	b.WriteString("## Project Details\n\n")
	fmt.Fprintf(&b, "- **Name:** %s\n", cfg.ProjectName)
	fmt.Fprintf(&b, "- **Location:** %s\n", cfg.ProjectRoot)
	fmt.Fprintf(&b, "- **Wails:** v%d (`%s`)\n", cfg.WailsVersion, cfg.CLI)
	fmt.Fprintf(&b, "- **Frontend:** %s (template `%s`)\n", cfg.Frontend, cfg.Template.Name)
	if features := cfg.Features.List(); len(features) > 0 {
		names := make([]string, len(features))
		for i, f := range features {
			names[i] = string(f)
		}
		fmt.Fprintf(&b, "- **Features:** %s\n", strings.Join(names, ", "))
	}

	b.WriteString("\n## Next Steps\n\n")
	b.WriteString("1. Navigate to your project:\n\n")
	fmt.Fprintf(&b, "   ```sh\n   cd %s\n   ```\n\n", cfg.ProjectName)
	step := 2
	if !cfg.InstallDeps {
		b.WriteString("2. Install frontend dependencies:\n\n")
		b.WriteString("   ```sh\n   cd frontend && npm install && cd ..\n   ```\n\n")
		step++
	}
	fmt.Fprintf(&b, "%d. Start development:\n\n", step)
	fmt.Fprintf(&b, "   ```sh\n   %s dev\n   ```\n\n", cfg.CLI)
	fmt.Fprintf(&b, "%d. Build for production:\n\n", step+1)
	fmt.Fprintf(&b, "   ```sh\n   %s build\n   ```\n", cfg.CLI)

	if notes := Notes(cfg, report); len(notes) > 0 {
		b.WriteString("\n## Important Notes\n\n")
		for _, n := range notes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
	}

	b.WriteString("\n## Resources\n\n")
	b.WriteString("- 📚 Wails Docs: https://wails.io/docs\n")
	b.WriteString("- 💬 Discord: https://discord.gg/BrRSWTaxRK\n")
	b.WriteString("- 🐛 Issues: https://github.com/wailsapp/wails/issues\n")
	b.WriteString("\nHappy coding! 🚀\n")
	return b.String()
}

// Notes lists feature-specific reminders and every skipped patch.
func Notes(cfg *config.Config, report *pipeline.Report) []string {
	var notes []string
	has := cfg.Features.Has

	if has(config.Supabase) {
		notes = append(notes, "📦 Supabase: copy `frontend/.env.example` to `frontend/.env` and fill in your project credentials")
	}
	if has(config.GitHubActions) {
		notes = append(notes,
			"🔄 GitHub Actions: workflows were created in `.github/workflows/` and run once you push to GitHub",
			"Binary signing and notarization are not enabled by default")
	}
	if has(config.TestingUnit) {
		notes = append(notes, "🧪 Unit tests: `npm run test` in `frontend/`")
	}
	if has(config.TestingE2E) {
		notes = append(notes, "🎭 E2E tests: install browsers with `npx playwright install`, then `npm run test:e2e`")
	}
	if has(config.TestingBackend) {
		notes = append(notes, "🐹 Go tests: `go test ./...`")
	}
	if cfg.ExperimentalDialect() {
		notes = append(notes, "⚠️ Wails v3 is experimental, expect breaking changes")
	}

	if report != nil {
		for _, s := range report.Skips {
			notes = append(notes, fmt.Sprintf("⏭️ Skipped %s: %s", s.Feature, s.Reason))
		}
	}
	return notes
}

// Failure returns the markdown shown when generation fails.
func Failure(err error, cfg *config.Config) string {
	var b strings.Builder
	b.WriteString("## ❌ Generation failed\n\n")

	var fe *pipeline.FeatureError
	if errors.As(err, &fe) {
		fmt.Fprintf(&b, "The **%s** feature could not be applied:\n\n", fe.Feature)
		fmt.Fprintf(&b, "    %s\n\n", fe.Err)
	} else {
		fmt.Fprintf(&b, "    %s\n\n", err)
	}

	b.WriteString("### 💡 Tip\n\n")
	switch {
	case errors.Is(err, wails.ErrCLINotFound):
		b.WriteString("Make sure the Wails CLI is installed and Go is properly configured. ")
		b.WriteString("Visit https://wails.io/docs/gettingstarted/installation for help.\n")
	case errors.Is(err, wails.ErrDirectoryExists):
		b.WriteString("Choose another project name or output directory, or remove the existing one.\n")
	case cfg != nil:
		fmt.Fprintf(&b, "The project may be partially generated. Delete `%s` and run the command again.\n", cfg.ProjectRoot)
	default:
		b.WriteString("Delete the partially generated project and run the command again.\n")
	}
	return b.String()
}

// Render writes markdown to w, styled when w is a terminal.
func Render(w io.Writer, markdown string) error {
	if !isTerminal(w) {
		_, err := io.WriteString(w, markdown)
		return err
	}

	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		_, err = io.WriteString(w, markdown)
		return err
	}
	out, err := r.Render(markdown)
	if err != nil {
		out = markdown
	}
	_, err = io.WriteString(w, out)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
