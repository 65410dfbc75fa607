package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/exec"
	"github.com/ehsanpo/create-wails-app/internal/features"
	"github.com/ehsanpo/create-wails-app/internal/input"
	"github.com/ehsanpo/create-wails-app/internal/output"
	"github.com/ehsanpo/create-wails-app/internal/postinstall"
	"github.com/ehsanpo/create-wails-app/internal/prompt"
	"github.com/ehsanpo/create-wails-app/internal/templates"
	"github.com/ehsanpo/create-wails-app/internal/wails"
	"github.com/spf13/cobra"
)

// NewCmd creates and returns the 'new' command for scaffolding projects
func NewCmd() *cobra.Command {
	var (
		presetFile string
		savePreset string
		yes        bool
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "new [project-name]",
		Short: "Create a new Wails project",
		Long: `Creates a new Wails project with:
• The Wails CLI starter template for your frontend
• Any selected features patched into main.go and the frontend
• Frontend dependencies installed with npm

Anything not given by flags, CWA_* environment variables or a preset file
(create-wails-app.yaml) is asked for interactively.

Examples:
  create-wails-app new
  create-wails-app new myapp --wails 3 --frontend react --features typescript,tailwind,clipboard
  create-wails-app new myapp --yes --preset team.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := config.Load(presetFile, cmd.Flags())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				answers.ProjectName = args[0]
			}

			if yes {
				answers = prompt.Defaults(answers)
			} else {
				var proceed bool
				answers, proceed, err = collect(prompt.New(input.NewConsole(), output.Writer()), answers)
				if err != nil {
					return err
				}
				if !proceed {
					output.Warn("Cancelled by user")
					return nil
				}
			}

			if savePreset != "" {
				if err := config.SavePreset(savePreset, answers); err != nil {
					return fmt.Errorf("saving preset: %w", err)
				}
				output.Success(fmt.Sprintf("Saved preset: %s", savePreset))
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := config.Map(answers, cwd)
			if err != nil {
				return err
			}
			output.Verbose(fmt.Sprintf("Creating %s in %s (template %s)", cfg.ProjectName, cfg.ProjectRoot, cfg.Template.Name))

			if dryRun {
				describeNew(output.Writer(), cfg)
				return nil
			}

			e := exec.NewExecutor(nil)
			engine := &wails.Engine{
				Manager:  wails.NewManager(e, output.Writer()),
				Exec:     e,
				Store:    templates.New(),
				Features: features.All(),
				Out:      output.Writer(),
				ConfirmInstall: func(cli wails.CLI) bool {
					output.Warn(fmt.Sprintf("Wails v%d CLI not found", cli.Version))
					return yes || input.Confirm(fmt.Sprintf("Install %s now?", cli.Name), true)
				},
			}

			report, err := engine.Generate(cmd.Context(), cfg)
			if err != nil {
				_ = postinstall.Render(output.Writer(), postinstall.Failure(err, cfg))
				return ErrReported
			}

			output.Header("Dependency Check")
			postinstall.WriteTable(output.Writer(), postinstall.Check(cmd.Context(), e, postinstall.Tools))
			return postinstall.Render(output.Writer(), postinstall.NextSteps(cfg, report))
		},
	}

	flags := cmd.Flags()
	flags.String("name", "", "Project name")
	flags.String("dir", "", "Parent directory for the project (default: current directory)")
	flags.Int("wails", 0, "Wails major version (2 or 3)")
	flags.String("frontend", "", "Frontend framework: react, vue, svelte, solid or vanilla")
	flags.StringSlice("features", nil, "Comma-separated features (see 'create-wails-app features')")
	flags.StringSlice("supabase", nil, "Supabase helpers: auth, database, storage")
	flags.Bool("no-install", false, "Skip npm install")
	flags.BoolVarP(&yes, "yes", "y", false, "Accept defaults for everything not given")
	flags.StringVar(&presetFile, "preset", "", "Preset file to read answers from")
	flags.StringVar(&savePreset, "save-preset", "", "Write the collected answers to a preset file")
	flags.BoolVar(&dryRun, "dry-run", false, "Show what would be generated without running anything")

	return cmd
}

// describeNew prints the steps Generate would take for cfg.
func describeNew(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "Would create %s\n\n", cfg.ProjectRoot)
	fmt.Fprintf(w, "  %s init -n %s -t %s\n", cfg.CLI, cfg.ProjectName, cfg.Template.Arg)
	for _, f := range cfg.Features.List() {
		fmt.Fprintf(w, "  apply %s\n", f)
	}
	if cfg.InstallDeps {
		fmt.Fprintln(w, "  npm install")
	}
}

// collect asks for the missing answers and the final confirmation.
// Cancelling a menu and declining the summary both report proceed=false.
func collect(c *prompt.Collector, a config.Answers) (config.Answers, bool, error) {
	a, err := c.Collect(a)
	if errors.Is(err, input.ErrCancelled) {
		return a, false, nil
	}
	if err != nil {
		return a, false, err
	}
	return a, c.Confirm(a), nil
}
