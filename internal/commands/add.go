package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/features"
	"github.com/ehsanpo/create-wails-app/internal/output"
	"github.com/ehsanpo/create-wails-app/internal/pipeline"
	"github.com/ehsanpo/create-wails-app/internal/postinstall"
	"github.com/ehsanpo/create-wails-app/internal/project"
	"github.com/ehsanpo/create-wails-app/internal/templates"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// AddCmd creates and returns the 'add' command for patching features into
// an existing project
func AddCmd() *cobra.Command {
	var (
		dir      string
		dryRun   bool
		supabase []string
	)

	cmd := &cobra.Command{
		Use:   "add <feature>...",
		Short: "Add features to an existing Wails project",
		Long: `Applies features to a Wails project that already exists.

The Wails version is read from go.mod and the frontend from package.json.
Features that are already present are left alone, so running add twice is
safe.

Examples:
  create-wails-app add clipboard file-watcher
  create-wails-app add sqlite --dir ./myapp --dry-run`,
		Args: cobra.MinimumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			var names []string
			for _, f := range config.Catalog {
				if strings.HasPrefix(string(f.Name), toComplete) {
					names = append(names, string(f.Name)+"\t"+f.Description)
				}
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			cfg, err := project.Inspect(afero.NewOsFs(), root, args)
			if err != nil {
				return err
			}
			if len(supabase) > 0 {
				cfg.Supabase = config.SupabaseOptions{}
				for _, s := range supabase {
					switch s {
					case "auth":
						cfg.Supabase.Auth = true
					case "database":
						cfg.Supabase.Database = true
					case "storage":
						cfg.Supabase.Storage = true
					default:
						return fmt.Errorf("unknown supabase option %q", s)
					}
				}
			}
			output.Verbose(fmt.Sprintf("Project %s: Wails v%d, %s frontend", cfg.ProjectName, cfg.WailsVersion, cfg.Frontend))

			env, err := pipeline.NewEnv(cfg, pipeline.ProjectFs(root, dryRun), templates.New())
			if err != nil {
				return err
			}
			env.Out = cmd.OutOrStdout()
			env.Preview = dryRun

			report, err := pipeline.Run(cmd.Context(), env, features.All())
			if err != nil {
				_ = postinstall.Render(cmd.OutOrStdout(), postinstall.Failure(err, nil))
				return ErrReported
			}

			printReport(report)
			if dryRun {
				output.Info("Dry run: no files were changed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Project directory")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without writing files")
	cmd.Flags().StringSliceVar(&supabase, "supabase", nil, "Supabase helpers: auth, database, storage")

	return cmd
}

func printReport(r *pipeline.Report) {
	for _, f := range r.Applied {
		output.Success(fmt.Sprintf("Applied %s", f))
	}
	for _, p := range r.AlreadyPresent {
		output.Step(fmt.Sprintf("already present: %s", p))
	}
	for _, s := range r.Skips {
		output.Warn(fmt.Sprintf("Skipped %s: %s", s.Feature, s.Reason))
	}
}
