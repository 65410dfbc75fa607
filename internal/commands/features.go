package commands

import (
	"fmt"

	"github.com/ehsanpo/create-wails-app/internal/config"
	"github.com/ehsanpo/create-wails-app/internal/features"
	"github.com/ehsanpo/create-wails-app/internal/pipeline"
	"github.com/ehsanpo/create-wails-app/internal/templates"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// FeaturesCmd creates and returns the 'features' command listing the catalog
func FeaturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List available features",
		Long: `Lists every feature with its category and how it is applied per Wails
version:
  patch      main.go is patched to wire the feature in
  side file  files are added, the main.go patch does not apply
  files      only files and dependencies are added
  n/a        the feature does nothing for this version`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := templates.New()
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Feature", "Category", "Wails 3", "Wails 2", "Description"})

			all := features.All()
			for _, f := range all {
				info, _ := config.Lookup(string(f.Name()))
				v3, err := support(store, 3, f)
				if err != nil {
					return err
				}
				v2, err := support(store, 2, f)
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{info.Name, info.Category, v3, v2, info.Description})
			}
			t.Render()
			return nil
		},
	}
}

// support classifies how f applies to a fresh project of the given version
// by planning it against an empty tree.
func support(store *templates.Store, version int, f pipeline.Feature) (string, error) {
	cfg, err := config.Existing("/project/app", version, config.React, []string{string(f.Name())})
	if err != nil {
		return "", err
	}
	env, err := pipeline.NewEnv(cfg, afero.NewMemMapFs(), store)
	if err != nil {
		return "", err
	}
	plan, err := pipeline.Describe(env, f)
	if err != nil {
		return "", fmt.Errorf("describing %s: %w", f.Name(), err)
	}

	switch {
	case plan.Patches() > 0:
		return "patch", nil
	case len(plan.Skips()) > 0 && len(plan.Ops()) > 0:
		return "side file", nil
	case len(plan.Skips()) > 0:
		return "n/a", nil
	default:
		return "files", nil
	}
}
