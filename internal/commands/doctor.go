package commands

import (
	"github.com/ehsanpo/create-wails-app/internal/exec"
	"github.com/ehsanpo/create-wails-app/internal/output"
	"github.com/ehsanpo/create-wails-app/internal/postinstall"
	"github.com/spf13/cobra"
)

// DoctorCmd creates and returns the 'doctor' command checking required tools
func DoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the tools a Wails project needs are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := exec.NewExecutor(&exec.Options{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()})
			results := postinstall.Check(cmd.Context(), e, postinstall.Tools)
			postinstall.WriteTable(cmd.OutOrStdout(), results)

			if missing := postinstall.Missing(results); len(missing) > 0 {
				output.Error(postinstall.Summary(results))
				return ErrReported
			}
			output.Success(postinstall.Summary(results))
			return nil
		},
	}
}
