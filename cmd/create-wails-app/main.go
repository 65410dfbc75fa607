package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/ehsanpo/create-wails-app/internal/commands"
	"github.com/ehsanpo/create-wails-app/internal/output"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.NewCmd())
	rootCmd.AddCommand(commands.AddCmd())
	rootCmd.AddCommand(commands.FeaturesCmd())
	rootCmd.AddCommand(commands.DoctorCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, commands.ErrReported) {
			output.Error(err.Error())
		}
		stop()
		os.Exit(1)
	}
}
