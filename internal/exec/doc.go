// Package exec runs external commands (the Wails CLI, npm, go) with context
// cancellation, spinners and friendly "command not found" hints.
//
// # Basic Usage
//
//	executor := exec.NewExecutor(nil)
//	err := executor.WithDir(projectDir).RunWithSpinner(ctx, "Installing dependencies", "npm", "install")
//
// # Testing
//
// Options.CommandFunc replaces os/exec.Command, so tests can re-invoke the
// test binary as a fake process (the TestHelperProcess pattern).
package exec
