// Package output renders create-olyv-app's human-facing output and maps
// failures to process exit codes.
//
// # Printer
//
// The Printer writes styled lines to stdout and warnings/errors to a
// separate writer:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), output.IsTTY(cmd.OutOrStdout())).
//		WithStderr(cmd.ErrOrStderr())
//
//	printer.Success("Created %s", name)
//	printer.Step("cd %s", name)
//	printer.Warn("uv not found")
//	printer.Error(err)
//
// Styling is lipgloss-based and is disabled when the writer is not a
// terminal or --color=never is given.
//
// # Exit Codes
//
//	output.ExitSuccess     // 0: success
//	output.ExitUserError   // 1: invalid project name or arguments
//	output.ExitSystemError // 2: template unavailable, write failed, I/O
//	output.ExitConflict    // 3: destination exists
package output
