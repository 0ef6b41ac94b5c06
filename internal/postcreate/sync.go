// Package postcreate runs the dependency sync that follows a successful
// scaffold.
package postcreate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// DefaultBinary is the package manager invoked after create.
const DefaultBinary = "uv"

// Syncer runs `uv sync` in a freshly created project.
type Syncer struct {
	// Binary is the executable name or path; defaults to DefaultBinary.
	Binary string
	// Stdout and Stderr receive the streamed output; default to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// Command returns the shell command Sync runs, for printing as a next step.
func (s *Syncer) Command() string {
	return s.binary() + " sync"
}

// Sync runs the sync in dir. A missing binary is not an error: Sync returns a
// warning for the caller to print instead.
func (s *Syncer) Sync(ctx context.Context, dir string) (string, error) {
	bin, err := exec.LookPath(s.binary())
	if err != nil {
		return fmt.Sprintf("%s not found; skipping dependency installation (run `%s` in %s)", s.binary(), s.Command(), dir), nil
	}

	cmd := exec.CommandContext(ctx, bin, "sync")
	cmd.Dir = dir
	cmd.Stdout = s.stdout()
	cmd.Stderr = s.stderr()

	s.logger().Debug("running dependency sync", "bin", bin, "dir", dir)
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("%s exited with status %d", s.Command(), exitErr.ExitCode())
		}
		return "", fmt.Errorf("running %s: %w", s.Command(), err)
	}
	return "", nil
}

func (s *Syncer) binary() string {
	if s.Binary == "" {
		return DefaultBinary
	}
	return s.Binary
}

func (s *Syncer) stdout() io.Writer {
	if s.Stdout == nil {
		return os.Stdout
	}
	return s.Stdout
}

func (s *Syncer) stderr() io.Writer {
	if s.Stderr == nil {
		return os.Stderr
	}
	return s.Stderr
}

func (s *Syncer) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}
