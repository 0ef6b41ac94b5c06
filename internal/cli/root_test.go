package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/fang"
	"github.com/spf13/viper"

	"github.com/christianwhocodes/create-olyv-app/internal/output"
)

// runCLI executes the command tree in isolation and returns its output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLIWithConfig(t, t.TempDir(), args...)
}

// runCLIWithConfig is runCLI with settings read from and written to configDir.
func runCLIWithConfig(t *testing.T, configDir string, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("OLYV_CONFIG_DIR", configDir)
	viper.Reset()
	t.Cleanup(viper.Reset)
	resetFlags()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func resetFlags() {
	verbose, colorMode = false, output.ColorAuto
	createOutputDir, createForce, createTemplate, createChecksum, createNoSync = "", false, "", "", false
	versionShort, versionJSON = false, false
	doctorTemplate = ""
}

// writeTemplate creates a template directory from path → content.
func writeTemplate(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestInvalidColorMode(t *testing.T) {
	_, _, err := runCLI(t, "version", "--color", "rainbow")
	if got := output.GetExitCode(err); got != output.ExitUserError {
		t.Fatalf("exit code = %d, want %d (err %v)", got, output.ExitUserError, err)
	}
}

func TestMissingProjectName(t *testing.T) {
	_, _, err := runCLI(t)
	if got := output.GetExitCode(err); got != output.ExitUserError {
		t.Fatalf("exit code = %d, want %d (err %v)", got, output.ExitUserError, err)
	}
}

func TestPrintErrorSingleLine(t *testing.T) {
	var buf bytes.Buffer
	colorMode = output.ColorNever
	t.Cleanup(resetFlags)

	printError(&buf, fang.Styles{}, output.NewConflictError("DestinationExists: blog is not empty"))

	if buf.String() != "Error: DestinationExists: blog is not empty\n" {
		t.Errorf("printError = %q", buf.String())
	}
}

func TestCLIVersionDefaultsToDev(t *testing.T) {
	buildVersion = ""
	if got := cliVersion(); got != "dev" {
		t.Errorf("cliVersion() = %q", got)
	}
}
