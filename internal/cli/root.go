package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/christianwhocodes/create-olyv-app/internal/branding"
	"github.com/christianwhocodes/create-olyv-app/internal/config"
	"github.com/christianwhocodes/create-olyv-app/internal/manifest"
	"github.com/christianwhocodes/create-olyv-app/internal/output"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Persistent flags.
var (
	verbose   bool
	colorMode string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <project_name>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` project generator.

Creates a new Django project from the bundled Olyv starter, a local template
directory, or a template archive URL, then installs dependencies with uv.

Use "." as the project name to scaffold into the current directory.`,
	Example: `  ` + branding.CLIName() + ` blog
  ` + branding.CLIName() + ` blog --output-dir ~/src/blog --no-sync
  ` + branding.CLIName() + ` shop --template https://example.com/olyv-shop.tar.gz --checksum <sha256>`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !output.ValidColorMode(colorMode) {
			return output.NewUserError("--color must be one of auto, always, never; got " + colorMode)
		}
		config.Load()
		return nil
	},
	RunE: runCreate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", output.ColorAuto, "Colorize output: auto, always, never")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return fang.Execute(ctx, rootCmd,
		fang.WithVersion(version),
		fang.WithErrorHandler(printError),
	)
}

// printError renders a failed run as a single "Error: ..." line.
func printError(w io.Writer, _ fang.Styles, err error) {
	output.NewPrinter(w, output.ResolveColorMode(colorMode, output.IsTTY(w))).Error(err)
}

// cliVersion returns the version checked against template constraints.
func cliVersion() string {
	if buildVersion == "" {
		return manifest.DevVersion
	}
	return buildVersion
}

// newPrinter builds a printer on the command's stdout/stderr honoring --color.
func newPrinter(cmd *cobra.Command) *output.Printer {
	w := cmd.OutOrStdout()
	return output.NewPrinter(w, output.ResolveColorMode(colorMode, output.IsTTY(w))).
		WithStderr(cmd.ErrOrStderr())
}
