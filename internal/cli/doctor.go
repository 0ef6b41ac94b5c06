package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/christianwhocodes/create-olyv-app/internal/config"
	"github.com/christianwhocodes/create-olyv-app/internal/logging"
	"github.com/christianwhocodes/create-olyv-app/internal/postcreate"
	"github.com/christianwhocodes/create-olyv-app/internal/scaffold"
)

var doctorTemplate string

func init() {
	doctorCmd.Flags().StringVarP(&doctorTemplate, "template", "t", "", "Template to validate (default: configured template)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment and validate a template",
	Long: `Report whether the tools a generated project needs are on PATH, where
settings are read from, and whether the selected template loads cleanly.
Nothing is written.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		fmt.Fprintln(out, "Runtime check:")
		checkBinary(cmd, postcreate.DefaultBinary)
		checkBinary(cmd, "python3")
		checkBinary(cmd, "git")

		fmt.Fprintln(out, "Config check:")
		if _, err := os.Stat(config.FilePath()); err != nil {
			fmt.Fprintf(out, "  [INFO] %s not found, using defaults\n", config.FilePath())
		} else {
			fmt.Fprintf(out, "  [ OK ] %s\n", config.FilePath())
		}

		ref := doctorTemplate
		if ref == "" {
			ref = config.Get(config.KeyTemplate)
		}
		var archiveOpts []scaffold.ArchiveOption
		if mirror := config.Get(config.KeyMirror); mirror != "" {
			archiveOpts = append(archiveOpts, scaffold.WithMirror(mirror))
		}
		source := scaffold.ResolveSource(ref, archiveOpts...)
		logger := logging.New(logging.Config{Verbose: verbose, Output: cmd.ErrOrStderr()})

		fmt.Fprintln(out, "Template check:")
		tree, err := scaffold.New(source,
			scaffold.WithVersion(cliVersion()),
			scaffold.WithLogger(logging.WithComponent(logger, "scaffold")),
		).Inspect(cmd.Context())
		if err != nil {
			fmt.Fprintf(out, "  [FAIL] %s\n", source.Name())
			return exitError(err)
		}

		rendered := 0
		for _, e := range tree.Entries {
			if e.Render {
				rendered++
			}
		}
		fmt.Fprintf(out, "  [ OK ] %s: %d files, %d rendered\n", source.Name(), len(tree.Entries), rendered)
		if m := tree.Manifest; m != nil {
			fmt.Fprintf(out, "  [INFO] manifest %s %s", m.Name, m.Version)
			if m.Requires != "" {
				fmt.Fprintf(out, " (requires %s)", m.Requires)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func checkBinary(cmd *cobra.Command, name string) {
	path, err := exec.LookPath(name)
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "  [MISS] %s not found\n", name)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  [ OK ] %s found at %s\n", name, path)
}
