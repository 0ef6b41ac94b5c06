package cli

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/christianwhocodes/create-olyv-app/internal/branding"
	"github.com/christianwhocodes/create-olyv-app/internal/templates"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

// versionInfo is the --json payload.
type versionInfo struct {
	Version    string   `json:"version"`
	Commit     string   `json:"commit"`
	Date       string   `json:"date"`
	Release    bool     `json:"release"`
	Prerelease string   `json:"prerelease,omitempty"`
	Templates  []string `json:"templates"`
}

func newVersionInfo() versionInfo {
	info := versionInfo{
		Version:   cliVersion(),
		Commit:    buildCommit,
		Date:      buildDate,
		Templates: templates.Names(),
	}
	if v, err := semver.NewVersion(strings.TrimPrefix(info.Version, "v")); err == nil {
		info.Release = v.Prerelease() == ""
		info.Prerelease = v.Prerelease()
	}
	return info
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		info := newVersionInfo()

		if versionShort {
			fmt.Fprintln(out, info.Version)
			return nil
		}

		if versionJSON {
			return newPrinter(cmd).WriteJSON(info)
		}

		fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), info.Version, info.Commit, info.Date)
		return nil
	},
}
