package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/christianwhocodes/create-olyv-app/internal/config"
	"github.com/christianwhocodes/create-olyv-app/internal/logging"
	"github.com/christianwhocodes/create-olyv-app/internal/output"
	"github.com/christianwhocodes/create-olyv-app/internal/postcreate"
	"github.com/christianwhocodes/create-olyv-app/internal/scaffold"
)

// Create flags.
var (
	createOutputDir string
	createForce     bool
	createTemplate  string
	createChecksum  string
	createNoSync    bool
)

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&createOutputDir, "output-dir", "o", "", "Output directory (default: ./<project_name>)")
	f.BoolVarP(&createForce, "force", "f", false, "Write into a non-empty directory, overwriting template files")
	f.StringVarP(&createTemplate, "template", "t", "", "Bundled template name, template directory, or archive URL")
	f.StringVar(&createChecksum, "checksum", "", "Expected SHA-256 of an archive template")
	f.BoolVar(&createNoSync, "no-sync", false, "Skip 'uv sync' after creating the project")
}

// target is the resolved project name and destination.
type target struct {
	name        string
	destination string // empty means ./<name>
	inPlace     bool   // "." was given
}

// resolveTarget handles "." as the current directory.
func resolveTarget(arg, outputDir string) (target, error) {
	if arg != "." {
		return target{name: arg, destination: outputDir}, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return target{}, fmt.Errorf("resolving current directory: %w", err)
	}
	t := target{name: filepath.Base(cwd), destination: cwd, inPlace: true}
	if outputDir != "" {
		t.destination = outputDir
		t.inPlace = false
	}
	return t, nil
}

// templateRef picks the template reference: flag, then config/env, then default.
func templateRef() string {
	if createTemplate != "" {
		return createTemplate
	}
	return config.Get(config.KeyTemplate)
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	printer := newPrinter(cmd)
	logger := logging.New(logging.Config{Verbose: verbose, Output: cmd.ErrOrStderr()})

	t, err := resolveTarget(args[0], createOutputDir)
	if err != nil {
		return output.WithCause(output.ExitSystemError, err)
	}

	var archiveOpts []scaffold.ArchiveOption
	if mirror := config.Get(config.KeyMirror); mirror != "" {
		archiveOpts = append(archiveOpts, scaffold.WithMirror(mirror))
	}
	if createChecksum != "" {
		archiveOpts = append(archiveOpts, scaffold.WithChecksum(createChecksum))
	}
	source := scaffold.ResolveSource(templateRef(), archiveOpts...)
	logger.Debug("resolved template", "source", source.Name(), "name", t.name, "destination", t.destination)

	s := scaffold.New(source,
		scaffold.WithVersion(cliVersion()),
		scaffold.WithLogger(logging.WithComponent(logger, "scaffold")),
	)
	result, err := s.Create(ctx, t.name, t.destination, scaffold.Options{Force: createForce})
	if err != nil {
		return exitError(err)
	}

	printer.Success("Created %s in %s", result.Name.Title(), result.Destination)
	printer.Info("%d files from %s", len(result.Files), result.Source)
	for _, w := range result.Warnings {
		printer.Warn("%s", w)
	}

	syncer := &postcreate.Syncer{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
		Logger: logging.WithComponent(logger, "postcreate"),
	}
	synced := false
	if !createNoSync && config.GetBool(config.KeySync) {
		warning, err := syncer.Sync(ctx, result.Destination)
		switch {
		case err != nil:
			printer.Warn("%v; the project was created, run `%s` to retry", err, syncer.Command())
		case warning != "":
			printer.Warn("%s", warning)
		default:
			synced = true
		}
	}

	printer.Println()
	printer.Heading("Next steps:")
	if !t.inPlace {
		printer.Step("cd %s", result.Destination)
	}
	if !synced {
		printer.Step("%s", syncer.Command())
	}
	for _, step := range result.NextSteps {
		printer.Step("%s", step)
	}
	return nil
}

// exitError maps a scaffold failure to its process exit code.
func exitError(err error) error {
	switch scaffold.KindOf(err) {
	case scaffold.InvalidName:
		return output.WithCause(output.ExitUserError, err)
	case scaffold.DestinationExists:
		return output.WithCause(output.ExitConflict, err)
	default:
		return output.WithCause(output.ExitSystemError, err)
	}
}
