package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/christianwhocodes/create-olyv-app/internal/platform"
	"github.com/spf13/afero"
)

// DefaultNextSteps are reported when the template manifest is absent or
// lists no next_steps.
var DefaultNextSteps = []string{
	"uv run python manage.py migrate",
	"uv run python manage.py setup_groups",
	"uv run python manage.py runserver",
}

// Options controls a single Create call.
type Options struct {
	// Force writes into a non-empty destination, overwriting files the
	// template produces and leaving all other files in place.
	Force bool
}

// Result holds the outcome of a successful Create.
type Result struct {
	Name        ProjectName
	Destination string
	Source      string
	Files       []string // written output paths, in write order
	NextSteps   []string // rendered next_steps, or DefaultNextSteps
	Warnings    []string
}

// Scaffolder instantiates templates from one Source.
type Scaffolder struct {
	source  Source
	fs      afero.Fs
	version string
	logger  *slog.Logger
}

// Option configures a Scaffolder.
type Option func(*Scaffolder)

// WithFs sets the destination filesystem (defaults to the OS filesystem).
func WithFs(fsys afero.Fs) Option {
	return func(s *Scaffolder) {
		s.fs = fsys
	}
}

// WithVersion sets the CLI version checked against manifest constraints.
func WithVersion(v string) Option {
	return func(s *Scaffolder) {
		s.version = v
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scaffolder) {
		s.logger = l
	}
}

// New creates a Scaffolder for source.
func New(source Source, opts ...Option) *Scaffolder {
	s := &Scaffolder{
		source:  source,
		fs:      afero.NewOsFs(),
		version: "dev",
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create instantiates the template for name into destination. An empty
// destination means ./<name>. Every returned error is an *Error.
func (s *Scaffolder) Create(ctx context.Context, name, destination string, opts Options) (*Result, error) {
	projectName, err := ParseProjectName(name)
	if err != nil {
		return nil, newError(InvalidName, "", err)
	}

	if destination == "" {
		destination = filepath.Join(".", projectName.String())
	}
	destination = filepath.Clean(destination)

	tree, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var extra map[string]string
	if tree.Manifest != nil {
		extra = tree.Manifest.Placeholders
	}
	rc, err := NewRenderContext(projectName, extra)
	if err != nil {
		return nil, newError(TemplateUnavailable, s.source.Name(), err)
	}

	pending, warnings, err := s.render(tree, rc)
	if err != nil {
		return nil, err
	}

	if err := s.checkDestination(destination, opts.Force); err != nil {
		return nil, err
	}

	result := &Result{
		Name:        projectName,
		Destination: destination,
		Source:      s.source.Name(),
		Warnings:    warnings,
	}

	if err := s.write(ctx, pending, destination, result); err != nil {
		return result, err
	}

	if tree.Manifest != nil {
		for _, step := range tree.Manifest.NextSteps {
			result.NextSteps = append(result.NextSteps, rc.RenderString(step))
		}
	}
	if len(result.NextSteps) == 0 {
		result.NextSteps = slices.Clone(DefaultNextSteps)
	}

	s.logger.Debug("project created", "name", projectName, "destination", destination, "files", len(result.Files))
	return result, nil
}

// Inspect loads and validates the template without touching the filesystem.
// Errors are *Error of kind TemplateUnavailable.
func (s *Scaffolder) Inspect(ctx context.Context) (*TemplateTree, error) {
	return s.load(ctx)
}

// load reads the source and builds the TemplateTree. Nothing is written.
func (s *Scaffolder) load(ctx context.Context) (*TemplateTree, error) {
	s.logger.Debug("loading template", "source", s.source.Name())

	files, err := s.source.Files(ctx)
	if err != nil {
		return nil, newError(TemplateUnavailable, s.source.Name(), err)
	}

	tree, err := LoadTree(files)
	if err != nil {
		return nil, newError(TemplateUnavailable, s.source.Name(), err)
	}

	if err := tree.Manifest.CheckRequires(s.version); err != nil {
		return nil, newError(TemplateUnavailable, s.source.Name(), err)
	}

	s.logger.Debug("template loaded", "entries", len(tree.Entries), "manifest", tree.Manifest != nil)
	return tree, nil
}

// checkDestination enforces that destination is absent, an empty directory,
// or (with force) a non-empty directory.
func (s *Scaffolder) checkDestination(destination string, force bool) error {
	info, err := s.fs.Stat(destination)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return newError(WriteFailed, destination, fmt.Errorf("inspecting %s: %w", destination, err))
	}

	if !info.IsDir() {
		return errorf(DestinationExists, destination, "%s exists and is not a directory", destination)
	}

	entries, err := afero.ReadDir(s.fs, destination)
	if err != nil {
		return newError(WriteFailed, destination, fmt.Errorf("reading %s: %w", destination, err))
	}
	if len(entries) == 0 {
		return nil
	}
	if !force {
		return errorf(DestinationExists, destination, "%s is not empty (%s); use --force to merge into it", destination, describeEntries(entries))
	}

	s.logger.Debug("merging into non-empty destination", "destination", destination, "existing", len(entries))
	return nil
}

// pendingFile is one entry ready to be written.
type pendingFile struct {
	entry Entry
	data  []byte
}

// render substitutes tokens in every render-pending entry. A known token
// left in the output, which happens when a value completes literal text
// around it, fails the template.
func (s *Scaffolder) render(tree *TemplateTree, rc *RenderContext) ([]pendingFile, []string, error) {
	pending := make([]pendingFile, 0, len(tree.Entries))
	var warnings []string
	for _, entry := range tree.Entries {
		data := entry.Data
		if entry.Render {
			data = rc.Render(data)
			if left := rc.Unrendered(data); len(left) > 0 {
				return nil, nil, errorf(TemplateUnavailable, s.source.Name(),
					"%s: rendering produced placeholder %s", entry.Path, strings.Join(left, ", "))
			}
			for _, token := range UnknownTokens(data) {
				warnings = append(warnings, fmt.Sprintf("%s: unknown placeholder %s left as is", entry.Path, token))
			}
		}
		pending = append(pending, pendingFile{entry: entry, data: data})
	}
	return pending, warnings, nil
}

// write writes every pending file in tree order. The first failure stops the
// pass; files already written stay in place.
func (s *Scaffolder) write(ctx context.Context, pending []pendingFile, destination string, result *Result) error {
	if err := s.fs.MkdirAll(destination, 0755); err != nil {
		return newError(WriteFailed, destination, fmt.Errorf("creating %s: %w", destination, err))
	}

	for _, out := range pending {
		if err := ctx.Err(); err != nil {
			return newError(WriteFailed, destination, err)
		}

		entry := out.entry
		target, err := platform.JoinRel(destination, entry.Path)
		if err != nil {
			return newError(WriteFailed, entry.Path, err)
		}

		if err := s.fs.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return newError(WriteFailed, target, fmt.Errorf("creating directory for %s: %w", entry.Path, err))
		}
		if err := afero.WriteFile(s.fs, target, out.data, entry.Mode); err != nil {
			return newError(WriteFailed, target, fmt.Errorf("writing %s: %w", entry.Path, err))
		}
		// WriteFile leaves the mode of an overwritten file unchanged.
		if err := platform.Chmod(s.fs, target, entry.Mode); err != nil {
			return newError(WriteFailed, target, fmt.Errorf("setting mode on %s: %w", entry.Path, err))
		}

		s.logger.Debug("wrote file", "path", entry.Path, "rendered", entry.Render, "bytes", len(out.data))
		result.Files = append(result.Files, entry.Path)
	}
	return nil
}

// describeEntries lists up to five directory entry names.
func describeEntries(entries []fs.FileInfo) string {
	const maxShown = 5
	names := make([]string, 0, maxShown)
	for i, e := range entries {
		if i == maxShown {
			break
		}
		names = append(names, e.Name())
	}
	s := strings.Join(names, ", ")
	if len(entries) > maxShown {
		s += fmt.Sprintf(", and %d more", len(entries)-maxShown)
	}
	return s
}
