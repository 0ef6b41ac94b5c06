package scaffold

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/christianwhocodes/create-olyv-app/internal/templates"
)

// Source provides the raw files of a template.
type Source interface {
	// Name describes the source for messages (bundled name, path, or URL).
	Name() string
	// Files reads every template file. It completes before anything is written.
	Files(ctx context.Context) ([]File, error)
}

// FSSource reads a template from an fs.FS.
type FSSource struct {
	Label string
	FS    fs.FS
}

// Name returns the source label.
func (s *FSSource) Name() string { return s.Label }

// Files walks the filesystem and returns its regular files.
func (s *FSSource) Files(ctx context.Context) ([]File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFS(s.FS)
}

// Bundled returns the template set embedded in the binary under name.
func Bundled(name string) (Source, error) {
	fsys, err := templates.Open(name)
	if err != nil {
		return nil, err
	}
	return &FSSource{Label: "bundled:" + name, FS: fsys}, nil
}

// Dir returns a template read from a local directory.
func Dir(path string) (Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("template directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template path %s is not a directory", path)
	}
	return &FSSource{Label: path, FS: os.DirFS(path)}, nil
}

// ResolveSource maps a template reference to a Source: a bundled template
// name, an http(s) archive URL, or a local directory path. A reference that
// cannot be opened yields a Source whose Files returns the error, so the
// failure surfaces when the template is loaded.
func ResolveSource(ref string, archiveOpts ...ArchiveOption) Source {
	if ref == "" {
		ref = templates.Default
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return NewArchive(ref, archiveOpts...)
	}

	var (
		src Source
		err error
	)
	if templates.Exists(ref) {
		src, err = Bundled(ref)
	} else {
		src, err = Dir(ref)
	}
	if err != nil {
		return &unavailableSource{name: ref, err: err}
	}
	return src
}

// unavailableSource reports a resolution failure at load time.
type unavailableSource struct {
	name string
	err  error
}

func (s *unavailableSource) Name() string { return s.name }

func (s *unavailableSource) Files(context.Context) ([]File, error) { return nil, s.err }
