package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/christianwhocodes/create-olyv-app/internal/manifest"
)

// templateSuffix marks a file whose body is rendered; it is stripped from the output name.
const templateSuffix = ".tmpl"

// excludedNames are path segments never copied from a template.
var excludedNames = map[string]bool{
	"__pycache__":  true,
	".git":         true,
	"node_modules": true,
	".DS_Store":    true,
}

// File is a raw file read from a template source.
type File struct {
	Path string // slash-separated, relative to the template root
	Mode fs.FileMode
	Data []byte
}

// Entry is one file of a TemplateTree.
type Entry struct {
	Path   string // output path, slash-separated, relative to the destination
	Source string // path in the template source
	Mode   fs.FileMode
	Data   []byte
	Render bool // Data contains placeholder tokens to substitute
}

// TemplateTree is the loaded, immutable set of files to instantiate.
type TemplateTree struct {
	Entries  []Entry // sorted by Path
	Manifest *manifest.Manifest
}

// Paths returns the output paths of all entries in order.
func (t *TemplateTree) Paths() []string {
	paths := make([]string, len(t.Entries))
	for i, e := range t.Entries {
		paths[i] = e.Path
	}
	return paths
}

// LoadTree builds a TemplateTree from raw source files. It parses the
// manifest if present, drops excluded files, strips .tmpl suffixes, and
// orders entries lexicographically by output path.
func LoadTree(files []File) (*TemplateTree, error) {
	var m *manifest.Manifest
	for _, f := range files {
		if f.Path == manifest.FileName {
			parsed, err := manifest.Parse(f.Data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", manifest.FileName, err)
			}
			m = parsed
			break
		}
	}

	tree := &TemplateTree{Manifest: m}
	seen := make(map[string]string)

	for _, f := range files {
		if f.Path == manifest.FileName || shouldSkip(f.Path) || m.ShouldExclude(f.Path) {
			continue
		}

		outPath := f.Path
		render := false
		if strings.HasSuffix(outPath, templateSuffix) && path.Base(outPath) != templateSuffix {
			outPath = strings.TrimSuffix(outPath, templateSuffix)
			render = true
		}
		if m.ShouldRender(outPath) {
			render = true
		}

		if prev, dup := seen[outPath]; dup {
			return nil, fmt.Errorf("template files %s and %s both produce %s", prev, f.Path, outPath)
		}
		seen[outPath] = f.Path

		tree.Entries = append(tree.Entries, Entry{
			Path:   outPath,
			Source: f.Path,
			Mode:   normalizeMode(f.Mode),
			Data:   f.Data,
			Render: render,
		})
	}

	if len(tree.Entries) == 0 {
		return nil, errors.New("template contains no files")
	}

	sort.Slice(tree.Entries, func(i, j int) bool {
		return tree.Entries[i].Path < tree.Entries[j].Path
	})
	return tree, nil
}

// ReadFS collects the regular files of fsys, skipping excluded directories.
func ReadFS(fsys fs.FS) ([]File, error) {
	var files []File
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if d.IsDir() {
			if excludedNames[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		// Skip symlinks and other special files.
		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %s: %w", p, err)
		}
		files = append(files, File{Path: p, Mode: info.Mode(), Data: data})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// shouldSkip reports whether a template path is never copied.
func shouldSkip(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if excludedNames[seg] {
			return true
		}
	}
	return path.Ext(p) == ".pyc"
}

// normalizeMode keeps only the executable distinction of a source mode.
// Embedded and archived sources report inconsistent permission bits.
func normalizeMode(mode fs.FileMode) fs.FileMode {
	if mode.Perm()&0111 != 0 {
		return 0755
	}
	return 0644
}
