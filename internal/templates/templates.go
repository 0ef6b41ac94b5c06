// Package templates holds the project templates bundled into the binary.
// Each top-level directory is one template set; "default" is the Olyv
// Django starter.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Default is the template used when none is specified.
const Default = "default"

//go:embed all:default
var bundled embed.FS

// Names returns the bundled template names, sorted.
func Names() []string {
	entries, err := fs.ReadDir(bundled, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// Exists reports whether name is a bundled template.
func Exists(name string) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Open returns the filesystem rooted at the bundled template name.
func Open(name string) (fs.FS, error) {
	if !Exists(name) {
		return nil, fmt.Errorf("bundled template %q not found (available: %s)", name, strings.Join(Names(), ", "))
	}
	return fs.Sub(bundled, name)
}
