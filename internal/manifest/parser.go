package manifest

import (
	"fmt"
	"path"
	"strings"

	"go.yaml.in/yaml/v3"
)

// InvalidError reports schema violations found in a manifest.
type InvalidError struct {
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}
	return "invalid template manifest: " + strings.Join(msgs, "; ")
}

// Parse validates raw YAML against the manifest schema and decodes it.
// Schema violations are returned as *InvalidError.
func Parse(data []byte) (*Manifest, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, &InvalidError{Issues: result.Issues}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	for _, pattern := range append(append([]string{}, m.Render...), m.Exclude...) {
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid glob %q in manifest: %w", pattern, err)
		}
	}

	return &m, nil
}

// ShouldRender reports whether relPath matches one of the render globs.
// Globs are matched against the slash-separated relative path and its base name.
func (m *Manifest) ShouldRender(relPath string) bool {
	if m == nil {
		return false
	}
	return matchAny(m.Render, relPath)
}

// ShouldExclude reports whether relPath matches one of the exclude globs.
func (m *Manifest) ShouldExclude(relPath string) bool {
	if m == nil {
		return false
	}
	return matchAny(m.Exclude, relPath)
}

func matchAny(patterns []string, relPath string) bool {
	base := path.Base(relPath)
	for _, p := range patterns {
		if ok, _ := path.Match(p, relPath); ok {
			return true
		}
		if ok, _ := path.Match(p, base); ok {
			return true
		}
	}
	return false
}
