package platform

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// JoinRel joins a slash-separated relative path onto a native root directory.
// It rejects absolute paths and paths that would escape root.
func JoinRel(root, rel string) (string, error) {
	if rel == "" || path.IsAbs(rel) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("path %q must be relative", rel)
	}
	clean := path.Clean(rel)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("path %q escapes %s", rel, root)
	}
	return filepath.Join(root, filepath.FromSlash(clean)), nil
}
