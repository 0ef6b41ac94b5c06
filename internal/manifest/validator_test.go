package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func testPath(name string) string {
	return filepath.Join("testdata", name)
}

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(testPath(name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return data
}

func TestValidate_ValidManifests(t *testing.T) {
	for _, file := range []string{"valid-full.yaml", "valid-minimal.yaml"} {
		t.Run(file, func(t *testing.T) {
			result, err := Validate(readTestdata(t, file))
			if err != nil {
				t.Fatalf("Validate(%s) error: %v", file, err)
			}
			if !result.Valid {
				for _, issue := range result.Issues {
					t.Errorf("  path=%s keyword=%s message=%s", issue.Path, issue.Keyword, issue.Message)
				}
			}
		})
	}
}

func TestValidate_InvalidManifests(t *testing.T) {
	tests := []struct {
		file string
		desc string
	}{
		{"invalid-missing-name.yaml", "missing required name"},
		{"invalid-bad-placeholder.yaml", "placeholder key violates token pattern"},
		{"invalid-unknown-field.yaml", "unknown top-level field"},
		{"invalid-version-number.yaml", "version is not a string"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			result, err := Validate(readTestdata(t, tt.file))
			if err != nil {
				t.Fatalf("Validate(%s) unexpected error: %v", tt.file, err)
			}
			if result.Valid {
				t.Errorf("expected invalid for %s (%s)", tt.file, tt.desc)
			}
			if len(result.Issues) == 0 {
				t.Errorf("expected at least one issue for %s (%s)", tt.file, tt.desc)
			}
		})
	}
}

func TestValidate_InvalidYAML(t *testing.T) {
	_, err := Validate([]byte("name: [unclosed"))
	if err == nil {
		t.Fatal("expected parse error for malformed YAML")
	}
}

func TestValidationIssueString(t *testing.T) {
	root := ValidationIssue{Message: "missing name"}
	if root.String() != "missing name" {
		t.Errorf("root issue = %q", root.String())
	}
	nested := ValidationIssue{Path: "/render/0", Message: "bad"}
	if nested.String() != "/render/0: bad" {
		t.Errorf("nested issue = %q", nested.String())
	}
}
