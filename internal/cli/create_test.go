package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/fang"

	"github.com/christianwhocodes/create-olyv-app/internal/output"
	"github.com/christianwhocodes/create-olyv-app/internal/scaffold"
)

func blogTemplateDir(t *testing.T) string {
	return writeTemplate(t, map[string]string{
		"template.yaml":  "name: blog\nnext_steps:\n  - uv run python manage.py migrate\n",
		"manage.py.tmpl": "PROJECT=__PROJECT_NAME__",
		"README.md":      "# readme",
	})
}

func TestCreateCommand(t *testing.T) {
	tmpl := blogTemplateDir(t)
	dest := filepath.Join(t.TempDir(), "blog")

	stdout, stderr, err := runCLI(t, "blog", "--template", tmpl, "--output-dir", dest, "--no-sync")
	if err != nil {
		t.Fatalf("create: %v\nstderr: %s", err, stderr)
	}

	data, err := os.ReadFile(filepath.Join(dest, "manage.py"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "PROJECT=blog" {
		t.Errorf("manage.py = %q", data)
	}

	for _, want := range []string{
		"Created Blog in " + dest,
		"2 files from " + tmpl,
		"Next steps:",
		"  cd " + dest,
		"  uv sync",
		"  uv run python manage.py migrate",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
	if stderr != "" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestCreateCommandPrintsDefaultNextSteps(t *testing.T) {
	tmpl := writeTemplate(t, map[string]string{"manage.py.tmpl": "PROJECT=__PROJECT_NAME__"})
	dest := filepath.Join(t.TempDir(), "blog")

	stdout, stderr, err := runCLI(t, "blog", "--template", tmpl, "--output-dir", dest, "--no-sync")
	if err != nil {
		t.Fatalf("create: %v\nstderr: %s", err, stderr)
	}
	for _, want := range []string{
		"  uv run python manage.py migrate",
		"  uv run python manage.py setup_groups",
		"  uv run python manage.py runserver",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestCreateCommandErrorLineNamesKind(t *testing.T) {
	tmpl := blogTemplateDir(t)
	existing := t.TempDir()
	if err := os.WriteFile(filepath.Join(existing, "keep.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"invalid name", []string{"1blog", "--template", tmpl, "--no-sync"}, "Error: InvalidName: "},
		{"destination exists", []string{"blog", "--template", tmpl, "-o", existing, "--no-sync"}, "Error: DestinationExists: "},
		{"missing template", []string{"blog", "--template", filepath.Join(tmpl, "nope"), "--no-sync"}, "Error: TemplateUnavailable: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			var buf bytes.Buffer
			printError(&buf, fang.Styles{}, err)
			line := buf.String()
			if !strings.HasPrefix(line, tt.want) || strings.Count(line, "\n") != 1 {
				t.Errorf("stderr line = %q, want prefix %q", line, tt.want)
			}
		})
	}
}

func TestCreateCommandExitCodes(t *testing.T) {
	tmpl := blogTemplateDir(t)
	existing := t.TempDir()
	if err := os.WriteFile(filepath.Join(existing, "keep.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"invalid name", []string{"1blog", "--template", tmpl, "--no-sync"}, output.ExitUserError},
		{"reserved name", []string{"class", "--template", tmpl, "--no-sync"}, output.ExitUserError},
		{"destination exists", []string{"blog", "--template", tmpl, "-o", existing, "--no-sync"}, output.ExitConflict},
		{"missing template", []string{"blog", "--template", filepath.Join(tmpl, "nope"), "-o", filepath.Join(t.TempDir(), "blog"), "--no-sync"}, output.ExitSystemError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			if got := output.GetExitCode(err); got != tt.want {
				t.Errorf("exit code = %d, want %d (err %v)", got, tt.want, err)
			}
		})
	}
}

func TestCreateCommandForce(t *testing.T) {
	tmpl := blogTemplateDir(t)
	dest := t.TempDir()
	if err := os.WriteFile(filepath.Join(dest, "keep.txt"), []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, stderr, err := runCLI(t, "blog", "-t", tmpl, "-o", dest, "--force", "--no-sync"); err != nil {
		t.Fatalf("create --force: %v\n%s", err, stderr)
	}
	if data, _ := os.ReadFile(filepath.Join(dest, "keep.txt")); string(data) != "mine" {
		t.Errorf("keep.txt = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dest, "manage.py")); err != nil {
		t.Errorf("manage.py not written: %v", err)
	}
}

func TestCreateCommandInPlace(t *testing.T) {
	tmpl := blogTemplateDir(t)
	dir := filepath.Join(t.TempDir(), "shop")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	stdout, stderr, err := runCLI(t, ".", "-t", tmpl, "--no-sync")
	if err != nil {
		t.Fatalf("create .: %v\n%s", err, stderr)
	}
	data, err := os.ReadFile(filepath.Join(dir, "manage.py"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "PROJECT=shop" {
		t.Errorf("manage.py = %q", data)
	}
	if strings.Contains(stdout, "  cd ") {
		t.Errorf("in-place create should not suggest cd:\n%s", stdout)
	}
}

func TestCreateCommandSyncMissingUV(t *testing.T) {
	tmpl := blogTemplateDir(t)
	dest := filepath.Join(t.TempDir(), "blog")
	t.Setenv("PATH", t.TempDir())

	stdout, stderr, err := runCLI(t, "blog", "-t", tmpl, "-o", dest)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !strings.Contains(stderr, "Warning: uv not found") {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(stdout, "  uv sync") {
		t.Errorf("uv sync should remain a next step:\n%s", stdout)
	}
}

func TestCreateCommandTemplateFromEnv(t *testing.T) {
	tmpl := blogTemplateDir(t)
	dest := filepath.Join(t.TempDir(), "blog")
	t.Setenv("OLYV_TEMPLATE", tmpl)
	t.Setenv("OLYV_SYNC", "false")

	stdout, stderr, err := runCLI(t, "blog", "-o", dest)
	if err != nil {
		t.Fatalf("create: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "from "+tmpl) {
		t.Errorf("template from env not used:\n%s", stdout)
	}
	if strings.Contains(stderr, "uv") {
		t.Errorf("sync should be disabled by OLYV_SYNC=false: %q", stderr)
	}
}

func TestResolveTarget(t *testing.T) {
	got, err := resolveTarget("blog", "")
	if err != nil || got != (target{name: "blog"}) {
		t.Errorf("resolveTarget(blog) = %+v, %v", got, err)
	}

	dir := filepath.Join(t.TempDir(), "site")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	got, err = resolveTarget(".", "")
	if err != nil {
		t.Fatal(err)
	}
	if got.name != "site" || !got.inPlace {
		t.Errorf("resolveTarget(.) = %+v", got)
	}

	got, err = resolveTarget(".", "/srv/site")
	if err != nil {
		t.Fatal(err)
	}
	if got.destination != "/srv/site" || got.inPlace {
		t.Errorf("resolveTarget(., -o) = %+v", got)
	}
}

func TestExitError(t *testing.T) {
	tests := []struct {
		kind scaffold.Kind
		want int
	}{
		{scaffold.InvalidName, output.ExitUserError},
		{scaffold.TemplateUnavailable, output.ExitSystemError},
		{scaffold.DestinationExists, output.ExitConflict},
		{scaffold.WriteFailed, output.ExitSystemError},
	}

	for _, tt := range tests {
		err := exitError(&scaffold.Error{Kind: tt.kind, Err: errors.New("boom")})
		if got := output.GetExitCode(err); got != tt.want {
			t.Errorf("%s: exit code = %d, want %d", tt.kind, got, tt.want)
		}
		if scaffold.KindOf(err) != tt.kind {
			t.Errorf("%s: kind lost through exitError", tt.kind)
		}
	}
}
