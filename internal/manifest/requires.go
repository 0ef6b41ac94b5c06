package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DevVersion is the version string of unreleased builds. It satisfies every constraint.
const DevVersion = "dev"

// CheckRequires verifies that cliVersion satisfies the manifest's requires
// constraint. An empty constraint or a dev build always passes.
func (m *Manifest) CheckRequires(cliVersion string) error {
	if m == nil || m.Requires == "" || cliVersion == DevVersion {
		return nil
	}

	constraint, err := semver.NewConstraint(m.Requires)
	if err != nil {
		return fmt.Errorf("parsing requires constraint %q: %w", m.Requires, err)
	}

	v, err := semver.NewVersion(strings.TrimPrefix(cliVersion, "v"))
	if err != nil {
		return fmt.Errorf("parsing CLI version %q: %w", cliVersion, err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("template %q requires CLI version %s, running %s", m.Name, m.Requires, cliVersion)
	}
	return nil
}
