package manifest

// FileName is the manifest file looked up at a template root. It is never
// copied into the generated project.
const FileName = "template.yaml"

// Manifest describes a project template.
type Manifest struct {
	Name         string            `yaml:"name" json:"name"`
	Description  string            `yaml:"description,omitempty" json:"description,omitempty"`
	Version      string            `yaml:"version,omitempty" json:"version,omitempty"`
	Requires     string            `yaml:"requires,omitempty" json:"requires,omitempty"`
	Placeholders map[string]string `yaml:"placeholders,omitempty" json:"placeholders,omitempty"`
	Render       []string          `yaml:"render,omitempty" json:"render,omitempty"`
	Exclude      []string          `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	NextSteps    []string          `yaml:"next_steps,omitempty" json:"next_steps,omitempty"`
}
