// Package manifest handles parsing and validation of template manifests.
// A template may carry a template.yaml at its root declaring extra placeholder
// tokens, render/exclude globs, a CLI version constraint, and next-step hints.
// Manifests are validated against the embedded JSON Schema before use.
package manifest
