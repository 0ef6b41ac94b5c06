// Package cli defines the Cobra command tree for create-olyv-app. The root
// command scaffolds a project; version, config and doctor are registered
// from their own files. Command implementations delegate to internal
// packages and only handle flag parsing, output and exit codes.
package cli
