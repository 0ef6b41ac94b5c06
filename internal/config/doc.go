// Package config manages user-level settings stored at ~/.olyv/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the default template source, the archive mirror URL, and whether the new
// project's dependencies are synced after creation.
package config
