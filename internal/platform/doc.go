// Package platform provides cross-platform filesystem helpers: joining
// slash-separated template paths onto native destination paths, and applying
// permission bits where the operating system supports them.
package platform
