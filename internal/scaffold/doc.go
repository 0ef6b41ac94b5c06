// Package scaffold instantiates a project template into a new directory. It
// powers the root create-olyv-app command: it validates the project name,
// loads a template tree from a bundled set, a local directory, or a fetched
// archive, substitutes placeholder tokens, and writes the result to the
// destination. Every failure surfaces as a single *Error of one of four kinds.
package scaffold
