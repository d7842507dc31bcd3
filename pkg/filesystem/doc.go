// Package filesystem provides implementations of the types.FS interface:
// the OS filesystem used at runtime and an afero-backed one that tests use
// with an in-memory filesystem.
package filesystem
