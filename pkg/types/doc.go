// Package types defines the data model shared across relconf: tools, the
// fragments they are synthesized from, the conditions gating those fragments
// and the injection targets receiving the result. It also holds the FS
// interface used by the components that touch the filesystem.
package types
