// Package testutil provides helpers for building the small file trees relconf
// tests run against: fragment files, condition directories and symlinks
// inside t.TempDir.
package testutil
