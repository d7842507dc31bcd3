// Package paths resolves the filesystem paths relconf works with.
//
// Two flavours of normalization exist:
//
//   - Normalize expands ~, makes the path absolute and resolves symlinks. The
//     path must exist. It is used for fragment files, condition directories
//     and the working directory, which are compared by their real location.
//   - PermissiveNormalize never fails. It resolves as much of the path as
//     exists and appends the rest, which suits injection targets that are
//     about to be created.
//
// The package also knows relconf's default locations, following the XDG Base
// Directory specification:
//
//   - Config: $XDG_CONFIG_HOME/relconf/config.yaml
//   - Log:    $XDG_STATE_HOME/relconf/relconf.log
package paths
