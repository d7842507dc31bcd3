package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kfkonrad/relconf/pkg/errors"
)

// EnvHome is the standard home directory variable
const EnvHome = "HOME"

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv(EnvHome)
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrHomeDir, "unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

// Expand replaces a leading ~ with the home directory. Paths of the form
// ~user are returned unchanged, as is everything when the home directory is
// unknown.
func Expand(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}
	return filepath.Join(homeDir, path[2:])
}

// Normalize expands ~, makes path absolute and resolves every symlink in it.
// It fails when the path does not exist.
func Normalize(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(Expand(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPathNotFound, "no such path %q", path).
			WithDetail("path", path)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPathNotFound, "no such path %q", path).
			WithDetail("path", path)
	}

	return resolved, nil
}

// PermissiveNormalize behaves like Normalize for existing paths. For paths
// that do not exist yet, the deepest existing ancestor is resolved and the
// missing components are appended to it.
func PermissiveNormalize(path string) string {
	expanded := Expand(path)
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return expanded
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}

	var missing []string
	current := abs
	for {
		parent := filepath.Dir(current)
		missing = append(missing, filepath.Base(current))
		if parent == current {
			return abs
		}
		current = parent

		if resolved, err := filepath.EvalSymlinks(current); err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved
		}
	}
}

// IsWithin reports whether child equals parent or lies below it. Both paths
// are compared lexically and should already be normalized.
func IsWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// IsFile reports whether path resolves to a regular file. Symlinks to files
// count as files.
func IsFile(path string) (bool, error) {
	resolved, err := Normalize(path)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrPathNotFound, "cannot stat %q", path)
	}
	return info.Mode().IsRegular(), nil
}

// IsDir reports whether path resolves to a directory. Symlinks to
// directories count as directories.
func IsDir(path string) (bool, error) {
	resolved, err := Normalize(path)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrPathNotFound, "cannot stat %q", path)
	}
	return info.IsDir(), nil
}
