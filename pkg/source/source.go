// Package source obtains the raw text of a fragment, either by reading a
// file or by running a command.
package source

import (
	stderrors "errors"
	"io/fs"
	"unicode/utf8"

	"github.com/kfkonrad/relconf/pkg/errors"
	"github.com/kfkonrad/relconf/pkg/logging"
	"github.com/kfkonrad/relconf/pkg/paths"
	"github.com/kfkonrad/relconf/pkg/shell"
	"github.com/kfkonrad/relconf/pkg/types"
)

// Content is the resolved text of a fragment
type Content struct {
	Data []byte

	// Identity names the fragment in diagnostics: the normalized path for
	// file fragments, the command string for command fragments
	Identity string

	// Path is the normalized file path, empty for command output. It drives
	// format detection by extension.
	Path string
}

// Resolver reads fragment content. Files are read through FS on every call so
// that edits made after the configuration was loaded are picked up.
type Resolver struct {
	fs     types.FS
	runner shell.Runner
}

// NewResolver creates a Resolver reading files from fsys and running
// commands with runner
func NewResolver(fsys types.FS, runner shell.Runner) *Resolver {
	return &Resolver{fs: fsys, runner: runner}
}

// Resolve returns the content of src
func (r *Resolver) Resolve(src types.Source) (*Content, error) {
	logger := logging.GetLogger("source.resolve")

	switch s := src.(type) {
	case types.PathSource:
		logger.Debug().Str("path", s.Path).Msg("Reading fragment file")
		return r.readFile(s.Path)
	case types.CommandSource:
		logger.Debug().Str("command", s.Command).Msg("Running fragment command")
		data, err := r.runner.Run(s.Command)
		if err != nil {
			return nil, err
		}
		return &Content{Data: data, Identity: s.Command}, nil
	case nil:
		return nil, errors.New(errors.ErrInternal, "fragment has neither a path nor a command")
	}
	return nil, errors.Newf(errors.ErrInternal, "unsupported fragment source %T", src)
}

func (r *Resolver) readFile(path string) (*Content, error) {
	resolved := paths.PermissiveNormalize(path)

	info, err := r.fs.Stat(resolved)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, errors.ErrSourceNotFound, "fragment file %q does not exist", resolved).
				WithDetail("path", resolved)
		}
		return nil, errors.Wrapf(err, errors.ErrSourceRead, "cannot stat fragment file %q", resolved).
			WithDetail("path", resolved)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrSourceRead, "fragment path %q is a directory", resolved).
			WithDetail("path", resolved)
	}

	data, err := r.fs.ReadFile(resolved)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceRead, "cannot read fragment file %q", resolved).
			WithDetail("path", resolved)
	}
	if !utf8.Valid(data) {
		return nil, errors.Newf(errors.ErrSourceRead, "fragment file %q is not valid UTF-8", resolved).
			WithDetail("path", resolved)
	}

	return &Content{Data: data, Identity: resolved, Path: resolved}, nil
}
