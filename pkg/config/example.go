package config

import (
	_ "embed"
	"path/filepath"

	"github.com/kfkonrad/relconf/pkg/errors"
	"github.com/kfkonrad/relconf/pkg/logging"
	"github.com/kfkonrad/relconf/pkg/types"
)

//go:embed embedded/example.yaml
var exampleConfig []byte

// Example returns an annotated example root configuration
func Example() string {
	return string(exampleConfig)
}

// WriteExample writes the example configuration to path. An existing file
// is left alone; the result reports whether anything was written.
func WriteExample(fsys types.FS, path string) (bool, error) {
	logger := logging.GetLogger("config.example")

	if _, err := fsys.Stat(path); err == nil {
		logger.Warn().Str("path", path).Msg("Config file already exists, skipping")
		return false, nil
	}

	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
			WithDetail("path", dir)
	}
	if err := fsys.WriteFile(path, exampleConfig, 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", path).
			WithDetail("path", path)
	}

	logger.Info().Str("path", path).Msg("Written example config file")
	return true, nil
}
