package paths

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	// AppDirName is the directory name used below the XDG base directories
	AppDirName = "relconf"

	// ConfigFileName is the name of the root configuration file
	ConfigFileName = "config.yaml"

	// LogFileName is the name of the log file
	LogFileName = "relconf.log"
)

// DefaultConfigPath returns the root configuration location used when
// neither a flag nor RELCONF_CONFIG names one
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppDirName, ConfigFileName)
}

// LogFilePath returns the path to the log file
func LogFilePath() string {
	return filepath.Join(xdg.StateHome, AppDirName, LogFileName)
}
