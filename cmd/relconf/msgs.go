package relconf

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort      = "Synthesize tool configuration from directory-aware fragments"
	MsgVersionShort   = "Print version information"
	MsgVersionLong    = "Print detailed version information including commit hash and build date"
	MsgGenConfigShort = "Print or write an example root configuration"
	MsgToolsShort     = "List the tools defined in the root configuration"

	// Status messages
	MsgDryRunNotice     = "DRY RUN MODE - no files were written"
	MsgToolItem         = "%s\t%s\t%d fragment(s)\t%d target(s)\n"
	MsgNoTools          = "No tools configured."
	MsgConfigWritten    = "Written example configuration to %s\n"
	MsgConfigNotWritten = "Configuration already exists at %s, not overwriting\n"

	// Version output
	MsgVersionFormat = "relconf version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Flag descriptions
	MsgFlagConfig  = "Root configuration file, - for stdin (default $RELCONF_CONFIG or $XDG_CONFIG_HOME/relconf/config.yaml)"
	MsgFlagOnly    = "Only process the named tools (comma separated)"
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Merge and serialize without writing files or printing exports"
	MsgFlagColor   = "Colorize error output: auto, always or never"
	MsgFlagWrite   = "Write the example to the root configuration location"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)
)
