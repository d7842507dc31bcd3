package main

import (
	"os"

	"github.com/kfkonrad/relconf/cmd/relconf"
	"github.com/kfkonrad/relconf/pkg/ui"
)

func main() {
	rootCmd := relconf.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		format := ui.Resolve(relconf.ColorFormat(rootCmd), os.Stderr)
		ui.WriteError(os.Stderr, err, format)
		os.Exit(1)
	}
}
