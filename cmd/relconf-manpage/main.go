package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/kfkonrad/relconf/cmd/relconf"
	"github.com/kfkonrad/relconf/internal/version"
)

func main() {
	rootCmd := relconf.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "RELCONF",
		Section: "1",
		Source:  "relconf " + version.Version,
		Manual:  "relconf manual",
	}

	err := doc.GenMan(rootCmd, header, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
