package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kfkonrad/relconf/cmd/relconf"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bash|zsh|fish|powershell>\n", os.Args[0])
		os.Exit(1)
	}

	if err := generate(os.Args[1], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generate(shell string, w io.Writer) error {
	rootCmd := relconf.NewRootCmd()

	var err error
	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		err = rootCmd.GenZshCompletion(w)
	case "fish":
		err = rootCmd.GenFishCompletion(w, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unknown shell %q, supported shells: bash, zsh, fish, powershell", shell)
	}
	if err != nil {
		return fmt.Errorf("error generating %s completion: %w", shell, err)
	}
	return nil
}
