package shell

import (
	"fmt"
	"strings"

	"github.com/kfkonrad/relconf/pkg/errors"
	"mvdan.cc/sh/v3/syntax"
)

var doubleQuoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"`", "\\`",
)

// ExportLine renders the line printed for an env-bound injection:
//
//	export NAME="path"
//
// The path is escaped for a double-quoted POSIX shell string so that
// eval-ing the line yields path verbatim.
func ExportLine(name, path string) string {
	return fmt.Sprintf("export %s=\"%s\"", name, doubleQuoteEscaper.Replace(path))
}

// ValidateEnvName checks that name can be assigned in a POSIX shell
func ValidateEnvName(name string) error {
	if !syntax.ValidName(name) {
		return errors.Newf(errors.ErrInvalidInput, "%q is not a valid environment variable name", name).
			WithDetail("env-name", name)
	}
	return nil
}
