package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kfkonrad/relconf/pkg/errors"
)

var (
	// ErrorStyle is used for the first line of every reported error
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true)

	// DetailStyle is used for the key/value details below an error
	DetailStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#767676"))
)

// RenderError formats err for the terminal. Joined errors are listed one
// after the other, each followed by its details.
func RenderError(err error, f Format) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	for _, e := range flatten(err) {
		line := "Error: " + e.Error()
		if f == FormatTerminal {
			line = ErrorStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')

		details := errors.GetErrorDetails(e)
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			detail := fmt.Sprintf("  %s: %v", k, details[k])
			if f == FormatTerminal {
				detail = DetailStyle.Render(detail)
			}
			b.WriteString(detail)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// WriteError writes the rendering of err to w
func WriteError(w io.Writer, err error, f Format) {
	_, _ = io.WriteString(w, RenderError(err, f))
}

func flatten(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}
