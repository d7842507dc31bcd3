package ui_test

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kfkonrad/relconf/pkg/errors"
	"github.com/kfkonrad/relconf/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	assert.Equal(t, "auto", ui.FormatAuto.String())
	assert.Equal(t, "always", ui.FormatTerminal.String())
	assert.Equal(t, "never", ui.FormatText.String())
	assert.Equal(t, "unknown", ui.Format(999).String())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{"", ui.FormatAuto, false},
		{"auto", ui.FormatAuto, false},
		{"ALWAYS", ui.FormatTerminal, false},
		{"terminal", ui.FormatTerminal, false},
		{"never", ui.FormatText, false},
		{"plain", ui.FormatText, false},
		{"rainbow", ui.FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDetectFormat_NonTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	assert.Equal(t, ui.FormatText, ui.Resolve(ui.FormatAuto, f))
	assert.Equal(t, ui.FormatTerminal, ui.Resolve(ui.FormatTerminal, f))
}

func TestDetectFormat_NoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, ui.FormatText, ui.DetectFormat(os.Stderr))
}

func TestRenderError_Text(t *testing.T) {
	err := errors.New(errors.ErrSourceNotFound, "fragment file missing").
		WithDetail("tool", "git").
		WithDetail("fragment", "/x/base.toml")

	got := ui.RenderError(err, ui.FormatText)
	assert.Equal(t, "Error: [SOURCE_NOT_FOUND] fragment file missing\n  fragment: /x/base.toml\n  tool: git\n", got)
}

func TestRenderError_Joined(t *testing.T) {
	err := stderrors.Join(
		errors.New(errors.ErrCommandFailed, "boom"),
		stderrors.New("plain failure"),
	)

	got := ui.RenderError(err, ui.FormatText)
	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Error: [COMMAND_FAILED] boom", lines[0])
	assert.Equal(t, "Error: plain failure", lines[1])
}

func TestRenderError_Nil(t *testing.T) {
	assert.Empty(t, ui.RenderError(nil, ui.FormatTerminal))
}

func TestWriteError(t *testing.T) {
	var b strings.Builder
	ui.WriteError(&b, stderrors.New("x"), ui.FormatText)
	assert.Equal(t, "Error: x\n", b.String())
}
