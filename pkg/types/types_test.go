package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"toml", FormatTOML, false},
		{"YAML", FormatYAML, false},
		{" json ", FormatJSON, false},
		{"yml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat_UnmarshalText(t *testing.T) {
	var f Format
	require.NoError(t, f.UnmarshalText([]byte("Toml")))
	assert.Equal(t, FormatTOML, f)
	assert.Equal(t, "toml", f.String())

	assert.Error(t, f.UnmarshalText([]byte("xml")))
	assert.Equal(t, FormatTOML, f, "failed unmarshal leaves the value untouched")
}

func TestSourceIdentity(t *testing.T) {
	var src Source = PathSource{Path: "/etc/app.toml"}
	assert.Equal(t, "/etc/app.toml", src.Identity())

	src = CommandSource{Command: "echo a = 1"}
	assert.Equal(t, "echo a = 1", src.Identity())
}
