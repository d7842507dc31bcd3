package types

import (
	"fmt"
	"strings"
)

// Format selects the serialization a tool's merged configuration is
// accumulated in
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// AllFormats lists the supported formats in detection order
var AllFormats = []Format{FormatTOML, FormatYAML, FormatJSON}

// ParseFormat converts a case-insensitive format name into a Format
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("unknown format %q, expected one of toml, yaml, json", s)
	}
	return f, nil
}

// Valid reports whether f is one of the supported formats
func (f Format) Valid() bool {
	switch f {
	case FormatTOML, FormatYAML, FormatJSON:
		return true
	}
	return false
}

func (f Format) String() string {
	return string(f)
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
