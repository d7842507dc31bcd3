// Package format converts configuration text to and from the generic
// value.Value representation.
//
// Each supported format has a Codec. Codecs agree on one projection:
// documents parse into mappings, sequences and scalars, and serializing a
// value writes that same shape back. Merging is defined once, in package
// merge, over the projection.
//
// The format of a file is chosen by extension:
//
//	yaml, yml          YAML
//	json, json5, jsonc JSON (comments and trailing commas tolerated)
//	toml, tml          TOML
//
// Content without a known extension is detected by trying TOML first (the
// strictest grammar) and YAML second (which accepts JSON as well).
package format

import (
	"path/filepath"
	"strings"

	"github.com/kfkonrad/relconf/pkg/errors"
	"github.com/kfkonrad/relconf/pkg/logging"
	"github.com/kfkonrad/relconf/pkg/merge"
	"github.com/kfkonrad/relconf/pkg/types"
	"github.com/kfkonrad/relconf/pkg/value"
)

// Codec parses and serializes one format
type Codec interface {
	// Format returns the format handled by the codec
	Format() types.Format

	// Parse reads text into a value, failing with FORMAT_PARSE on malformed input
	Parse(content []byte) (*value.Value, error)

	// Serialize writes v as text, failing with FORMAT_SERIALIZE when the
	// format cannot represent v
	Serialize(v *value.Value) ([]byte, error)

	// Default returns the starting point of a merge accumulator
	Default() *value.Value

	// Merge folds incoming into acc
	Merge(acc, incoming *value.Value) *value.Value
}

// base carries the parts every codec shares
type base struct{}

func (base) Default() *value.Value {
	return value.NewMapping()
}

func (base) Merge(acc, incoming *value.Value) *value.Value {
	return merge.Merge(acc, incoming)
}

// For returns the codec for f
func For(f types.Format) (Codec, error) {
	switch f {
	case types.FormatTOML:
		return TOML(), nil
	case types.FormatYAML:
		return YAML(), nil
	case types.FormatJSON:
		return JSON(), nil
	}
	return nil, errors.Newf(errors.ErrFormatUnknown, "unsupported format %q", f).
		WithDetail("format", string(f))
}

// FromExtension maps a path's extension to a format
func FromExtension(path string) (types.Format, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "yaml", "yml":
		return types.FormatYAML, true
	case "json", "json5", "jsonc":
		return types.FormatJSON, true
	case "toml", "tml":
		return types.FormatTOML, true
	}
	return "", false
}

// DetectContent guesses the format of content by parsing it as TOML and
// then as YAML. Text that is valid in both is reported as TOML.
func DetectContent(content []byte) (types.Format, error) {
	if _, err := TOML().Parse(content); err == nil {
		return types.FormatTOML, nil
	}
	if _, err := YAML().Parse(content); err == nil {
		return types.FormatYAML, nil
	}
	return "", errors.New(errors.ErrFormatUnknown, "unable to parse content as TOML or YAML")
}

// Parse reads content originating from path. The extension of path picks
// the codec; without a path or a known extension the content is detected.
func Parse(content []byte, path string) (*value.Value, error) {
	f, ok := FromExtension(path)
	if !ok {
		detected, err := DetectContent(content)
		if err != nil {
			if path != "" {
				return nil, errors.Wrapf(err, errors.ErrFormatUnknown, "could not determine format of %q", path).
					WithDetail("path", path)
			}
			return nil, err
		}
		f = detected
	}

	codec, err := For(f)
	if err != nil {
		return nil, err
	}
	return codec.Parse(content)
}

// ForDestination returns the codec used to write path. Unknown extensions
// fall back to JSON with a warning, since JSON loses nothing of a value.
func ForDestination(path string) Codec {
	f, ok := FromExtension(path)
	if !ok {
		logger := logging.GetLogger("format")
		logger.Warn().
			Str("path", path).
			Msg("Unable to determine format from file extension, defaulting to JSON")
		f = types.FormatJSON
	}
	codec, _ := For(f)
	return codec
}

// Serialize writes v in the format chosen for path by ForDestination
func Serialize(v *value.Value, path string) ([]byte, error) {
	data, err := ForDestination(path).Serialize(v)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFormatSerialize, "unable to serialize merged config for %q", path).
			WithDetail("path", path)
	}
	return data, nil
}

func parseError(f types.Format, err error) error {
	return errors.Wrapf(err, errors.ErrFormatParse, "error parsing %s", strings.ToUpper(string(f))).
		WithDetail("format", string(f))
}

func serializeError(f types.Format, message string) error {
	return errors.Newf(errors.ErrFormatSerialize, "error serializing %s: %s", strings.ToUpper(string(f)), message).
		WithDetail("format", string(f))
}

func serializeWrap(f types.Format, err error) error {
	return errors.Wrapf(err, errors.ErrFormatSerialize, "error serializing %s", strings.ToUpper(string(f))).
		WithDetail("format", string(f))
}
