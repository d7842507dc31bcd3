package format

import (
	"bytes"
	"strings"

	"github.com/kfkonrad/relconf/pkg/types"
	"github.com/kfkonrad/relconf/pkg/value"
	"github.com/pelletier/go-toml/v2"
)

type tomlCodec struct{ base }

// TOML returns the TOML codec. TOML tables carry no order, so parsed
// mappings list their keys sorted.
func TOML() Codec {
	return tomlCodec{}
}

func (tomlCodec) Format() types.Format { return types.FormatTOML }

func (tomlCodec) Parse(content []byte) (*value.Value, error) {
	var table map[string]any
	if err := toml.Unmarshal(content, &table); err != nil {
		return nil, parseError(types.FormatTOML, err)
	}
	if table == nil {
		return value.NewMapping(), nil
	}
	return value.FromGo(table), nil
}

func (tomlCodec) Serialize(v *value.Value) ([]byte, error) {
	if !v.IsMapping() {
		return nil, serializeError(types.FormatTOML, "top-level value must be a mapping, got "+v.Kind().String())
	}

	err := value.Walk(v, func(path []string, node *value.Value) error {
		if node.IsNull() {
			return serializeError(types.FormatTOML, "cannot represent null at "+strings.Join(path, "."))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(value.ToGo(v)); err != nil {
		return nil, serializeWrap(types.FormatTOML, err)
	}
	return buf.Bytes(), nil
}
