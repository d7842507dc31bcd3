package format

import (
	"bytes"
	"encoding"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/kfkonrad/relconf/pkg/types"
	"github.com/kfkonrad/relconf/pkg/value"
	"gopkg.in/yaml.v3"
)

const yamlMergeTag = "!!merge"

type yamlCodec struct{ base }

// YAML returns the YAML codec. Mapping order is taken from the document;
// aliases and merge keys are resolved.
func YAML() Codec {
	return yamlCodec{}
}

func (yamlCodec) Format() types.Format { return types.FormatYAML }

func (yamlCodec) Parse(content []byte) (*value.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, parseError(types.FormatYAML, err)
	}
	v, err := fromYAMLNode(&doc)
	if err != nil {
		return nil, parseError(types.FormatYAML, err)
	}
	return v, nil
}

func fromYAMLNode(n *yaml.Node) (*value.Value, error) {
	switch n.Kind {
	case 0:
		// empty document
		return value.Null(), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.Null(), nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.ScalarNode:
		var s any
		if err := n.Decode(&s); err != nil {
			return nil, err
		}
		return value.NewScalar(s), nil
	case yaml.SequenceNode:
		seq := value.NewSequence()
		for _, child := range n.Content {
			item, err := fromYAMLNode(child)
			if err != nil {
				return nil, err
			}
			seq.Append(item)
		}
		return seq, nil
	case yaml.MappingNode:
		return fromYAMLMapping(n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

func fromYAMLMapping(n *yaml.Node) (*value.Value, error) {
	m := value.NewMapping()
	explicit := make(map[string]bool)

	for i := 0; i+1 < len(n.Content); i += 2 {
		keyNode, valNode := n.Content[i], n.Content[i+1]
		if keyNode.Kind == yaml.AliasNode {
			keyNode = keyNode.Alias
		}

		if keyNode.ShortTag() == yamlMergeTag {
			if err := applyYAMLMerge(m, explicit, valNode); err != nil {
				return nil, err
			}
			continue
		}

		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
		}

		child, err := fromYAMLNode(valNode)
		if err != nil {
			return nil, err
		}
		m.Set(keyNode.Value, child)
		explicit[keyNode.Value] = true
	}
	return m, nil
}

// applyYAMLMerge copies the entries of a << value into m without overriding
// keys the mapping sets itself
func applyYAMLMerge(m *value.Value, explicit map[string]bool, n *yaml.Node) error {
	src, err := fromYAMLNode(n)
	if err != nil {
		return err
	}

	var sources []*value.Value
	switch {
	case src.IsMapping():
		sources = []*value.Value{src}
	case src.IsSequence():
		sources = src.Items()
	default:
		return fmt.Errorf("line %d: merge key requires a mapping or a sequence of mappings", n.Line)
	}

	for _, s := range sources {
		if !s.IsMapping() {
			return fmt.Errorf("line %d: merge key requires a mapping or a sequence of mappings", n.Line)
		}
		for _, k := range s.Keys() {
			if explicit[k] || m.Has(k) {
				continue
			}
			child, _ := s.Get(k)
			m.Set(k, child)
		}
	}
	return nil
}

func (yamlCodec) Serialize(v *value.Value) ([]byte, error) {
	node, err := toYAMLNode(v)
	if err != nil {
		return nil, serializeWrap(types.FormatYAML, err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, serializeWrap(types.FormatYAML, err)
	}
	if err := enc.Close(); err != nil {
		return nil, serializeWrap(types.FormatYAML, err)
	}
	return buf.Bytes(), nil
}

func toYAMLNode(v *value.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case value.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case value.KindScalar:
		return yamlScalar(v.Scalar())
	case value.KindSequence:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			child, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	case value.KindMapping:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			childNode, err := toYAMLNode(child)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				childNode,
			)
		}
		return n, nil
	}
	return nil, fmt.Errorf("unexpected value kind %s", v.Kind())
}

func yamlScalar(s any) (*yaml.Node, error) {
	switch t := s.(type) {
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}, nil
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(t, 10)}, nil
	case float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: yamlFloat(t)}, nil
	case time.Time:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!timestamp", Value: t.Format(time.RFC3339Nano)}, nil
	case encoding.TextMarshaler:
		text, err := t.MarshalText()
		if err != nil {
			return nil, err
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(text)}, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(s); err != nil {
		return nil, err
	}
	return n, nil
}

// yamlFloat formats f so that it reads back as a float
func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return floatText(f)
}

// floatText formats f in its shortest form, keeping a fractional part on
// integral values
func floatText(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' || c == 'n' || c == 'N' {
			return s
		}
	}
	return s + ".0"
}
