package format

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kfkonrad/relconf/pkg/types"
	"github.com/kfkonrad/relconf/pkg/value"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
)

type jsonCodec struct{ base }

// JSON returns the JSON codec. Comments and trailing commas are accepted on
// input; output is indented with two spaces and keeps mapping order.
func JSON() Codec {
	return jsonCodec{}
}

func (jsonCodec) Format() types.Format { return types.FormatJSON }

func (jsonCodec) Parse(content []byte) (*value.Value, error) {
	data := jsonc.ToJSON(content)
	if !gjson.ValidBytes(data) {
		return nil, parseError(types.FormatJSON, fmt.Errorf("invalid JSON document"))
	}
	return fromJSONResult(gjson.ParseBytes(data))
}

func fromJSONResult(r gjson.Result) (*value.Value, error) {
	switch r.Type {
	case gjson.Null:
		return value.Null(), nil
	case gjson.False:
		return value.NewScalar(false), nil
	case gjson.True:
		return value.NewScalar(true), nil
	case gjson.String:
		return value.NewScalar(r.Str), nil
	case gjson.Number:
		return jsonNumber(r.Raw), nil
	case gjson.JSON:
		return fromJSONContainer(r)
	}
	return nil, parseError(types.FormatJSON, fmt.Errorf("unexpected JSON token %q", r.Raw))
}

func fromJSONContainer(r gjson.Result) (*value.Value, error) {
	var out *value.Value
	if r.IsArray() {
		out = value.NewSequence()
	} else {
		out = value.NewMapping()
	}

	var err error
	r.ForEach(func(key, val gjson.Result) bool {
		var child *value.Value
		child, err = fromJSONResult(val)
		if err != nil {
			return false
		}
		if out.IsSequence() {
			out.Append(child)
		} else {
			out.Set(key.String(), child)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// jsonNumber keeps integers that fit int64 as integers and everything else
// as float64
func jsonNumber(raw string) *value.Value {
	if !strings.ContainsAny(raw, ".eE") {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return value.NewScalar(i)
		}
	}
	f, _ := strconv.ParseFloat(raw, 64)
	return value.NewScalar(f)
}

func (jsonCodec) Serialize(v *value.Value) ([]byte, error) {
	var compact bytes.Buffer
	if err := writeJSON(&compact, v); err != nil {
		return nil, serializeWrap(types.FormatJSON, err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, serializeWrap(types.FormatJSON, err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v *value.Value) error {
	switch v.Kind() {
	case value.KindNull:
		buf.WriteString("null")
	case value.KindScalar:
		return writeJSONScalar(buf, v.Scalar())
	case value.KindSequence:
		buf.WriteByte('[')
		for i, item := range v.Items() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case value.KindMapping:
		buf.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			child, _ := v.Get(k)
			if err := writeJSON(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeJSONScalar(buf *bytes.Buffer, s any) error {
	switch t := s.(type) {
	case string:
		return writeJSONString(buf, t)
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case int64:
		buf.WriteString(strconv.FormatInt(t, 10))
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return fmt.Errorf("cannot represent %v", t)
		}
		buf.WriteString(floatText(t))
	case time.Time:
		return writeJSONString(buf, t.Format(time.RFC3339Nano))
	case encoding.TextMarshaler:
		text, err := t.MarshalText()
		if err != nil {
			return err
		}
		return writeJSONString(buf, string(text))
	default:
		return writeJSONString(buf, fmt.Sprint(t))
	}
	return nil
}

// writeJSONString escapes s without turning <, > and & into \u sequences
func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}
