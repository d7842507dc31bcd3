// Package value defines the format-independent representation every
// configuration fragment is projected into before merging.
//
// A Value is exactly one of null, scalar, sequence or mapping. Mappings keep
// their keys in insertion order so that YAML and JSON documents round-trip
// with their original layout.
package value

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"
)

// Kind identifies the variant a Value holds
type Kind uint8

const (
	KindNull Kind = iota
	KindScalar
	KindSequence
	KindMapping
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Value is a node of a configuration tree.
//
// Scalars hold bool, int64, float64, string, time.Time or a format specific
// type implementing encoding.TextMarshaler (TOML local dates and times).
// A nil *Value behaves as null.
type Value struct {
	kind   Kind
	scalar any
	items  []*Value
	keys   []string
	fields map[string]*Value
}

// Null returns a null value
func Null() *Value {
	return &Value{kind: KindNull}
}

// NewScalar wraps a Go scalar. Integer types are widened to int64 and
// float32 to float64; nil yields null.
func NewScalar(v any) *Value {
	switch s := v.(type) {
	case nil:
		return Null()
	case int:
		return &Value{kind: KindScalar, scalar: int64(s)}
	case int8:
		return &Value{kind: KindScalar, scalar: int64(s)}
	case int16:
		return &Value{kind: KindScalar, scalar: int64(s)}
	case int32:
		return &Value{kind: KindScalar, scalar: int64(s)}
	case uint:
		return &Value{kind: KindScalar, scalar: uintScalar(uint64(s))}
	case uint8:
		return &Value{kind: KindScalar, scalar: int64(s)}
	case uint16:
		return &Value{kind: KindScalar, scalar: int64(s)}
	case uint32:
		return &Value{kind: KindScalar, scalar: int64(s)}
	case uint64:
		return &Value{kind: KindScalar, scalar: uintScalar(s)}
	case float32:
		return &Value{kind: KindScalar, scalar: float64(s)}
	}
	return &Value{kind: KindScalar, scalar: v}
}

func uintScalar(u uint64) any {
	if u > math.MaxInt64 {
		return float64(u)
	}
	return int64(u)
}

// NewSequence returns a sequence holding items
func NewSequence(items ...*Value) *Value {
	seq := &Value{kind: KindSequence, items: make([]*Value, 0, len(items))}
	for _, item := range items {
		seq.items = append(seq.items, orNull(item))
	}
	return seq
}

// NewMapping returns an empty mapping
func NewMapping() *Value {
	return &Value{kind: KindMapping, fields: make(map[string]*Value)}
}

func orNull(v *Value) *Value {
	if v == nil {
		return Null()
	}
	return v
}

// Kind returns the variant held by v
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) IsNull() bool     { return v.Kind() == KindNull }
func (v *Value) IsScalar() bool   { return v.Kind() == KindScalar }
func (v *Value) IsSequence() bool { return v.Kind() == KindSequence }
func (v *Value) IsMapping() bool  { return v.Kind() == KindMapping }

// Scalar returns the Go value of a scalar, nil for anything else
func (v *Value) Scalar() any {
	if !v.IsScalar() {
		return nil
	}
	return v.scalar
}

// Items returns the elements of a sequence
func (v *Value) Items() []*Value {
	if !v.IsSequence() {
		return nil
	}
	return v.items
}

// Keys returns the keys of a mapping in insertion order
func (v *Value) Keys() []string {
	if !v.IsMapping() {
		return nil
	}
	return v.keys
}

// Len returns the number of items of a sequence or entries of a mapping
func (v *Value) Len() int {
	switch v.Kind() {
	case KindSequence:
		return len(v.items)
	case KindMapping:
		return len(v.keys)
	}
	return 0
}

// Get looks up key in a mapping
func (v *Value) Get(key string) (*Value, bool) {
	if !v.IsMapping() {
		return nil, false
	}
	child, ok := v.fields[key]
	return child, ok
}

// Has reports whether a mapping binds key
func (v *Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Set binds key in a mapping. New keys are appended; rebinding an existing
// key keeps its position. Set panics when v is not a mapping.
func (v *Value) Set(key string, child *Value) {
	if !v.IsMapping() {
		panic(fmt.Sprintf("value: Set on %s", v.Kind()))
	}
	if _, ok := v.fields[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.fields[key] = orNull(child)
}

// Append adds items to a sequence. Append panics when v is not a sequence.
func (v *Value) Append(items ...*Value) {
	if !v.IsSequence() {
		panic(fmt.Sprintf("value: Append on %s", v.Kind()))
	}
	for _, item := range items {
		v.items = append(v.items, orNull(item))
	}
}

// Clone returns a deep copy of v
func (v *Value) Clone() *Value {
	switch v.Kind() {
	case KindScalar:
		return &Value{kind: KindScalar, scalar: v.scalar}
	case KindSequence:
		out := &Value{kind: KindSequence, items: make([]*Value, len(v.items))}
		for i, item := range v.items {
			out.items[i] = item.Clone()
		}
		return out
	case KindMapping:
		out := NewMapping()
		for _, k := range v.keys {
			out.Set(k, v.fields[k].Clone())
		}
		return out
	}
	return Null()
}

// Equal reports whether v and other describe the same tree. Mapping key
// order is not significant; sequence order is.
func (v *Value) Equal(other *Value) bool {
	if v.Kind() != other.Kind() {
		return false
	}
	switch v.Kind() {
	case KindNull:
		return true
	case KindScalar:
		return scalarEqual(v.scalar, other.scalar)
	case KindSequence:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.keys) != len(other.keys) {
			return false
		}
		for _, k := range v.keys {
			theirs, ok := other.fields[k]
			if !ok || !v.fields[k].Equal(theirs) {
				return false
			}
		}
		return true
	}
	return false
}

func scalarEqual(a, b any) bool {
	if at, ok := a.(time.Time); ok {
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	}
	if af, ok := a.(float64); ok {
		bf, ok := b.(float64)
		if !ok {
			return false
		}
		return af == bf || (math.IsNaN(af) && math.IsNaN(bf))
	}
	return reflect.DeepEqual(a, b)
}

// String renders v in a compact debugging notation
func (v *Value) String() string {
	switch v.Kind() {
	case KindScalar:
		if s, ok := v.scalar.(string); ok {
			return fmt.Sprintf("%q", s)
		}
		return fmt.Sprint(v.scalar)
	case KindSequence:
		out := "["
		for i, item := range v.items {
			if i > 0 {
				out += ", "
			}
			out += item.String()
		}
		return out + "]"
	case KindMapping:
		out := "{"
		for i, k := range v.keys {
			if i > 0 {
				out += ", "
			}
			out += k + ": " + v.fields[k].String()
		}
		return out + "}"
	}
	return "null"
}

// FromGo converts nested map[string]any / []any / scalar values into a
// Value. Map keys are sorted since Go maps carry no order.
func FromGo(in any) *Value {
	switch t := in.(type) {
	case *Value:
		return orNull(t)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := NewMapping()
		for _, k := range keys {
			out.Set(k, FromGo(t[k]))
		}
		return out
	case []any:
		out := NewSequence()
		for _, item := range t {
			out.Append(FromGo(item))
		}
		return out
	case []map[string]any:
		out := NewSequence()
		for _, item := range t {
			out.Append(FromGo(item))
		}
		return out
	case []string:
		out := NewSequence()
		for _, item := range t {
			out.Append(NewScalar(item))
		}
		return out
	}
	return NewScalar(in)
}

// ToGo converts v into nested map[string]any / []any / scalar values
func ToGo(v *Value) any {
	switch v.Kind() {
	case KindScalar:
		return v.scalar
	case KindSequence:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = ToGo(item)
		}
		return out
	case KindMapping:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = ToGo(v.fields[k])
		}
		return out
	}
	return nil
}

// Walk calls fn for v and every descendant in document order. The path
// lists the mapping keys and sequence indexes leading to the node.
func Walk(v *Value, fn func(path []string, node *Value) error) error {
	return walk(nil, v, fn)
}

func walk(path []string, v *Value, fn func([]string, *Value) error) error {
	if err := fn(path, v); err != nil {
		return err
	}
	switch v.Kind() {
	case KindSequence:
		for i, item := range v.items {
			if err := walk(append(path[:len(path):len(path)], fmt.Sprintf("[%d]", i)), item, fn); err != nil {
				return err
			}
		}
	case KindMapping:
		for _, k := range v.keys {
			if err := walk(append(path[:len(path):len(path)], k), v.fields[k], fn); err != nil {
				return err
			}
		}
	}
	return nil
}
