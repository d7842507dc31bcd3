package value

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScalar_Normalizes(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"int", 3, int64(3)},
		{"int32", int32(-4), int64(-4)},
		{"uint16", uint16(7), int64(7)},
		{"uint64 small", uint64(9), int64(9)},
		{"uint64 huge", uint64(math.MaxUint64), float64(math.MaxUint64)},
		{"float32", float32(1.5), float64(1.5)},
		{"string", "x", "x"},
		{"bool", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewScalar(tt.in)
			assert.Equal(t, KindScalar, v.Kind())
			assert.Equal(t, tt.want, v.Scalar())
		})
	}

	assert.True(t, NewScalar(nil).IsNull())
}

func TestMapping_PreservesInsertionOrder(t *testing.T) {
	m := NewMapping()
	m.Set("zeta", NewScalar(1))
	m.Set("alpha", NewScalar(2))
	m.Set("mid", NewScalar(3))
	m.Set("zeta", NewScalar(4))

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
	got, ok := m.Get("zeta")
	require.True(t, ok)
	assert.Equal(t, int64(4), got.Scalar())
	assert.Equal(t, 3, m.Len())
}

func TestSetAndAppend_PanicOnWrongKind(t *testing.T) {
	assert.Panics(t, func() { NewSequence().Set("a", Null()) })
	assert.Panics(t, func() { NewMapping().Append(Null()) })
	assert.Panics(t, func() { NewScalar(1).Set("a", Null()) })
}

func TestNilValueBehavesAsNull(t *testing.T) {
	var v *Value
	assert.True(t, v.IsNull())
	assert.Equal(t, 0, v.Len())
	assert.Nil(t, v.Keys())
	assert.Equal(t, "null", v.String())
	assert.True(t, v.Equal(Null()))
	assert.True(t, v.Clone().IsNull())

	seq := NewSequence(nil, NewScalar(1))
	assert.True(t, seq.Items()[0].IsNull())
}

func TestEqual(t *testing.T) {
	a := FromGo(map[string]any{"x": 1, "y": []any{"a", map[string]any{"z": true}}})
	b := NewMapping()
	b.Set("y", FromGo([]any{"a", map[string]any{"z": true}}))
	b.Set("x", NewScalar(int64(1)))

	assert.True(t, a.Equal(b), "mapping order is not significant")

	c := FromGo(map[string]any{"x": 1, "y": []any{map[string]any{"z": true}, "a"}})
	assert.False(t, a.Equal(c), "sequence order is significant")

	assert.False(t, NewScalar(int64(1)).Equal(NewScalar(1.0)), "int and float differ")
	assert.True(t, NewScalar(math.NaN()).Equal(NewScalar(math.NaN())))

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, NewScalar(ts).Equal(NewScalar(ts.In(time.FixedZone("x", 3600)))))
}

func TestClone_IsDeep(t *testing.T) {
	orig := FromGo(map[string]any{"list": []any{1, 2}, "nested": map[string]any{"k": "v"}})
	clone := orig.Clone()
	require.True(t, orig.Equal(clone))

	list, _ := clone.Get("list")
	list.Append(NewScalar(3))
	nested, _ := clone.Get("nested")
	nested.Set("k", NewScalar("changed"))

	origList, _ := orig.Get("list")
	assert.Equal(t, 2, origList.Len())
	origNested, _ := orig.Get("nested")
	k, _ := origNested.Get("k")
	assert.Equal(t, "v", k.Scalar())
}

func TestFromGoAndToGo(t *testing.T) {
	in := map[string]any{
		"b":    []any{int64(1), "two", nil},
		"a":    map[string]any{"flag": false},
		"strs": []string{"x", "y"},
	}

	v := FromGo(in)
	assert.Equal(t, []string{"a", "b", "strs"}, v.Keys(), "keys are sorted")

	out := ToGo(v)
	assert.Equal(t, map[string]any{
		"b":    []any{int64(1), "two", nil},
		"a":    map[string]any{"flag": false},
		"strs": []any{"x", "y"},
	}, out)
}

func TestString(t *testing.T) {
	v := NewMapping()
	v.Set("a", NewScalar(1))
	v.Set("list", NewSequence(NewScalar("x"), Null()))
	assert.Equal(t, `{a: 1, list: ["x", null]}`, v.String())
}

func TestWalk(t *testing.T) {
	v := NewMapping()
	v.Set("a", NewSequence(NewScalar(1), NewMapping()))
	v.Set("b", Null())

	var visited []string
	err := Walk(v, func(path []string, node *Value) error {
		visited = append(visited, strings.Join(path, ".")+"="+node.Kind().String())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"=mapping",
		"a=sequence",
		"a.[0]=scalar",
		"a.[1]=mapping",
		"b=null",
	}, visited)

	stop := errors.New("stop")
	err = Walk(v, func(path []string, node *Value) error {
		if node.IsNull() {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
}
