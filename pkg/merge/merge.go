// Package merge folds configuration fragments into one tree.
//
// Mappings merge key by key in the incoming fragment's order. When both sides
// bind a key to a sequence the sequences are concatenated, existing elements
// first. Every other collision, including mismatched kinds, resolves to the
// incoming value. Merging is not commutative, so fragments must be folded in
// declaration order.
package merge

import (
	"github.com/kfkonrad/relconf/pkg/value"
)

// Merge merges src into dst and returns the result. When both are mappings
// dst is updated in place and returned; otherwise a copy of src is returned.
// src is never modified and no part of it is shared with the result.
func Merge(dst, src *value.Value) *value.Value {
	if !dst.IsMapping() || !src.IsMapping() {
		return src.Clone()
	}

	for _, key := range src.Keys() {
		srcVal, _ := src.Get(key)
		dstVal, exists := dst.Get(key)

		switch {
		case !exists:
			dst.Set(key, srcVal.Clone())
		case srcVal.IsSequence() && dstVal.IsSequence():
			dst.Set(key, Concat(dstVal, srcVal))
		default:
			dst.Set(key, Merge(dstVal, srcVal))
		}
	}
	return dst
}

// Concat returns a new sequence holding the items of a followed by those of b
func Concat(a, b *value.Value) *value.Value {
	out := value.NewSequence()
	for _, item := range a.Items() {
		out.Append(item.Clone())
	}
	for _, item := range b.Items() {
		out.Append(item.Clone())
	}
	return out
}
