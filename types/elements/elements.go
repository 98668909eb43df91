/*
 *	Copyright 2023 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

// Package elements defines ElemKind and Type, the value-level description of
// a tensor: its element kind, its dimensions and, for quantized kinds, the
// scale and zero-offset of the quantization.
//
// A Type is immutable once created. Two Types are equal iff element kind,
// dimensions and quantization parameters match exactly. Within a graph
// Module, Types are interned ("uniqued") so that equality can be checked by
// handle identity -- see the graph package. This package only provides the
// value type and its tools.
//
// ## Glossary
//
//   - Rank: number of axes (dimensions) of a tensor.
//   - Axis: the index of a dimension. Negative axes count from the end, so
//     axis=-1 refers to the last axis.
//   - Dimension: the size of a tensor along one of its axes.
//   - ElemKind: the data type of the unit element of a tensor.
package elements

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// ElemKind enumerates the element kinds a tensor Type can carry.
//
// Int8Q and Int32Q are quantized kinds: values are stored as integers and
// interpreted through the owning Type's scale and zero-offset. Index is the
// kind produced for index tensors (e.g. the indices output of TopK).
type ElemKind int32

//go:generate go tool enumer -type=ElemKind -output=gen_elemkind_enumer.go elements.go

const (
	Void ElemKind = iota
	Float16
	Float32
	Float64
	Int8Q
	Int32Q
	Index
)

// IsQuantized returns whether the kind stores quantized integer values that
// are interpreted through a scale and zero-offset.
func (k ElemKind) IsQuantized() bool {
	return k == Int8Q || k == Int32Q
}

// IsFloat returns whether the kind is a plain (non-quantized) floating point
// kind.
func (k ElemKind) IsFloat() bool {
	return k == Float16 || k == Float32 || k == Float64
}

// Size returns the storage size of one element in bytes.
func (k ElemKind) Size() int {
	switch k {
	case Void:
		return 0
	case Float16:
		return 2
	case Float32:
		return 4
	case Float64:
		return 8
	case Int8Q:
		return 1
	case Int32Q:
		return 4
	case Index:
		return 8
	}
	exceptions.Panicf("elements.ElemKind(%d).Size(): unknown element kind", k)
	return 0
}

// Type describes a tensor: element kind, an ordered sequence of dimension
// sizes, and -- for quantized kinds -- the scale and zero-offset used to
// interpret the stored integers.
//
// Use NewType or NewQuantizedType to create one; the zero value is the void
// type. Types are immutable: none of the methods mutate the receiver.
type Type struct {
	Kind ElemKind
	Dims []int

	// Scale and Offset are only meaningful when Kind.IsQuantized().
	Scale  float32
	Offset int32
}

// NewType returns a Type with the given non-quantized element kind and
// dimensions. It panics if kind is quantized (use NewQuantizedType) or if
// any dimension is <= 0.
func NewType(kind ElemKind, dims ...int) Type {
	if kind.IsQuantized() {
		exceptions.Panicf("elements.NewType(%s): quantized kinds require scale and offset, use NewQuantizedType", kind)
	}
	t := Type{Kind: kind, Dims: slices.Clone(dims)}
	for _, dim := range dims {
		if dim <= 0 {
			exceptions.Panicf("elements.NewType(%s): cannot create a type with an axis with dimension <= 0 (dims=%v)", kind, dims)
		}
	}
	return t
}

// NewQuantizedType returns a Type with the given quantized element kind,
// quantization parameters and dimensions. It panics if kind is not
// quantized or if any dimension is <= 0.
func NewQuantizedType(kind ElemKind, scale float32, offset int32, dims ...int) Type {
	if !kind.IsQuantized() {
		exceptions.Panicf("elements.NewQuantizedType(%s): kind is not quantized, use NewType", kind)
	}
	t := Type{Kind: kind, Dims: slices.Clone(dims), Scale: scale, Offset: offset}
	for _, dim := range dims {
		if dim <= 0 {
			exceptions.Panicf("elements.NewQuantizedType(%s): cannot create a type with an axis with dimension <= 0 (dims=%v)", kind, dims)
		}
	}
	return t
}

// VoidType returns the canonical empty type.
func VoidType() Type { return Type{} }

// WithDims returns a Type with the same element kind (and, if quantized, the
// same scale and offset) but new dimensions.
func (t Type) WithDims(dims ...int) Type {
	if t.Kind.IsQuantized() {
		return NewQuantizedType(t.Kind, t.Scale, t.Offset, dims...)
	}
	return NewType(t.Kind, dims...)
}

// Rank of the type, that is, the number of dimensions.
func (t Type) Rank() int { return len(t.Dims) }

// IsVoid returns whether this is the empty type.
func (t Type) IsVoid() bool { return t.Kind == Void }

// IsQuantized returns whether the element kind is quantized.
func (t Type) IsQuantized() bool { return t.Kind.IsQuantized() }

// Dim returns the dimension of the given axis. axis can take negative
// numbers, in which case it counts from the end -- so axis=-1 refers to the
// last axis. It panics for an out-of-bounds axis.
func (t Type) Dim(axis int) int {
	adjusted := axis
	if adjusted < 0 {
		adjusted += t.Rank()
	}
	if adjusted < 0 || adjusted >= t.Rank() {
		exceptions.Panicf("Type.Dim(%d) out-of-bounds for rank %d (type=%s)", axis, t.Rank(), t)
	}
	return t.Dims[adjusted]
}

// Size returns the number of elements of the type: the product of all
// dimensions. A rank-0 type has size 1.
func (t Type) Size() (size int) {
	size = 1
	for _, d := range t.Dims {
		size *= d
	}
	return
}

// Memory returns the bytes needed to store a tensor of this type.
func (t Type) Memory() int {
	return t.Kind.Size() * t.Size()
}

// Equal compares two types for structural equality: element kind,
// dimensions, and -- for quantized kinds -- scale and offset.
func (t Type) Equal(t2 Type) bool {
	if t.Kind != t2.Kind {
		return false
	}
	if !slices.Equal(t.Dims, t2.Dims) {
		return false
	}
	if t.Kind.IsQuantized() {
		return t.Scale == t2.Scale && t.Offset == t2.Offset
	}
	return true
}

// SameElementType returns whether the two types share element kind and
// quantization parameters, ignoring dimensions.
func (t Type) SameElementType(t2 Type) bool {
	if t.Kind != t2.Kind {
		return false
	}
	if t.Kind.IsQuantized() {
		return t.Scale == t2.Scale && t.Offset == t2.Offset
	}
	return true
}

// String implements fmt.Stringer, pretty-prints the type.
func (t Type) String() string {
	if t.IsVoid() {
		return "void"
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(t.Kind.String()))
	if t.Rank() > 0 {
		fmt.Fprintf(&b, "%v", t.Dims)
	}
	if t.IsQuantized() {
		fmt.Fprintf(&b, "{%g,%d}", t.Scale, t.Offset)
	}
	return b.String()
}

// CheckDims checks that the type has the given dimensions and rank. A value
// of -1 in dimensions means the axis can take any value and is not checked.
//
// It returns an error if the rank is different or if any of the dimensions
// don't match.
func (t Type) CheckDims(dims ...int) error {
	if t.Rank() != len(dims) {
		return errors.Errorf("type (%s) has incompatible rank %d (wanted %d)", t, t.Rank(), len(dims))
	}
	for ii, wantDim := range dims {
		if wantDim != -1 && t.Dims[ii] != wantDim {
			return errors.Errorf("type (%s) axis %d has dimension %d, wanted %d (dims wanted=%v)", t, ii, t.Dims[ii], wantDim, dims)
		}
	}
	return nil
}

// AssertDims checks that the type has the given dimensions and rank. A value
// of -1 in dimensions means the axis is not checked. It panics if it doesn't
// match.
func (t Type) AssertDims(dims ...int) {
	if err := t.CheckDims(dims...); err != nil {
		exceptions.Panicf("elements.AssertDims(%v): %+v", dims, err)
	}
}
