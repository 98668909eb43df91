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

// Package tensor implements the in-memory tensor payload owned by a graph
// Variable: flat storage typed by the element kind, plus the initialization
// routines applied at Variable creation (zero, constant broadcast and
// fan-in-scaled random).
//
// It deliberately implements no math: executing the graph is the job of a
// backend, not of this package.
package tensor

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/gomlx/exceptions"
	"github.com/x448/float16"

	"github.com/cx-yin/glow/types/elements"
)

// Tensor is a flat, row-major in-memory tensor. Values are accessed as
// float64 regardless of the element kind; quantized kinds store and return
// the raw integer values (interpretation through scale/offset is up to the
// caller).
type Tensor struct {
	typ elements.Type
	f16 []float16.Float16
	f32 []float32
	f64 []float64
	i8  []int8
	i32 []int32
	i64 []int64
}

// FromType returns a zero-initialized tensor of the given type.
func FromType(t elements.Type) *Tensor {
	tensor := &Tensor{typ: t}
	size := t.Size()
	switch t.Kind {
	case elements.Void:
		// No storage.
	case elements.Float16:
		tensor.f16 = make([]float16.Float16, size)
	case elements.Float32:
		tensor.f32 = make([]float32, size)
	case elements.Float64:
		tensor.f64 = make([]float64, size)
	case elements.Int8Q:
		tensor.i8 = make([]int8, size)
	case elements.Int32Q:
		tensor.i32 = make([]int32, size)
	case elements.Index:
		tensor.i64 = make([]int64, size)
	default:
		exceptions.Panicf("tensor.FromType(%s): unknown element kind", t)
	}
	return tensor
}

// Type of the tensor. The returned value is a copy, the tensor type is
// immutable.
func (t *Tensor) Type() elements.Type { return t.typ }

// Size returns the number of elements stored.
func (t *Tensor) Size() int { return t.typ.Size() }

// At returns the flat element at position idx as a float64.
func (t *Tensor) At(idx int) float64 {
	t.checkIndex(idx)
	switch t.typ.Kind {
	case elements.Float16:
		return float64(t.f16[idx].Float32())
	case elements.Float32:
		return float64(t.f32[idx])
	case elements.Float64:
		return t.f64[idx]
	case elements.Int8Q:
		return float64(t.i8[idx])
	case elements.Int32Q:
		return float64(t.i32[idx])
	case elements.Index:
		return float64(t.i64[idx])
	}
	exceptions.Panicf("Tensor.At: unknown element kind %s", t.typ.Kind)
	return 0
}

// Set stores value at flat position idx, converting to the element kind.
func (t *Tensor) Set(idx int, value float64) {
	t.checkIndex(idx)
	switch t.typ.Kind {
	case elements.Float16:
		t.f16[idx] = float16.Fromfloat32(float32(value))
	case elements.Float32:
		t.f32[idx] = float32(value)
	case elements.Float64:
		t.f64[idx] = value
	case elements.Int8Q:
		t.i8[idx] = int8(value)
	case elements.Int32Q:
		t.i32[idx] = int32(value)
	case elements.Index:
		t.i64[idx] = int64(value)
	default:
		exceptions.Panicf("Tensor.Set: unknown element kind %s", t.typ.Kind)
	}
}

func (t *Tensor) checkIndex(idx int) {
	if idx < 0 || idx >= t.typ.Size() {
		exceptions.Panicf("tensor flat index %d out-of-bounds for type %s (size %d)", idx, t.typ, t.typ.Size())
	}
}

// Zero sets every element to zero.
func (t *Tensor) Zero() { t.Fill(0) }

// Fill broadcasts value to every element.
func (t *Tensor) Fill(value float64) {
	for ii := 0; ii < t.typ.Size(); ii++ {
		t.Set(ii, value)
	}
}

// InitXavier fills the tensor with uniform random values scaled by the
// fan-in: values are drawn from [-sqrt(3/fanIn), sqrt(3/fanIn)). It panics
// for non-float element kinds, or if fanIn <= 0.
func (t *Tensor) InitXavier(rng *rand.Rand, fanIn int) {
	if !t.typ.Kind.IsFloat() {
		exceptions.Panicf("Tensor.InitXavier: cannot random-initialize element kind %s (type %s)", t.typ.Kind, t.typ)
	}
	if fanIn <= 0 {
		exceptions.Panicf("Tensor.InitXavier: fanIn must be > 0, got %d", fanIn)
	}
	scale := math.Sqrt(3.0 / float64(fanIn))
	for ii := 0; ii < t.typ.Size(); ii++ {
		t.Set(ii, (2*rng.Float64()-1)*scale)
	}
}

// String implements fmt.Stringer with a short description; the data itself
// is not printed.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(%s, %d bytes)", t.typ, t.typ.Memory())
}
