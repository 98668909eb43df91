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

// Package graph is the in-memory intermediate representation of a
// neural-network computation: a directed graph of typed operator nodes, plus
// the machinery that builds, mutates, verifies and clones it.
//
// The main elements in the package are:
//
//   - Module: owns the type arena (interned tensor Types), the Variables
//     (graph-level persistent tensors, shared across functions) and the
//     Functions. It also owns the counter used to unique names.
//
//   - Function: an ordered collection of Nodes forming one computation
//     graph. Nodes are created through the New* builder methods (NewConv,
//     NewFullyConnected, NewConcat, ...), each of which checks its
//     preconditions, runs shape inference and appends the new node.
//
//   - Node: one operator instance. Each node has a kind, a name unique
//     within its function, named input slots holding NodeValues, and named
//     output slots carrying interned types.
//
//   - NodeValue: a typed edge endpoint -- a reference to a producing Node or
//     Variable plus a result-slot index. It never owns what it references.
//
//   - Variable: a Module-owned tensor with a visibility kind (public or
//     private) and an initialization policy, referenced by nodes across any
//     of the module's functions.
//
// ## Graph building time
//
// All checking happens at graph building time: the builders validate shapes
// and element kinds before mutating anything, and panic (with a stack trace,
// via github.com/gomlx/exceptions) on any violated precondition. The
// builders are meant for a trusted compiler front-end, so an invalid call
// signals a bug upstream, not bad user input. Structural invariants that can
// only be broken by later mutations (name collisions, dangling edges after
// an erase) are caught by Function.Verify.
//
// The package is single-threaded by design: a Module and its Functions must
// be mutated by one goroutine at a time, serialized by the caller.
package graph

import (
	. "github.com/gomlx/exceptions"

	"github.com/cx-yin/glow/types/elements"
)

// TypeRef is a stable handle into a Module's type arena. The arena uniques
// types by structural equality, so two TypeRefs are equal (pointer identity)
// iff the types they describe are equal.
type TypeRef = *elements.Type

// shapeNHWC destructures a rank-4 [batch, height, width, channels] shape.
type shapeNHWC struct {
	N, H, W, C int
}

func nhwc(v NodeValue) shapeNHWC {
	dims := v.Dims()
	if len(dims) != 4 {
		Panicf("expected a rank-4 [batch, height, width, channels] input, got %s from %s", v.Type(), v.Source().Name())
	}
	return shapeNHWC{N: dims[0], H: dims[1], W: dims[2], C: dims[3]}
}

// convOutputDims calculates the spatial output size of a convolution or
// pooling window: floor((dim + 2*pad - kernel) / stride) + 1.
func convOutputDims(h, w, kernel, stride, pad int) (outH, outW int) {
	outH = (h+2*pad-kernel)/stride + 1
	outW = (w+2*pad-kernel)/stride + 1
	return
}

// flattenCdr returns the first dimension and the product of the remaining
// ones, which is how rank-N inputs are viewed by the fully-connected layer.
func flattenCdr(dims []int) (first, rest int) {
	if len(dims) == 0 {
		Panicf("cannot flatten a scalar shape")
	}
	first = dims[0]
	rest = 1
	for _, d := range dims[1:] {
		rest *= d
	}
	return
}

// sameShapeExceptAxis reports whether t1 and t2 share element type and every
// dimension except the given axis.
func sameShapeExceptAxis(t1, t2 TypeRef, axis int) bool {
	if !t1.SameElementType(*t2) {
		return false
	}
	if t1.Rank() != t2.Rank() {
		return false
	}
	for ii := 0; ii < t1.Rank(); ii++ {
		if ii == axis {
			continue
		}
		if t1.Dims[ii] != t2.Dims[ii] {
			return false
		}
	}
	return true
}
