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

package graph

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"

	"github.com/cx-yin/glow/types/elements"
)

// NodeKind identifies the operation performed by a node. The set is closed:
// erasure and verification dispatch over it exhaustively.
type NodeKind int32

//go:generate go tool enumer -type=NodeKind -trimprefix=Kind -output=gen_nodekind_enumer.go node.go

const (
	KindInvalid NodeKind = iota
	KindConvolution
	KindPoolMax
	KindPoolAvg
	KindFullyConnected
	KindRelu
	KindSigmoid
	KindTanh
	KindSoftMax
	KindCrossEntropyLoss
	KindRegression
	KindReshape
	KindTranspose
	KindBroadcast
	KindConcat
	KindSlice
	KindBatchNormalization
	KindLocalResponseNormalization
	KindAdd
	KindMul
	KindSub
	KindDiv
	KindMax
	KindMin
	KindCmpLTE
	KindPow
	KindSelect
	KindSplat
	KindMatMul
	KindBatchedReduceAdd
	KindBatchedAdd
	KindSave
	KindTopK
	KindGather
	KindQuantize
	KindDequantize
	KindRescaleQuantized
	KindQuantizationProfile
)

// NodeAttrs holds the kind tag and the kind-specific immutable parameters of
// a node (kernel size, stride, axis, ...). Implementations are the
// unexported *Attrs structs in the ops_*.go files.
type NodeAttrs interface {
	Kind() NodeKind

	// String prints the parameters only; it returns "" for parameter-less
	// kinds.
	String() string
}

// Source is the producer side of a NodeValue: either a *Node or a
// *Variable. It exposes the ordered output slots an edge can refer to.
type Source interface {
	Name() string
	NumOutputs() int
	OutputType(resNo int) TypeRef
	OutputName(resNo int) string

	// DebugDesc returns a single-line description of the producer, used in
	// diagnostics.
	DebugDesc() string
}

// NodeValue is a typed edge endpoint: a reference to a producing Node or
// Variable plus a result-slot index. It never owns what it references.
type NodeValue struct {
	source Source
	resNo  int
}

// Result returns the NodeValue for the resNo-th output slot of src. It
// panics if resNo is out of range.
func Result(src Source, resNo int) NodeValue {
	if src == nil {
		exceptions.Panicf("graph.Result: source is nil")
	}
	if resNo < 0 || resNo >= src.NumOutputs() {
		exceptions.Panicf("graph.Result(%q, %d): source has %d output slots", src.Name(), resNo, src.NumOutputs())
	}
	return NodeValue{source: src, resNo: resNo}
}

// Source returns the producing Node or Variable.
func (nv NodeValue) Source() Source { return nv.source }

// ResNo returns the result-slot index within the producer.
func (nv NodeValue) ResNo() int { return nv.resNo }

// IsValid reports whether the edge points at a producer.
func (nv NodeValue) IsValid() bool { return nv.source != nil }

// Type returns the interned type of the referenced output slot.
func (nv NodeValue) Type() TypeRef {
	if nv.source == nil {
		exceptions.Panicf("NodeValue.Type() on an invalid (zero) NodeValue")
	}
	return nv.source.OutputType(nv.resNo)
}

// Dims returns the dimensions of the referenced output slot.
func (nv NodeValue) Dims() []int { return nv.Type().Dims }

// ElemKind returns the element kind of the referenced output slot.
func (nv NodeValue) ElemKind() elements.ElemKind { return nv.Type().Kind }

// String implements fmt.Stringer.
func (nv NodeValue) String() string {
	if nv.source == nil {
		return "NodeValue(nil)"
	}
	return fmt.Sprintf("%s:%s", nv.source.Name(), nv.source.OutputName(nv.resNo))
}

// Node is one operator instance in a computation graph. It is created by a
// Function builder method, which fixes its kind, parameters, input edges and
// output types; none of those mutate afterwards. Its name is uniqued by the
// owning Module when the node is added to a Function.
type Node struct {
	fn    *Function
	name  string
	attrs NodeAttrs

	inputs      []NodeValue
	inputNames  []string
	outputs     []TypeRef
	outputNames []string
}

// Name of the node, unique within its function.
func (n *Node) Name() string { return n.name }

// Kind tag of the node's operation.
func (n *Node) Kind() NodeKind {
	if n == nil || n.attrs == nil {
		return KindInvalid
	}
	return n.attrs.Kind()
}

// Function that owns this node, nil until the node is added to one.
func (n *Node) Function() *Function { return n.fn }

// Attrs returns the kind-specific parameters of the node.
func (n *Node) Attrs() NodeAttrs { return n.attrs }

// NumInputs returns the number of input slots.
func (n *Node) NumInputs() int { return len(n.inputs) }

// Input returns the edge held by the idx-th input slot.
func (n *Node) Input(idx int) NodeValue { return n.inputs[idx] }

// InputName returns the name of the idx-th input slot.
func (n *Node) InputName(idx int) string { return n.inputNames[idx] }

// NumOutputs returns the number of output slots. Part of the Source
// interface.
func (n *Node) NumOutputs() int { return len(n.outputs) }

// OutputType returns the interned type of the resNo-th output slot. Part of
// the Source interface.
func (n *Node) OutputType(resNo int) TypeRef { return n.outputs[resNo] }

// OutputName returns the name of the resNo-th output slot. Part of the
// Source interface.
func (n *Node) OutputName(resNo int) string { return n.outputNames[resNo] }

// Value returns the NodeValue for the node's first output slot, the common
// case for single-output nodes. Use Result for the others.
func (n *Node) Value() NodeValue { return Result(n, 0) }

// Type returns the interned type of the first output slot. It panics for
// nodes without outputs (e.g. Save).
func (n *Node) Type() TypeRef {
	if len(n.outputs) == 0 {
		exceptions.Panicf("node %s has no output slots", n.DebugDesc())
	}
	return n.outputs[0]
}

// Dims returns the dimensions of the first output slot.
func (n *Node) Dims() []int { return n.Type().Dims }

// AssertValid panics if n is nil or was never added to a function.
func (n *Node) AssertValid() {
	if n == nil {
		exceptions.Panicf("graph.Node is nil")
	}
	if n.attrs == nil || n.fn == nil {
		exceptions.Panicf("graph.Node %q is in an invalid state", n.name)
	}
}

// DebugDesc returns a single-line description of the node: name, kind,
// parameters, input edges and output types. Part of the Source interface.
func (n *Node) DebugDesc() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%s", n.name, n.Kind())
	if n.attrs != nil {
		if params := n.attrs.String(); params != "" {
			fmt.Fprintf(&b, " {%s}", params)
		}
	}
	b.WriteString(")")
	if len(n.inputs) > 0 {
		parts := make([]string, 0, len(n.inputs))
		for ii, in := range n.inputs {
			parts = append(parts, fmt.Sprintf("%s=%s", n.inputNames[ii], in))
		}
		fmt.Fprintf(&b, " in=[%s]", strings.Join(parts, ", "))
	}
	if len(n.outputs) > 0 {
		parts := make([]string, 0, len(n.outputs))
		for ii, out := range n.outputs {
			parts = append(parts, fmt.Sprintf("%s:%s", n.outputNames[ii], out))
		}
		fmt.Fprintf(&b, " out=[%s]", strings.Join(parts, ", "))
	}
	return b.String()
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	if n == nil {
		return "Node(nil)"
	}
	return n.DebugDesc()
}

// verifyLocal checks the node's kind-specific local well-formedness: the
// operand count matches the declared input slots and the kind carries the
// attrs struct its builder installs. Called by Function.Verify.
func (n *Node) verifyLocal() {
	if len(n.inputs) != len(n.inputNames) || len(n.outputs) != len(n.outputNames) {
		n.failVerify("input/output slot names out of sync with slots")
	}
	for _, in := range n.inputs {
		if !in.IsValid() {
			n.failVerify("node has an unset input edge")
		}
	}
	arity, outputs := kindArity(n.Kind())
	if arity >= 0 && len(n.inputs) != arity {
		n.failVerify("kind %s expects %d operands, node has %d", n.Kind(), arity, len(n.inputs))
	}
	if outputs >= 0 && len(n.outputs) != outputs {
		n.failVerify("kind %s expects %d output slots, node has %d", n.Kind(), outputs, len(n.outputs))
	}
}

// kindArity returns the declared operand and output-slot counts for a node
// kind; -1 means variadic (Concat).
func kindArity(kind NodeKind) (inputs, outputs int) {
	switch kind {
	case KindConvolution:
		return 3, 1
	case KindPoolMax, KindPoolAvg:
		return 1, 1
	case KindFullyConnected:
		return 3, 1
	case KindRelu, KindSigmoid, KindTanh:
		return 1, 1
	case KindSoftMax, KindCrossEntropyLoss, KindRegression:
		return 2, 1
	case KindReshape, KindTranspose, KindBroadcast, KindSlice:
		return 1, 1
	case KindConcat:
		return -1, 1
	case KindBatchNormalization:
		return 5, 1
	case KindLocalResponseNormalization:
		return 2, 1
	case KindAdd, KindMul, KindSub, KindDiv, KindMax, KindMin, KindCmpLTE:
		return 2, 1
	case KindPow:
		return 1, 1
	case KindSelect:
		return 3, 1
	case KindSplat:
		return 0, 1
	case KindMatMul, KindBatchedAdd:
		return 2, 1
	case KindBatchedReduceAdd:
		return 1, 1
	case KindSave:
		return 2, 0
	case KindTopK:
		return 1, 2
	case KindGather:
		return 2, 1
	case KindQuantize, KindDequantize, KindRescaleQuantized:
		return 1, 1
	case KindQuantizationProfile:
		return 3, 0
	case KindInvalid:
		// Fallthrough to the panic below.
	}
	exceptions.Panicf("unhandled node kind %s", kind)
	return 0, 0
}

// failVerify reports a node-local verification failure.
func (n *Node) failVerify(format string, args ...any) {
	exceptions.Panicf("node %s failed verification: %s", n.DebugDesc(), fmt.Sprintf(format, args...))
}
