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
	"k8s.io/klog/v2"
)

// Function owns an ordered list of nodes forming one computation graph.
// Variables are never part of the list: they belong to the module and are
// only referenced by edges. Every edge of every node resolves either to
// another node in the same function or to a variable of the function's
// module -- Verify enforces it.
type Function struct {
	module *Module
	name   string
	nodes  []*Node
}

// Name of the function, unique within its module.
func (f *Function) Name() string { return f.name }

// Module that owns the function.
func (f *Function) Module() *Module { return f.module }

// Nodes returns the function's nodes in creation order. The slice is the
// function's own storage; callers must not mutate it.
func (f *Function) Nodes() []*Node { return f.nodes }

// NumNodes returns the number of nodes in the function.
func (f *Function) NumNodes() int { return len(f.nodes) }

// AssertValid panics if f is nil or was erased from its module.
func (f *Function) AssertValid() {
	if f == nil {
		exceptions.Panicf("graph.Function is nil")
	}
	if f.module == nil {
		exceptions.Panicf("graph.Function %q was erased from its module", f.name)
	}
}

// AddNode appends n to the function's node list, transferring ownership.
// The node's name is uniqued through the module's counter. There is no
// deduplication. Returns n for chaining.
func (f *Function) AddNode(n *Node) *Node {
	if n == nil || n.attrs == nil {
		exceptions.Panicf("AddNode: node is nil or has no kind")
	}
	if n.fn != nil {
		exceptions.Panicf("AddNode: node %s is already owned by function %q", n.DebugDesc(), n.fn.name)
	}
	n.fn = f
	n.name = f.module.UniqueName(n.name)
	f.nodes = append(f.nodes, n)
	return n
}

// newNode builds a node from the builder-provided pieces and appends it.
func (f *Function) newNode(name string, attrs NodeAttrs, inputs []NodeValue, inputNames []string, outputs []TypeRef, outputNames []string) *Node {
	return f.AddNode(&Node{
		name:        name,
		attrs:       attrs,
		inputs:      inputs,
		inputNames:  inputNames,
		outputs:     outputs,
		outputNames: outputNames,
	})
}

// validateInputs panics unless every given edge resolves to a node of this
// function or a variable of this function's module. Builders call it before
// mutating anything.
func (f *Function) validateInputs(inputs ...NodeValue) {
	f.AssertValid()
	for ii, in := range inputs {
		if !in.IsValid() {
			exceptions.Panicf("operand %d passed to a %q builder is invalid (zero NodeValue)", ii, f.name)
		}
		switch src := in.Source().(type) {
		case *Node:
			if src.fn != f {
				exceptions.Panicf("operand %d (%s) belongs to a different function than %q", ii, src.DebugDesc(), f.name)
			}
		case *Variable:
			if src.module != f.module {
				exceptions.Panicf("operand %d (%s) belongs to a different module than function %q", ii, src.DebugDesc(), f.name)
			}
		default:
			exceptions.Panicf("operand %d passed to a %q builder has unknown source type %T", ii, f.name, in.Source())
		}
	}
}

// EraseNode removes src from the function and destroys it. A Variable
// target is delegated to the module's EraseVariable -- variables are never
// stored in the function's own list. For nodes, destruction dispatches on
// the kind tag and the node is removed from the list; it panics if the node
// is not owned by this function.
//
// Erasure does not rewrite edges: remaining references to the erased entity
// are the caller's bug, detected by Verify.
func (f *Function) EraseNode(src Source) {
	f.AssertValid()
	n, ok := src.(*Node)
	if !ok {
		v, isVar := src.(*Variable)
		if !isVar {
			exceptions.Panicf("EraseNode: unknown source type %T", src)
		}
		f.module.EraseVariable(v)
		return
	}
	if n.fn != f {
		exceptions.Panicf("EraseNode: could not find node %s in function %q", n.DebugDesc(), f.name)
	}
	for ii, cur := range f.nodes {
		if cur == n {
			klog.V(2).Infof("erasing node %s from function %q", n.DebugDesc(), f.name)
			n.destroy()
			f.nodes = append(f.nodes[:ii], f.nodes[ii+1:]...)
			return
		}
	}
	exceptions.Panicf("EraseNode: could not find node %s in function %q", n.DebugDesc(), f.name)
}

// destroy releases a node's edges and parameters, dispatching on the kind
// tag. The switch is exhaustive over the closed kind set; a kind missing
// here is a bug.
func (n *Node) destroy() {
	switch n.Kind() {
	case KindConvolution, KindPoolMax, KindPoolAvg, KindFullyConnected,
		KindRelu, KindSigmoid, KindTanh, KindSoftMax, KindCrossEntropyLoss,
		KindRegression, KindReshape, KindTranspose, KindBroadcast, KindConcat,
		KindSlice, KindBatchNormalization, KindLocalResponseNormalization,
		KindAdd, KindMul, KindSub, KindDiv, KindMax, KindMin, KindCmpLTE,
		KindPow, KindSelect, KindSplat, KindMatMul, KindBatchedReduceAdd,
		KindBatchedAdd, KindSave, KindTopK, KindGather, KindQuantize,
		KindDequantize, KindRescaleQuantized, KindQuantizationProfile:
		n.inputs = nil
		n.inputNames = nil
		n.outputs = nil
		n.outputNames = nil
		n.attrs = nil
		n.fn = nil
	default:
		exceptions.Panicf("unhandled node kind %s in EraseNode", n.Kind())
	}
}

// Clone produces a structurally isomorphic copy of the function, registered
// in the same module under newName. Edges between nodes are remapped to the
// cloned nodes; edges from variables keep referencing the same variables --
// variables are shared, never duplicated.
func (f *Function) Clone(newName string) *Function {
	return f.clone(newName, nil)
}

// CloneWithMapping is Clone, but additionally populates mapping with the
// old-node to new-node correspondence. mapping must be empty on entry.
func (f *Function) CloneWithMapping(newName string, mapping map[*Node]*Node) *Function {
	if mapping == nil {
		exceptions.Panicf("CloneWithMapping: mapping is nil, use Clone")
	}
	if len(mapping) != 0 {
		exceptions.Panicf("CloneWithMapping: mapping must be empty on entry, has %d entries", len(mapping))
	}
	return f.clone(newName, mapping)
}

func (f *Function) clone(newName string, mapping map[*Node]*Node) *Function {
	f.AssertValid()
	newF := f.module.NewFunction(newName)

	// Shallow-clone every node: kind, name, parameters and output types are
	// copied, input edges still point into the source function.
	currToNew := make(map[*Node]*Node, len(f.nodes))
	for _, n := range f.nodes {
		cp := &Node{
			name:        n.name,
			attrs:       n.attrs,
			inputs:      append([]NodeValue(nil), n.inputs...),
			inputNames:  append([]string(nil), n.inputNames...),
			outputs:     append([]TypeRef(nil), n.outputs...),
			outputNames: append([]string(nil), n.outputNames...),
		}
		currToNew[n] = cp
		newF.AddNode(cp)
	}

	// Rewrite the cloned edges to point at the cloned producers. Edges from
	// variables are left untouched.
	for _, n := range newF.nodes {
		for ii := range n.inputs {
			src, isNode := n.inputs[ii].source.(*Node)
			if !isNode {
				continue
			}
			mapped, found := currToNew[src]
			if !found {
				exceptions.Panicf("clone of function %q: input %s of node %s does not resolve inside the function",
					f.name, n.inputs[ii], n.DebugDesc())
			}
			n.inputs[ii].source = mapped
		}
	}

	if mapping != nil {
		for old, cp := range currToNew {
			mapping[old] = cp
		}
	}
	if len(newF.nodes) != len(f.nodes) {
		exceptions.Panicf("clone of function %q produced %d nodes, source has %d", f.name, len(newF.nodes), len(f.nodes))
	}
	klog.V(2).Infof("cloned function %q into %q (%d nodes)", f.name, newName, len(newF.nodes))
	return newF
}

// String dumps the graph structure, one node per line.
func (f *Function) String() string {
	parts := []string{fmt.Sprintf("Graph structure %s:", f.name)}
	for _, n := range f.nodes {
		parts = append(parts, n.DebugDesc())
	}
	return strings.Join(parts, "\n")
}
