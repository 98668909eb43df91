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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cx-yin/glow/types/elements"
)

// buildSmallNet builds input -> conv -> relu -> save, a graph touching
// nodes, auto-allocated variables and a multi-function-safe save.
func buildSmallNet(m *Module) *Function {
	f := m.NewFunction("main")
	in := m.NewVariableOf(elements.Float32, []int{1, 8, 8, 3}, "input", VisibilityPublic, TrainNone, 0)
	conv := f.NewConv("conv", in.Value(), 4, 3, 1, 0)
	relu := f.NewRelu("relu", conv.Value())
	f.NewSave("out", relu.Value())
	return f
}

func TestVerifyCleanGraph(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := buildSmallNet(m)
	require.NotPanics(t, func() { f.Verify() })
	require.NotPanics(t, func() { m.Verify() })
}

func TestVerifyDuplicateNodeName(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := buildSmallNet(m)

	// The builders unique every name, so the collision has to be injected.
	f.nodes[1].name = f.nodes[0].name
	require.Panics(t, func() { f.Verify() })
}

func TestVerifyDuplicateVariableName(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := buildSmallNet(m)

	m.variables[1].name = m.variables[0].name
	require.Panics(t, func() { f.Verify() })
}

func TestVerifyNodeVariableNameClash(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := buildSmallNet(m)

	// Node and variable names share one namespace during verification.
	f.nodes[0].name = m.variables[0].name
	require.Panics(t, func() { f.Verify() })
}

func TestVerifyDanglingVariableEdge(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := buildSmallNet(m)

	// Erase the filter variable while the conv node still references it.
	filter := f.nodes[0].Input(1).Source().(*Variable)
	m.EraseVariable(filter)
	require.Panics(t, func() { f.Verify() })
}

func TestVerifyDanglingNodeEdge(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := buildSmallNet(m)

	// Erase the conv node while the relu still consumes its value. Splice it
	// out directly: EraseNode would destroy the node and the edge with it.
	conv := f.nodes[0]
	f.nodes = f.nodes[1:]
	require.Equal(t, conv, f.Nodes()[0].Input(0).Source())
	require.Panics(t, func() { f.Verify() })
}

func TestVerifyForeignFunctionEdge(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := buildSmallNet(m)
	other := m.NewFunction("other")

	// Move the relu into another function; its input edge still points at
	// the conv node of the original function.
	relu := f.nodes[1]
	f.nodes = append(f.nodes[:1], f.nodes[2:]...)
	relu.fn = other
	other.nodes = append(other.nodes, relu)
	require.Panics(t, func() { other.Verify() })
}

func TestVerifyArity(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := buildSmallNet(m)

	relu := f.nodes[1]
	relu.inputs = append(relu.inputs, relu.inputs[0])
	relu.inputNames = append(relu.inputNames, "Extra")
	require.Panics(t, func() { f.Verify() })
}

func TestVerifyErasedFunction(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := buildSmallNet(m)
	m.EraseFunction(f)
	require.Panics(t, func() { f.Verify() })
}
