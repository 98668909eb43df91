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
)

func TestClone(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := buildSmallNet(m)
	nVars := len(m.Variables())

	clone := f.Clone("cloned")
	require.Same(t, clone, m.GetFunction("cloned"))
	require.Equal(t, f.NumNodes(), clone.NumNodes())

	// No variable was duplicated.
	require.Len(t, m.Variables(), nVars)

	for ii, orig := range f.Nodes() {
		cp := clone.Nodes()[ii]
		require.NotSame(t, orig, cp)
		require.Equal(t, orig.Kind(), cp.Kind())
		require.Same(t, orig.Attrs(), cp.Attrs())
		require.Equal(t, orig.NumInputs(), cp.NumInputs())
		require.Equal(t, orig.NumOutputs(), cp.NumOutputs())
		for oi := 0; oi < orig.NumOutputs(); oi++ {
			require.Same(t, orig.OutputType(oi), cp.OutputType(oi))
		}
		for in := 0; in < orig.NumInputs(); in++ {
			origSrc := orig.Input(in).Source()
			cpSrc := cp.Input(in).Source()
			require.Equal(t, orig.Input(in).ResNo(), cp.Input(in).ResNo())
			switch origSrc.(type) {
			case *Variable:
				// Variable edges keep referencing the same variable.
				require.Same(t, origSrc, cpSrc)
			case *Node:
				// Node edges are remapped into the clone.
				require.NotSame(t, origSrc, cpSrc)
				require.Same(t, clone, cpSrc.(*Node).Function())
			}
		}
	}

	// Both functions verify independently.
	f.Verify()
	clone.Verify()

	// Mutating the clone leaves the original untouched.
	clone.EraseNode(clone.Nodes()[clone.NumNodes()-1])
	require.Equal(t, 3, f.NumNodes())
	require.Equal(t, 2, clone.NumNodes())
	f.Verify()
}

func TestCloneWithMapping(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := buildSmallNet(m)

	mapping := make(map[*Node]*Node)
	clone := f.CloneWithMapping("cloned", mapping)
	require.Len(t, mapping, f.NumNodes())
	for ii, orig := range f.Nodes() {
		require.Same(t, clone.Nodes()[ii], mapping[orig])
	}

	require.Panics(t, func() { f.CloneWithMapping("again", nil) })
	require.Panics(t, func() { f.CloneWithMapping("again", mapping) })
}

func TestCloneNameCollision(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := buildSmallNet(m)
	require.Panics(t, func() { f.Clone(f.Name()) })
}
