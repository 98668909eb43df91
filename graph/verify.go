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
	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"
)

// Verify checks the structural invariants of the function against its
// module, in order:
//
//  1. no two variables in the module share a name;
//  2. no two nodes in the function share a name;
//  3. every input edge of every node resolves to a node present in this
//     function or a variable present in the module;
//  4. each node's kind-specific local well-formedness (operand count
//     matches the declared input slots).
//
// Verification halts at the first violation and panics with the conflicting
// entities, after logging the function dump: this is a development-time
// invariant check, never a recoverable condition. A graph built exclusively
// through the builder methods always passes; a failure means some later
// mutation (typically an erase without rewiring) broke the graph.
func (f *Function) Verify() {
	f.AssertValid()
	m := f.module

	nameToDesc := make(map[string]string, len(m.variables)+len(f.nodes))
	for _, v := range m.variables {
		if prev, found := nameToDesc[v.name]; found {
			f.failVerification("the variable named %q conflicts with a previous definition:\ncurrent: %s\nprevious: %s",
				v.name, v.DebugDesc(), prev)
		}
		nameToDesc[v.name] = v.DebugDesc()
	}

	for _, n := range f.nodes {
		if prev, found := nameToDesc[n.name]; found {
			f.failVerification("the node named %q conflicts with a previous definition:\ncurrent: %s\nprevious: %s",
				n.name, n.DebugDesc(), prev)
		}
		nameToDesc[n.name] = n.DebugDesc()
	}

	// Membership sets for edge resolution.
	inFunction := make(map[*Node]bool, len(f.nodes))
	for _, n := range f.nodes {
		inFunction[n] = true
	}
	inModule := make(map[*Variable]bool, len(m.variables))
	for _, v := range m.variables {
		inModule[v] = true
	}
	for _, n := range f.nodes {
		for ii, in := range n.inputs {
			switch src := in.Source().(type) {
			case *Node:
				if !inFunction[src] {
					f.failVerification("input %s (slot %q) of node %s references node %s, which is not part of function %q",
						in, n.inputNames[ii], n.DebugDesc(), src.DebugDesc(), f.name)
				}
			case *Variable:
				if !inModule[src] {
					f.failVerification("input %s (slot %q) of node %s references variable %s, which is not part of the module",
						in, n.inputNames[ii], n.DebugDesc(), src.DebugDesc())
				}
			default:
				f.failVerification("input %d of node %s has no producer", ii, n.DebugDesc())
			}
		}
	}

	for _, n := range f.nodes {
		n.verifyLocal()
	}
}

// failVerification logs the function dump and panics with the diagnostic.
func (f *Function) failVerification(format string, args ...any) {
	klog.Errorf("verification of function %q failed, structure dump:\n%s", f.name, f)
	exceptions.Panicf("function %q failed verification: "+format, append([]any{f.name}, args...)...)
}
