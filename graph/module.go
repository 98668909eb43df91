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
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"

	"github.com/cx-yin/glow/types/elements"
	"github.com/cx-yin/glow/types/tensor"
)

// Module owns one model's worth of IR: the type arena, the Variables
// (persistent tensors shared across functions), the Functions, and the
// counter that uniques names. Function and Variable names are unique within
// a Module.
//
// A Module provides no internal synchronization; concurrent mutation must
// be serialized by the caller.
type Module struct {
	types     []*elements.Type
	functions []*Function
	variables []*Variable

	uniqueIdx int
	rng       *rand.Rand
}

// NoSeed requests a clock-derived seed for the module's random number
// generator (used by fan-in-scaled variable initialization).
const NoSeed = int64(0)

// NewModule returns an empty module with a clock-seeded random number
// generator.
func NewModule() *Module { return NewModuleWithSeed(NoSeed) }

// NewModuleWithSeed returns an empty module whose random variable
// initialization is driven by the given seed, for reproducible graphs. A
// seed of NoSeed picks one from the clock.
func NewModuleWithSeed(seed int64) *Module {
	if seed == NoSeed {
		seed = time.Now().UnixNano()
	}
	return &Module{rng: rand.New(rand.NewSource(seed))}
}

// UniqueType interns t in the module's type arena and returns its stable
// handle: for any two structurally-equal types the identical handle is
// returned, so type equality elsewhere is handle identity.
//
// The arena is a linear scan on purpose: the number of distinct types in a
// graph is small relative to the node count, and uniquing buys O(1)
// equality everywhere else.
func (m *Module) UniqueType(t elements.Type) TypeRef {
	for _, tp := range m.types {
		if tp.Equal(t) {
			return tp
		}
	}
	interned := t
	interned.Dims = append([]int(nil), t.Dims...)
	m.types = append(m.types, &interned)
	return &interned
}

// UniqueTypeOf interns the type with the given non-quantized element kind
// and dimensions.
func (m *Module) UniqueTypeOf(kind elements.ElemKind, dims ...int) TypeRef {
	return m.UniqueType(elements.NewType(kind, dims...))
}

// UniqueQuantizedType interns the type with the given quantized element
// kind, quantization parameters and dimensions.
func (m *Module) UniqueQuantizedType(kind elements.ElemKind, scale float32, offset int32, dims ...int) TypeRef {
	return m.UniqueType(elements.NewQuantizedType(kind, scale, offset, dims...))
}

// UniqueTypeWithNewShape interns a type with the same element kind (and, if
// quantized, the same scale and offset) as t but new dimensions.
func (m *Module) UniqueTypeWithNewShape(t TypeRef, dims ...int) TypeRef {
	return m.UniqueType(t.WithDims(dims...))
}

// VoidType returns the canonical empty type.
func (m *Module) VoidType() TypeRef {
	return m.UniqueType(elements.VoidType())
}

// NumTypes returns the number of distinct types interned so far.
func (m *Module) NumTypes() int { return len(m.types) }

// UniqueName forms a unique name from the given prefix: everything from the
// first occurrence of the "__" delimiter onwards is stripped, and the
// module's counter value is appended after a fresh "__".
//
// "__" is the only uniquing delimiter, so caller-supplied prefixes must not
// contain it; auto-generated pieces of a name must be added before the
// delimiter, never after, or they get stripped here.
func (m *Module) UniqueName(name string) string {
	if delimPos := strings.Index(name, "__"); delimPos >= 0 {
		name = name[:delimPos]
	}
	unique := name + "__" + strconv.Itoa(m.uniqueIdx)
	m.uniqueIdx++
	return unique
}

// NewFunction constructs and registers an empty function owned by the
// module. It panics if a function with that name already exists.
func (m *Module) NewFunction(name string) *Function {
	if m.HasFunction(name) {
		exceptions.Panicf("a function named %q already exists in the module", name)
	}
	f := &Function{module: m, name: name}
	m.functions = append(m.functions, f)
	return f
}

// HasFunction reports whether a function with the given name exists.
func (m *Module) HasFunction(name string) bool { return m.GetFunction(name) != nil }

// GetFunction returns the function with the given name, or nil.
func (m *Module) GetFunction(name string) *Function {
	for _, f := range m.functions {
		if f.name == name {
			return f
		}
	}
	return nil
}

// Functions returns the module's functions in creation order.
func (m *Module) Functions() []*Function { return m.functions }

// NewVariable constructs a variable with the given type and initialization
// policy, allocates and initializes its payload, and registers it. The name
// is uniqued through UniqueName. The meaning of initValue depends on train:
// the fan-in for TrainXavier, the broadcast constant for TrainBroadcast,
// ignored for TrainNone.
func (m *Module) NewVariable(t TypeRef, name string, visibility VisibilityKind, train TrainKind, initValue float64) *Variable {
	typ := m.UniqueType(*t)
	v := &Variable{
		module:     m,
		name:       m.UniqueName(name),
		typ:        typ,
		visibility: visibility,
		train:      train,
		initValue:  initValue,
		payload:    tensor.FromType(*typ),
	}
	switch train {
	case TrainNone:
		// Payload left as allocated.
	case TrainXavier:
		v.payload.InitXavier(m.rng, int(initValue))
	case TrainBroadcast:
		v.payload.Fill(initValue)
	default:
		exceptions.Panicf("NewVariable(%q): unknown train kind %d", name, train)
	}
	m.variables = append(m.variables, v)
	return v
}

// NewVariableOf is a shortcut for NewVariable with a freshly interned
// non-quantized type.
func (m *Module) NewVariableOf(kind elements.ElemKind, dims []int, name string, visibility VisibilityKind, train TrainKind, initValue float64) *Variable {
	return m.NewVariable(m.UniqueTypeOf(kind, dims...), name, visibility, train, initValue)
}

// NewQuantizedVariable is a shortcut for NewVariable with a freshly
// interned quantized type.
func (m *Module) NewQuantizedVariable(kind elements.ElemKind, dims []int, scale float32, offset int32, name string, visibility VisibilityKind, train TrainKind, initValue float64) *Variable {
	return m.NewVariable(m.UniqueQuantizedType(kind, scale, offset, dims...), name, visibility, train, initValue)
}

// VariableByName returns the variable with the given (uniqued) name, or
// nil.
func (m *Module) VariableByName(name string) *Variable {
	for _, v := range m.variables {
		if v.name == name {
			return v
		}
	}
	return nil
}

// Variables returns the module's variables in creation order.
func (m *Module) Variables() []*Variable { return m.variables }

// hasVariable reports whether v is currently registered in the module.
func (m *Module) hasVariable(v *Variable) bool {
	for _, cur := range m.variables {
		if cur == v {
			return true
		}
	}
	return false
}

// EraseVariable removes v from the module and destroys it. It does NOT
// check that the module's functions no longer reference v: that is the
// caller's responsibility, and a stale edge is caught later by
// Function.Verify, not here. It panics if v is not owned by the module.
func (m *Module) EraseVariable(v *Variable) {
	v.AssertValid()
	if v.module != m {
		exceptions.Panicf("EraseVariable: variable %s belongs to a different module", v.DebugDesc())
	}
	for ii, cur := range m.variables {
		if cur == v {
			klog.V(2).Infof("erasing variable %s", v.DebugDesc())
			m.variables = append(m.variables[:ii], m.variables[ii+1:]...)
			v.module = nil
			v.payload = nil
			return
		}
	}
	exceptions.Panicf("EraseVariable: could not find variable %s in the module", v.DebugDesc())
}

// EraseFunction removes f from the module, erasing all of its nodes. The
// module's variables are untouched.
func (m *Module) EraseFunction(f *Function) {
	f.AssertValid()
	if f.module != m {
		exceptions.Panicf("EraseFunction: function %q belongs to a different module", f.name)
	}
	for ii, cur := range m.functions {
		if cur == f {
			klog.V(2).Infof("erasing function %q (%d nodes)", f.name, len(f.nodes))
			for len(f.nodes) > 0 {
				f.EraseNode(f.nodes[len(f.nodes)-1])
			}
			m.functions = append(m.functions[:ii], m.functions[ii+1:]...)
			f.module = nil
			return
		}
	}
	exceptions.Panicf("EraseFunction: could not find function %q in the module", f.name)
}

// Verify checks the structural invariants of every function in the module.
// Any violation is fatal.
func (m *Module) Verify() {
	for _, f := range m.functions {
		f.Verify()
	}
}

// String dumps the module structure: variables, then functions.
func (m *Module) String() string {
	parts := []string{"Module structure:"}
	for _, v := range m.variables {
		parts = append(parts, v.DebugDesc())
	}
	for _, f := range m.functions {
		parts = append(parts, fmt.Sprintf("Function %s: %d nodes", f.name, len(f.nodes)))
	}
	return strings.Join(parts, "\n")
}
