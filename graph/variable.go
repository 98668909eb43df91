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

	"github.com/gomlx/exceptions"

	"github.com/cx-yin/glow/types/tensor"
)

// VisibilityKind classifies a Variable as externally observable (a model
// input or output) or internal state.
type VisibilityKind int32

//go:generate go tool enumer -type=VisibilityKind -trimprefix=Visibility -output=gen_visibilitykind_enumer.go variable.go

const (
	VisibilityPublic VisibilityKind = iota
	VisibilityPrivate
)

// TrainKind is the initialization policy applied to a Variable's payload
// when the Variable is created.
type TrainKind int32

//go:generate go tool enumer -type=TrainKind -trimprefix=Train -output=gen_trainkind_enumer.go variable.go

const (
	// TrainNone leaves the payload as allocated (zeroed).
	TrainNone TrainKind = iota
	// TrainXavier fills the payload with fan-in-scaled uniform random
	// values; the init parameter is the fan-in count.
	TrainXavier
	// TrainBroadcast fills the payload with one constant; the init
	// parameter is the constant.
	TrainBroadcast
)

// Variable is a Module-owned persistent tensor, shared by reference across
// the module's functions: mutation of the payload is visible to every
// function referencing it. Variables are never stored in a Function's node
// list; they participate in graphs only as edge producers.
type Variable struct {
	module     *Module
	name       string
	typ        TypeRef
	visibility VisibilityKind
	train      TrainKind
	initValue  float64

	payload *tensor.Tensor
}

// Name of the variable, unique within its module.
func (v *Variable) Name() string { return v.name }

// Module that owns the variable.
func (v *Variable) Module() *Module {
	v.AssertValid()
	return v.module
}

// Type returns the interned type of the variable.
func (v *Variable) Type() TypeRef {
	v.AssertValid()
	return v.typ
}

// Visibility returns whether the variable is externally observable.
func (v *Variable) Visibility() VisibilityKind {
	v.AssertValid()
	return v.visibility
}

// Train returns the initialization policy applied at creation.
func (v *Variable) Train() TrainKind {
	v.AssertValid()
	return v.train
}

// InitValue returns the initialization parameter: the fan-in for
// TrainXavier, the broadcast constant for TrainBroadcast, 0 otherwise.
func (v *Variable) InitValue() float64 {
	v.AssertValid()
	return v.initValue
}

// Payload returns the tensor owned by the variable. The caller may mutate
// its contents; the change is visible to every function referencing the
// variable.
func (v *Variable) Payload() *tensor.Tensor {
	v.AssertValid()
	return v.payload
}

// Value returns the NodeValue referencing the variable's single output
// slot.
func (v *Variable) Value() NodeValue { return Result(v, 0) }

// AssertValid panics if v is nil or was erased from its module.
func (v *Variable) AssertValid() {
	if v == nil {
		exceptions.Panicf("graph.Variable is nil")
	}
	if v.module == nil {
		exceptions.Panicf("graph.Variable %q was erased from its module", v.name)
	}
}

// NumOutputs returns 1: a variable produces exactly one value. Part of the
// Source interface.
func (v *Variable) NumOutputs() int { return 1 }

// OutputType returns the variable's type. Part of the Source interface.
func (v *Variable) OutputType(resNo int) TypeRef {
	if resNo != 0 {
		exceptions.Panicf("Variable %q has a single output slot, requested slot %d", v.name, resNo)
	}
	return v.typ
}

// OutputName returns the name of the variable's single output slot. Part of
// the Source interface.
func (v *Variable) OutputName(resNo int) string {
	if resNo != 0 {
		exceptions.Panicf("Variable %q has a single output slot, requested slot %d", v.name, resNo)
	}
	return "Output"
}

// DebugDesc returns a single-line description of the variable. Part of the
// Source interface.
func (v *Variable) DebugDesc() string {
	desc := fmt.Sprintf("%s(Variable %s %s", v.name, v.typ, v.visibility)
	switch v.train {
	case TrainNone:
		desc += " init=none"
	case TrainXavier:
		desc += fmt.Sprintf(" init=xavier(fanIn=%g)", v.initValue)
	case TrainBroadcast:
		desc += fmt.Sprintf(" init=broadcast(%g)", v.initValue)
	}
	return desc + ")"
}

// String implements fmt.Stringer.
func (v *Variable) String() string {
	if v == nil {
		return "Variable(nil)"
	}
	return v.DebugDesc()
}
