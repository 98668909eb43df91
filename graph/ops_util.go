package graph

import (
	. "github.com/gomlx/exceptions"
)

type saveAttrs struct{}

func (a *saveAttrs) Kind() NodeKind { return KindSave }
func (a *saveAttrs) String() string { return "" }

// NewSave appends a save of the given value into a freshly allocated
// public, untrained module variable carrying the given name. The node
// itself is named "save_"+name. It returns the destination variable.
func (f *Function) NewSave(name string, input NodeValue) *Variable {
	f.validateInputs(input)
	dest := f.module.NewVariable(input.Type(), name, VisibilityPublic, TrainNone, 0)
	f.NewSaveTo("save_"+name, input, dest)
	return dest
}

// NewSaveTo appends a save of the given value into an existing variable of
// the same type. The save node has no outputs.
func (f *Function) NewSaveTo(name string, input NodeValue, dest *Variable) *Node {
	f.validateInputs(input, dest.Value())
	if dest.Type() != input.Type() {
		Panicf("NewSaveTo(%q): destination type %s differs from the saved value's type %s",
			name, dest.Type(), input.Type())
	}
	return f.newNode(name, &saveAttrs{},
		[]NodeValue{input, dest.Value()}, []string{"Input", "Output"},
		nil, nil)
}
