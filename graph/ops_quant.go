package graph

import (
	"fmt"

	. "github.com/gomlx/exceptions"

	"github.com/cx-yin/glow/types/elements"
)

type quantizeAttrs struct{}

func (a *quantizeAttrs) Kind() NodeKind { return KindQuantize }
func (a *quantizeAttrs) String() string { return "" }

type dequantizeAttrs struct{}

func (a *dequantizeAttrs) Kind() NodeKind { return KindDequantize }
func (a *dequantizeAttrs) String() string { return "" }

type rescaleQuantizedAttrs struct{}

func (a *rescaleQuantizedAttrs) Kind() NodeKind { return KindRescaleQuantized }
func (a *rescaleQuantizedAttrs) String() string { return "" }

type quantizationProfileAttrs struct {
	ProfiledName string
}

func (a *quantizationProfileAttrs) Kind() NodeKind { return KindQuantizationProfile }
func (a *quantizationProfileAttrs) String() string {
	return fmt.Sprintf("profiledName=%q", a.ProfiledName)
}

// NewQuantize appends a conversion of a floating-point input to the given
// quantized type, which must have the same shape.
func (f *Function) NewQuantize(name string, input NodeValue, outTy TypeRef) *Node {
	f.validateInputs(input)
	if !input.ElemKind().IsFloat() {
		Panicf("NewQuantize(%q): input %s is not floating point", name, input.Type())
	}
	if !outTy.Kind.IsQuantized() {
		Panicf("NewQuantize(%q): output type %s is not quantized", name, outTy)
	}
	if err := outTy.CheckDims(input.Dims()...); err != nil {
		Panicf("NewQuantize(%q): output shape differs from the input: %v", name, err)
	}
	ot := f.module.UniqueType(*outTy)
	return f.newNode(name, &quantizeAttrs{},
		[]NodeValue{input}, []string{"Input"},
		[]TypeRef{ot}, []string{"Result"})
}

// NewDequantize appends a conversion of a quantized input back to float32
// with the same shape.
func (f *Function) NewDequantize(name string, input NodeValue) *Node {
	f.validateInputs(input)
	if !input.ElemKind().IsQuantized() {
		Panicf("NewDequantize(%q): input %s is not quantized", name, input.Type())
	}
	outTy := f.module.UniqueTypeOf(elements.Float32, input.Dims()...)
	return f.newNode(name, &dequantizeAttrs{},
		[]NodeValue{input}, []string{"Input"},
		[]TypeRef{outTy}, []string{"Result"})
}

// NewRescaleQuantized appends a requantization of a quantized input to a
// quantized output type with a different scale or offset but the same
// element kind and shape.
func (f *Function) NewRescaleQuantized(name string, input NodeValue, outTy TypeRef) *Node {
	f.validateInputs(input)
	t := input.Type()
	if !t.Kind.IsQuantized() || !outTy.Kind.IsQuantized() {
		Panicf("NewRescaleQuantized(%q): both %s and %s must be quantized", name, t, outTy)
	}
	if t.Kind != outTy.Kind {
		Panicf("NewRescaleQuantized(%q): element kinds differ, %s vs %s", name, t, outTy)
	}
	if err := outTy.CheckDims(t.Dims...); err != nil {
		Panicf("NewRescaleQuantized(%q): output shape differs from the input: %v", name, err)
	}
	ot := f.module.UniqueType(*outTy)
	return f.newNode(name, &rescaleQuantizedAttrs{},
		[]NodeValue{input}, []string{"Input"},
		[]TypeRef{ot}, []string{"Result"})
}

// NewQuantizationProfile appends a profiling observer for the given value.
// It records the observed value range into two untrained module variables,
// a fixed-size histogram and a [min, max] pair, and has no outputs. The
// profiled value's producer name and result slot are kept in the node
// attributes so a later lowering step can match profile to value.
func (f *Function) NewQuantizationProfile(name string, input NodeValue) *Node {
	f.validateInputs(input)
	if !input.ElemKind().IsFloat() {
		Panicf("NewQuantizationProfile(%q): input %s is not floating point", name, input.Type())
	}

	histogram := f.module.NewVariableOf(elements.Float32, []int{2000},
		"histogram", VisibilityPrivate, TrainNone, 0)
	computationInfo := f.module.NewVariableOf(elements.Float32, []int{2},
		"computationInfo", VisibilityPrivate, TrainNone, 0)

	profiledName := fmt.Sprintf("%s:%d", input.Source().Name(), input.ResNo())
	return f.newNode(name, &quantizationProfileAttrs{ProfiledName: profiledName},
		[]NodeValue{input, histogram.Value(), computationInfo.Value()},
		[]string{"Input", "Histogram", "ComputationInfo"},
		nil, nil)
}
