package graph

import (
	"fmt"

	. "github.com/gomlx/exceptions"
)

// arithmeticAttrs carries the concrete kind of a two-operand element-wise
// node (Add, Mul, Sub, Div, Max, Min, CmpLTE).
type arithmeticAttrs struct {
	kind NodeKind
}

func (a *arithmeticAttrs) Kind() NodeKind { return a.kind }
func (a *arithmeticAttrs) String() string { return "" }

type powAttrs struct {
	Exponent float32
}

func (a *powAttrs) Kind() NodeKind { return KindPow }
func (a *powAttrs) String() string { return fmt.Sprintf("exponent=%g", a.Exponent) }

type selectAttrs struct{}

func (a *selectAttrs) Kind() NodeKind { return KindSelect }
func (a *selectAttrs) String() string { return "" }

type splatAttrs struct {
	Value float32
}

func (a *splatAttrs) Kind() NodeKind { return KindSplat }
func (a *splatAttrs) String() string { return fmt.Sprintf("value=%g", a.Value) }

type unaryAttrs struct {
	kind NodeKind
}

func (a *unaryAttrs) Kind() NodeKind { return a.kind }
func (a *unaryAttrs) String() string { return "" }

type softMaxAttrs struct{}

func (a *softMaxAttrs) Kind() NodeKind { return KindSoftMax }
func (a *softMaxAttrs) String() string { return "" }

type crossEntropyLossAttrs struct{}

func (a *crossEntropyLossAttrs) Kind() NodeKind { return KindCrossEntropyLoss }
func (a *crossEntropyLossAttrs) String() string { return "" }

type regressionAttrs struct{}

func (a *regressionAttrs) Kind() NodeKind { return KindRegression }
func (a *regressionAttrs) String() string { return "" }

func (f *Function) newArithmetic(name string, kind NodeKind, outTy TypeRef, lhs, rhs NodeValue) *Node {
	f.validateInputs(lhs, rhs)
	if err := lhs.Type().CheckDims(rhs.Dims()...); err != nil {
		Panicf("New%s(%q): operand shapes differ: %v", kind, name, err)
	}
	ot := f.module.UniqueType(*outTy)
	return f.newNode(name, &arithmeticAttrs{kind: kind},
		[]NodeValue{lhs, rhs}, []string{"LHS", "RHS"},
		[]TypeRef{ot}, []string{"Result"})
}

// NewAdd appends an element-wise addition of two same-shaped values.
func (f *Function) NewAdd(name string, lhs, rhs NodeValue) *Node {
	return f.newArithmetic(name, KindAdd, lhs.Type(), lhs, rhs)
}

// NewAddTo is NewAdd with an explicit output type.
func (f *Function) NewAddTo(name string, outTy TypeRef, lhs, rhs NodeValue) *Node {
	return f.newArithmetic(name, KindAdd, outTy, lhs, rhs)
}

// NewMul appends an element-wise multiplication.
func (f *Function) NewMul(name string, lhs, rhs NodeValue) *Node {
	return f.newArithmetic(name, KindMul, lhs.Type(), lhs, rhs)
}

// NewMulTo is NewMul with an explicit output type.
func (f *Function) NewMulTo(name string, outTy TypeRef, lhs, rhs NodeValue) *Node {
	return f.newArithmetic(name, KindMul, outTy, lhs, rhs)
}

// NewSub appends an element-wise subtraction.
func (f *Function) NewSub(name string, lhs, rhs NodeValue) *Node {
	return f.newArithmetic(name, KindSub, lhs.Type(), lhs, rhs)
}

// NewSubTo is NewSub with an explicit output type.
func (f *Function) NewSubTo(name string, outTy TypeRef, lhs, rhs NodeValue) *Node {
	return f.newArithmetic(name, KindSub, outTy, lhs, rhs)
}

// NewDiv appends an element-wise division.
func (f *Function) NewDiv(name string, lhs, rhs NodeValue) *Node {
	return f.newArithmetic(name, KindDiv, lhs.Type(), lhs, rhs)
}

// NewDivTo is NewDiv with an explicit output type.
func (f *Function) NewDivTo(name string, outTy TypeRef, lhs, rhs NodeValue) *Node {
	return f.newArithmetic(name, KindDiv, outTy, lhs, rhs)
}

// NewMax appends an element-wise maximum.
func (f *Function) NewMax(name string, lhs, rhs NodeValue) *Node {
	return f.newArithmetic(name, KindMax, lhs.Type(), lhs, rhs)
}

// NewMin appends an element-wise minimum.
func (f *Function) NewMin(name string, lhs, rhs NodeValue) *Node {
	return f.newArithmetic(name, KindMin, lhs.Type(), lhs, rhs)
}

// NewCmpLTE appends an element-wise "less than or equal" comparison. The
// output has the operands' shape and element kind, holding 0 or 1.
func (f *Function) NewCmpLTE(name string, lhs, rhs NodeValue) *Node {
	return f.newArithmetic(name, KindCmpLTE, lhs.Type(), lhs, rhs)
}

// NewPow appends an element-wise power with a constant exponent.
func (f *Function) NewPow(name string, base NodeValue, exponent float32) *Node {
	f.validateInputs(base)
	return f.newNode(name, &powAttrs{Exponent: exponent},
		[]NodeValue{base}, []string{"Base"},
		[]TypeRef{base.Type()}, []string{"Result"})
}

// NewSelect appends an element-wise select: where cond is non-zero the
// output takes lhs, elsewhere rhs. All three operands share one shape.
func (f *Function) NewSelect(name string, cond, lhs, rhs NodeValue) *Node {
	f.validateInputs(cond, lhs, rhs)
	if err := cond.Type().CheckDims(lhs.Dims()...); err != nil {
		Panicf("NewSelect(%q): condition shape differs from operands: %v", name, err)
	}
	if err := lhs.Type().CheckDims(rhs.Dims()...); err != nil {
		Panicf("NewSelect(%q): operand shapes differ: %v", name, err)
	}
	return f.newNode(name, &selectAttrs{},
		[]NodeValue{cond, lhs, rhs}, []string{"Cond", "LHS", "RHS"},
		[]TypeRef{lhs.Type()}, []string{"Result"})
}

// NewSplat appends a node producing a tensor of the given type filled with
// a constant value. It takes no inputs.
func (f *Function) NewSplat(name string, outTy TypeRef, value float32) *Node {
	ot := f.module.UniqueType(*outTy)
	return f.newNode(name, &splatAttrs{Value: value},
		nil, nil, []TypeRef{ot}, []string{"Result"})
}

func (f *Function) newUnary(name string, kind NodeKind, input NodeValue) *Node {
	f.validateInputs(input)
	return f.newNode(name, &unaryAttrs{kind: kind},
		[]NodeValue{input}, []string{"Input"},
		[]TypeRef{input.Type()}, []string{"Result"})
}

// NewRelu appends a rectified linear unit, max(x, 0).
func (f *Function) NewRelu(name string, input NodeValue) *Node {
	return f.newUnary(name, KindRelu, input)
}

// NewSigmoid appends an element-wise logistic sigmoid.
func (f *Function) NewSigmoid(name string, input NodeValue) *Node {
	return f.newUnary(name, KindSigmoid, input)
}

// NewTanh appends an element-wise hyperbolic tangent.
func (f *Function) NewTanh(name string, input NodeValue) *Node {
	return f.newUnary(name, KindTanh, input)
}

// NewSoftMax appends a softmax normalization over the last axis. The
// selected value carries the target labels used when training.
func (f *Function) NewSoftMax(name string, input, selected NodeValue) *Node {
	f.validateInputs(input, selected)
	return f.newNode(name, &softMaxAttrs{},
		[]NodeValue{input, selected}, []string{"Input", "Selected"},
		[]TypeRef{input.Type()}, []string{"Result"})
}

// NewCrossEntropyLoss appends a cross-entropy loss between predictions and
// labels, producing a single-element tensor.
func (f *Function) NewCrossEntropyLoss(name string, p, labels NodeValue) *Node {
	f.validateInputs(p, labels)
	outTy := f.module.UniqueTypeOf(p.ElemKind(), 1)
	return f.newNode(name, &crossEntropyLossAttrs{},
		[]NodeValue{p, labels}, []string{"P", "Labels"},
		[]TypeRef{outTy}, []string{"CE"})
}

// NewRegression appends a regression node comparing the input against
// expected values of the same shape.
func (f *Function) NewRegression(name string, input, expected NodeValue) *Node {
	f.validateInputs(input, expected)
	if err := input.Type().CheckDims(expected.Dims()...); err != nil {
		Panicf("NewRegression(%q): expected values do not match the input: %v", name, err)
	}
	return f.newNode(name, &regressionAttrs{},
		[]NodeValue{input, expected}, []string{"Input", "Expected"},
		[]TypeRef{input.Type()}, []string{"Result"})
}
