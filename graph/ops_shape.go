package graph

import (
	"fmt"

	. "github.com/gomlx/exceptions"

	"github.com/cx-yin/glow/types/elements"
)

type reshapeAttrs struct {
	Dims []int
}

func (a *reshapeAttrs) Kind() NodeKind { return KindReshape }
func (a *reshapeAttrs) String() string { return fmt.Sprintf("dims=%v", a.Dims) }

type transposeAttrs struct {
	Shuffle []int
}

func (a *transposeAttrs) Kind() NodeKind { return KindTranspose }
func (a *transposeAttrs) String() string { return fmt.Sprintf("shuffle=%v", a.Shuffle) }

type broadcastAttrs struct {
	Dims []int
	Axis int
}

func (a *broadcastAttrs) Kind() NodeKind { return KindBroadcast }
func (a *broadcastAttrs) String() string { return fmt.Sprintf("dims=%v axis=%d", a.Dims, a.Axis) }

type concatAttrs struct {
	Axis int
}

func (a *concatAttrs) Kind() NodeKind { return KindConcat }
func (a *concatAttrs) String() string { return fmt.Sprintf("axis=%d", a.Axis) }

type sliceAttrs struct {
	Begin []int
}

func (a *sliceAttrs) Kind() NodeKind { return KindSlice }
func (a *sliceAttrs) String() string { return fmt.Sprintf("begin=%v", a.Begin) }

type topKAttrs struct {
	K int
}

func (a *topKAttrs) Kind() NodeKind { return KindTopK }
func (a *topKAttrs) String() string { return fmt.Sprintf("k=%d", a.K) }

type gatherAttrs struct{}

func (a *gatherAttrs) Kind() NodeKind { return KindGather }
func (a *gatherAttrs) String() string { return "" }

// NewReshape appends a reshape to the given dimensions, which must hold
// exactly as many elements as the input.
func (f *Function) NewReshape(name string, input NodeValue, dims ...int) *Node {
	f.validateInputs(input)
	outTy := f.module.UniqueTypeWithNewShape(input.Type(), dims...)
	if outTy.Size() != input.Type().Size() {
		Panicf("NewReshape(%q): %s and %s hold different element counts", name, input.Type(), outTy)
	}
	return f.newNode(name, &reshapeAttrs{Dims: outTy.Dims},
		[]NodeValue{input}, []string{"Input"},
		[]TypeRef{outTy}, []string{"Result"})
}

// NewTranspose appends an axis permutation: output dimension i takes the
// input dimension shuffle[i]. The shuffle must be a permutation of the
// input's axes.
func (f *Function) NewTranspose(name string, input NodeValue, shuffle ...int) *Node {
	f.validateInputs(input)
	t := input.Type()
	if len(shuffle) != t.Rank() {
		Panicf("NewTranspose(%q): shuffle %v does not cover all %d axes of %s", name, shuffle, t.Rank(), t)
	}
	seen := make([]bool, t.Rank())
	outDims := make([]int, t.Rank())
	for i, axis := range shuffle {
		if axis < 0 || axis >= t.Rank() || seen[axis] {
			Panicf("NewTranspose(%q): shuffle %v is not a permutation of the axes of %s", name, shuffle, t)
		}
		seen[axis] = true
		outDims[i] = t.Dims[axis]
	}
	outTy := f.module.UniqueTypeWithNewShape(t, outDims...)
	shuffleCopy := make([]int, len(shuffle))
	copy(shuffleCopy, shuffle)
	return f.newNode(name, &transposeAttrs{Shuffle: shuffleCopy},
		[]NodeValue{input}, []string{"Input"},
		[]TypeRef{outTy}, []string{"Result"})
}

// NewBroadcast appends a broadcast of the input to the given shape,
// aligning the input's axes starting at the given output axis.
func (f *Function) NewBroadcast(name string, input NodeValue, dims []int, axis int) *Node {
	f.validateInputs(input)
	t := input.Type()
	if axis < 0 || axis+t.Rank() > len(dims) {
		Panicf("NewBroadcast(%q): cannot place %s at axis %d of shape %v", name, t, axis, dims)
	}
	for i, d := range t.Dims {
		if d != dims[axis+i] && d != 1 {
			Panicf("NewBroadcast(%q): input dimension %d (=%d) does not fit output shape %v at axis %d",
				name, i, d, dims, axis)
		}
	}
	outTy := f.module.UniqueTypeWithNewShape(t, dims...)
	return f.newNode(name, &broadcastAttrs{Dims: outTy.Dims, Axis: axis},
		[]NodeValue{input}, []string{"Input"},
		[]TypeRef{outTy}, []string{"Result"})
}

// NewConcat appends a concatenation of the inputs along the given axis.
// All inputs must share element type and all dimensions except the
// concatenation axis, which is summed.
func (f *Function) NewConcat(name string, axis int, inputs ...NodeValue) *Node {
	if len(inputs) == 0 {
		Panicf("NewConcat(%q): at least one input is required", name)
	}
	f.validateInputs(inputs...)
	t0 := inputs[0].Type()
	if axis < 0 || axis >= t0.Rank() {
		Panicf("NewConcat(%q): axis %d out of range for %s", name, axis, t0)
	}
	total := t0.Dims[axis]
	for _, in := range inputs[1:] {
		if !sameShapeExceptAxis(t0, in.Type(), axis) {
			Panicf("NewConcat(%q): %s does not match %s outside axis %d", name, in.Type(), t0, axis)
		}
		total += in.Type().Dims[axis]
	}
	outDims := make([]int, t0.Rank())
	copy(outDims, t0.Dims)
	outDims[axis] = total
	outTy := f.module.UniqueTypeWithNewShape(t0, outDims...)

	names := make([]string, len(inputs))
	for i := range inputs {
		names[i] = fmt.Sprintf("Inputs.%d", i)
	}
	return f.newNode(name, &concatAttrs{Axis: axis},
		inputs, names, []TypeRef{outTy}, []string{"Result"})
}

// NewSlice appends an extraction of the hyper-rectangle [begin, end) from
// the input. Both bounds must cover every axis and stay inside the input.
func (f *Function) NewSlice(name string, input NodeValue, begin, end []int) *Node {
	f.validateInputs(input)
	t := input.Type()
	if len(begin) != t.Rank() || len(end) != t.Rank() {
		Panicf("NewSlice(%q): begin %v and end %v must cover all %d axes of %s",
			name, begin, end, t.Rank(), t)
	}
	outDims := make([]int, t.Rank())
	for i := range begin {
		if begin[i] < 0 || end[i] > t.Dims[i] || begin[i] >= end[i] {
			Panicf("NewSlice(%q): invalid range [%d, %d) on axis %d of %s",
				name, begin[i], end[i], i, t)
		}
		outDims[i] = end[i] - begin[i]
	}
	outTy := f.module.UniqueTypeWithNewShape(t, outDims...)
	beginCopy := make([]int, len(begin))
	copy(beginCopy, begin)
	return f.newNode(name, &sliceAttrs{Begin: beginCopy},
		[]NodeValue{input}, []string{"Input"},
		[]TypeRef{outTy}, []string{"Result"})
}

// NewTopK appends a selection of the k largest elements along the last
// axis. It has two results: the values, with the input's element kind, and
// their indices, with kind Index; both replace the last dimension with k.
func (f *Function) NewTopK(name string, input NodeValue, k int) *Node {
	f.validateInputs(input)
	t := input.Type()
	if t.Rank() < 1 {
		Panicf("NewTopK(%q): input %s must have at least one axis", name, t)
	}
	if k <= 0 || k > t.Dim(-1) {
		Panicf("NewTopK(%q): k=%d out of range for last dimension %d of %s", name, k, t.Dim(-1), t)
	}
	outDims := make([]int, t.Rank())
	copy(outDims, t.Dims)
	outDims[t.Rank()-1] = k
	valuesTy := f.module.UniqueTypeWithNewShape(t, outDims...)
	indicesTy := f.module.UniqueTypeOf(elements.Index, outDims...)
	return f.newNode(name, &topKAttrs{K: k},
		[]NodeValue{input}, []string{"Input"},
		[]TypeRef{valuesTy, indicesTy}, []string{"Values", "Indices"})
}

// NewGather appends a gather of rows from data at the positions given by
// indices: the output shape is the indices' shape followed by the data's
// shape without its first axis.
func (f *Function) NewGather(name string, data, indices NodeValue) *Node {
	f.validateInputs(data, indices)
	dt := data.Type()
	if dt.Rank() < 1 {
		Panicf("NewGather(%q): data %s must have at least one axis", name, dt)
	}
	it := indices.Type()
	outDims := make([]int, 0, it.Rank()+dt.Rank()-1)
	outDims = append(outDims, it.Dims...)
	outDims = append(outDims, dt.Dims[1:]...)
	outTy := f.module.UniqueTypeWithNewShape(dt, outDims...)
	return f.newNode(name, &gatherAttrs{},
		[]NodeValue{data, indices}, []string{"Data", "Indices"},
		[]TypeRef{outTy}, []string{"Result"})
}
