package graph

import (
	"fmt"

	. "github.com/gomlx/exceptions"

	"github.com/cx-yin/glow/types/elements"
)

type convolutionAttrs struct {
	Kernel, Stride, Pad, Depth int
}

func (a *convolutionAttrs) Kind() NodeKind { return KindConvolution }
func (a *convolutionAttrs) String() string {
	return fmt.Sprintf("kernel=%d, stride=%d, pad=%d, depth=%d", a.Kernel, a.Stride, a.Pad, a.Depth)
}

type poolAttrs struct {
	kind                NodeKind
	Kernel, Stride, Pad int
}

func (a *poolAttrs) Kind() NodeKind { return a.kind }
func (a *poolAttrs) String() string {
	return fmt.Sprintf("kernel=%d, stride=%d, pad=%d", a.Kernel, a.Stride, a.Pad)
}

// NewConv appends a 2D convolution over a [batch, height, width, channels]
// input, producing depth output channels. The filter ([depth, kernel,
// kernel, channels], fan-in-scaled random init) and bias ([depth], constant
// 0.1) variables are allocated on the module. Spatial output size is
// floor((dim + 2*pad - kernel)/stride) + 1; the input spatial dimensions
// must be at least kernel.
func (f *Function) NewConv(name string, input NodeValue, depth, kernel, stride, pad int) *Node {
	f.validateInputs(input)
	idim := nhwc(input)
	if idim.W < kernel || idim.H < kernel {
		Panicf("NewConv(%q): input %s is too small for kernel %d", name, input.Type(), kernel)
	}

	outH, outW := convOutputDims(idim.H, idim.W, kernel, stride, pad)

	// Allocate the filter and bias variables.
	fanIn := kernel * kernel * idim.C
	filter := f.module.NewVariableOf(elements.Float32, []int{depth, kernel, kernel, idim.C},
		"filter", VisibilityPrivate, TrainXavier, float64(fanIn))
	bias := f.module.NewVariableOf(elements.Float32, []int{depth},
		"bias", VisibilityPrivate, TrainBroadcast, 0.1)

	outTy := f.module.UniqueTypeOf(elements.Float32, idim.N, outH, outW, depth)
	return f.newNode(name,
		&convolutionAttrs{Kernel: kernel, Stride: stride, Pad: pad, Depth: depth},
		[]NodeValue{input, filter.Value(), bias.Value()},
		[]string{"Input", "Filter", "Bias"},
		[]TypeRef{outTy}, []string{"Result"})
}

// NewConvWith appends a convolution with caller-supplied filter and bias
// operands and an explicit output type. The filter must be shaped [depth,
// kernel, kernel, inputChannels] and the bias must hold depth elements.
func (f *Function) NewConvWith(name string, input, filter, bias NodeValue, outTy TypeRef, depth, kernel, stride, pad int) *Node {
	f.validateInputs(input, filter, bias)
	idim := nhwc(input)
	if idim.W < kernel || idim.H < kernel {
		Panicf("NewConvWith(%q): input %s is too small for kernel %d", name, input.Type(), kernel)
	}
	if err := filter.Type().CheckDims(depth, kernel, kernel, idim.C); err != nil {
		Panicf("NewConvWith(%q): invalid filter: %v", name, err)
	}
	if filterBiasSize := bias.Type().Size(); filterBiasSize != depth {
		Panicf("NewConvWith(%q): bias holds %d elements, want depth %d", name, filterBiasSize, depth)
	}

	ot := f.module.UniqueType(*outTy)
	return f.newNode(name,
		&convolutionAttrs{Kernel: kernel, Stride: stride, Pad: pad, Depth: depth},
		[]NodeValue{input, filter, bias},
		[]string{"Input", "Filter", "Bias"},
		[]TypeRef{ot}, []string{"Result"})
}

// NewPoolMax appends a max-pooling window over a [batch, height, width,
// channels] input. Channels are preserved; the spatial output size follows
// the convolution formula.
func (f *Function) NewPoolMax(name string, input NodeValue, kernel, stride, pad int) *Node {
	return f.newPool(name, KindPoolMax, input, kernel, stride, pad)
}

// NewPoolAvg appends an average-pooling window; same shape contract as
// NewPoolMax.
func (f *Function) NewPoolAvg(name string, input NodeValue, kernel, stride, pad int) *Node {
	return f.newPool(name, KindPoolAvg, input, kernel, stride, pad)
}

func (f *Function) newPool(name string, kind NodeKind, input NodeValue, kernel, stride, pad int) *Node {
	f.validateInputs(input)
	idim := nhwc(input)
	if idim.W < kernel || idim.H < kernel {
		Panicf("%s builder (%q): input %s is too small for kernel %d", kind, name, input.Type(), kernel)
	}

	outH, outW := convOutputDims(idim.H, idim.W, kernel, stride, pad)
	outTy := f.module.UniqueTypeWithNewShape(input.Type(), idim.N, outH, outW, idim.C)
	return f.newNode(name,
		&poolAttrs{kind: kind, Kernel: kernel, Stride: stride, Pad: pad},
		[]NodeValue{input}, []string{"Input"},
		[]TypeRef{outTy}, []string{"Result"})
}
