package graph

import (
	"fmt"

	. "github.com/gomlx/exceptions"
)

type batchNormalizationAttrs struct {
	ChannelIdx int
	Epsilon    float32
	Momentum   float32
}

func (a *batchNormalizationAttrs) Kind() NodeKind { return KindBatchNormalization }
func (a *batchNormalizationAttrs) String() string {
	return fmt.Sprintf("channelIdx=%d epsilon=%g momentum=%g", a.ChannelIdx, a.Epsilon, a.Momentum)
}

type lrnAttrs struct {
	HalfWindowSize int
	Alpha          float32
	Beta           float32
	K              float32
}

func (a *lrnAttrs) Kind() NodeKind { return KindLocalResponseNormalization }
func (a *lrnAttrs) String() string {
	return fmt.Sprintf("halfWindowSize=%d alpha=%g beta=%g k=%g", a.HalfWindowSize, a.Alpha, a.Beta, a.K)
}

// NewBatchNormalization appends a batch normalization over the channel
// axis channelIdx, allocating its four per-channel variables on the
// module: gamma (scale, constant 1), beta (bias, constant 0), and the
// running mean and variance (untrained).
func (f *Function) NewBatchNormalization(name string, input NodeValue, channelIdx int, epsilon, momentum float32) *Node {
	f.validateInputs(input)
	t := input.Type()
	if channelIdx < 0 || channelIdx >= t.Rank() {
		Panicf("NewBatchNormalization(%q): channel axis %d out of range for %s", name, channelIdx, t)
	}
	channels := t.Dims[channelIdx]

	beta := f.module.NewVariableOf(t.Kind, []int{channels},
		"beta", VisibilityPrivate, TrainBroadcast, 0)
	gamma := f.module.NewVariableOf(t.Kind, []int{channels},
		"gamma", VisibilityPrivate, TrainBroadcast, 1)
	mean := f.module.NewVariableOf(t.Kind, []int{channels},
		"mean", VisibilityPrivate, TrainNone, 0)
	variance := f.module.NewVariableOf(t.Kind, []int{channels},
		"variance", VisibilityPrivate, TrainNone, 0)

	return f.NewBatchNormalizationWith(name, input,
		gamma.Value(), beta.Value(), mean.Value(), variance.Value(),
		channelIdx, epsilon, momentum)
}

// NewBatchNormalizationWith is NewBatchNormalization with caller-supplied
// gamma, beta, mean and variance, each holding one element per channel.
func (f *Function) NewBatchNormalizationWith(name string, input, gamma, beta, mean, variance NodeValue, channelIdx int, epsilon, momentum float32) *Node {
	f.validateInputs(input, gamma, beta, mean, variance)
	t := input.Type()
	if channelIdx < 0 || channelIdx >= t.Rank() {
		Panicf("NewBatchNormalization(%q): channel axis %d out of range for %s", name, channelIdx, t)
	}
	channels := t.Dims[channelIdx]
	for _, side := range []struct {
		slot string
		v    NodeValue
	}{{"Gamma", gamma}, {"Beta", beta}, {"Mean", mean}, {"Variance", variance}} {
		if side.v.Type().Size() != channels {
			Panicf("NewBatchNormalization(%q): %s %s does not hold %d channels",
				name, side.slot, side.v.Type(), channels)
		}
	}
	attrs := &batchNormalizationAttrs{ChannelIdx: channelIdx, Epsilon: epsilon, Momentum: momentum}
	return f.newNode(name, attrs,
		[]NodeValue{input, gamma, beta, mean, variance},
		[]string{"Input", "Gamma", "Beta", "Mean", "Variance"},
		[]TypeRef{t}, []string{"Result"})
}

// NewLocalResponseNormalization appends a local response normalization
// across channels of an NHWC input, over a window of
// 2*halfWindowSize+1 channels. The per-channel scale cache is allocated as
// an untrained module variable.
func (f *Function) NewLocalResponseNormalization(name string, input NodeValue, halfWindowSize int, alpha, beta, k float32) *Node {
	f.validateInputs(input)
	s := nhwc(input)

	scale := f.module.NewVariableOf(input.ElemKind(), []int{s.C},
		"scale", VisibilityPrivate, TrainNone, 0)

	attrs := &lrnAttrs{HalfWindowSize: halfWindowSize, Alpha: alpha, Beta: beta, K: k}
	return f.newNode(name, attrs,
		[]NodeValue{input, scale.Value()}, []string{"Input", "Scale"},
		[]TypeRef{input.Type()}, []string{"Result"})
}
