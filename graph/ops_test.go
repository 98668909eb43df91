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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cx-yin/glow/types/elements"
)

// newTestFunction returns a seeded module with one empty function, the
// starting point of most builder tests.
func newTestFunction(t *testing.T) (*Module, *Function) {
	t.Helper()
	m := NewModuleWithSeed(42)
	return m, m.NewFunction("main")
}

func (m *Module) inputVar(dims ...int) NodeValue {
	return m.NewVariableOf(elements.Float32, dims, "input", VisibilityPublic, TrainNone, 0).Value()
}

func TestConv(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(1, 32, 32, 3)

	conv := f.NewConv("conv", in, 16, 5, 1, 0)
	require.Equal(t, []int{1, 28, 28, 16}, conv.Dims())
	require.Equal(t, KindConvolution, conv.Kind())
	require.Equal(t, elements.Float32, conv.Value().ElemKind())

	// Filter and bias were allocated on the module.
	require.Equal(t, 3, len(m.Variables()))
	filter := conv.Input(1).Source().(*Variable)
	require.Equal(t, []int{16, 5, 5, 3}, filter.Type().Dims)
	require.Equal(t, TrainXavier, filter.Train())
	require.Equal(t, float64(5*5*3), filter.InitValue())
	bias := conv.Input(2).Source().(*Variable)
	require.Equal(t, []int{16}, bias.Type().Dims)
	require.Equal(t, TrainBroadcast, bias.Train())
	require.Equal(t, 0.1, bias.InitValue())

	// Padding and stride follow the usual formula.
	conv2 := f.NewConv("conv2", in, 8, 3, 2, 1)
	require.Equal(t, []int{1, 16, 16, 8}, conv2.Dims())

	require.Panics(t, func() { f.NewConv("bad", m.inputVar(1, 2, 2, 3), 8, 5, 1, 0) })
	require.Panics(t, func() { f.NewConv("bad", m.inputVar(32, 32, 3), 8, 5, 1, 0) })
	f.Verify()
}

func TestPool(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(1, 28, 28, 16)

	mp := f.NewPoolMax("pool", in, 2, 2, 0)
	require.Equal(t, []int{1, 14, 14, 16}, mp.Dims())
	require.Equal(t, KindPoolMax, mp.Kind())

	ap := f.NewPoolAvg("pool", in, 3, 1, 1)
	require.Equal(t, []int{1, 28, 28, 16}, ap.Dims())
	require.Equal(t, KindPoolAvg, ap.Kind())

	// Pooling preserves the element type, including quantization.
	q := m.NewQuantizedVariable(elements.Int8Q, []int{1, 8, 8, 4}, 0.5, 0, "q", VisibilityPublic, TrainNone, 0)
	qp := f.NewPoolMax("pool", q.Value(), 2, 2, 0)
	require.Equal(t, elements.Int8Q, qp.Value().ElemKind())
	require.Equal(t, float32(0.5), qp.Type().Scale)
	f.Verify()
}

func TestFullyConnected(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(10, 28, 28)

	fc := f.NewFullyConnected("fc", in, 20)
	require.Equal(t, []int{10, 20}, fc.Dims())

	// Trailing dimensions are flattened into the weight rows.
	weights := fc.Input(1).Source().(*Variable)
	require.Equal(t, []int{28 * 28, 20}, weights.Type().Dims)
	require.Equal(t, float64(28*28), weights.InitValue())
	bias := fc.Input(2).Source().(*Variable)
	require.Equal(t, []int{20}, bias.Type().Dims)

	fc2 := f.NewFullyConnectedWith("fc2", in, weights.Value(), bias.Value())
	require.Equal(t, []int{10, 20}, fc2.Dims())

	badW := m.NewVariableOf(elements.Float32, []int{10, 20}, "w", VisibilityPrivate, TrainNone, 0)
	require.Panics(t, func() { f.NewFullyConnectedWith("bad", in, badW.Value(), bias.Value()) })
	f.Verify()
}

func TestMatMul(t *testing.T) {
	m, f := newTestFunction(t)
	lhs := m.inputVar(2, 5)
	rhs := m.inputVar(5, 7)

	mm := f.NewMatMul("matmul", lhs, rhs)
	require.Equal(t, []int{2, 7}, mm.Dims())

	require.Panics(t, func() { f.NewMatMul("bad", lhs, m.inputVar(2, 5, 7)) })
	f64 := m.NewVariableOf(elements.Float64, []int{5, 7}, "f64", VisibilityPublic, TrainNone, 0)
	require.Panics(t, func() { f.NewMatMul("bad", lhs, f64.Value()) })
	f.Verify()
}

func TestBatchedOps(t *testing.T) {
	m, f := newTestFunction(t)
	batch := m.inputVar(8, 3, 4)

	sum := f.NewBatchedReduceAdd("sum", batch)
	require.Equal(t, []int{3, 4}, sum.Dims())

	sample := m.inputVar(3, 4)
	add := f.NewBatchedAdd("badd", batch, sample)
	require.Equal(t, []int{8, 3, 4}, add.Dims())

	require.Panics(t, func() { f.NewBatchedAdd("bad", batch, m.inputVar(4, 3)) })
	f.Verify()
}

func TestArithmetic(t *testing.T) {
	m, f := newTestFunction(t)
	lhs := m.inputVar(2, 3)
	rhs := m.inputVar(2, 3)

	for _, tc := range []struct {
		node *Node
		kind NodeKind
	}{
		{f.NewAdd("add", lhs, rhs), KindAdd},
		{f.NewMul("mul", lhs, rhs), KindMul},
		{f.NewSub("sub", lhs, rhs), KindSub},
		{f.NewDiv("div", lhs, rhs), KindDiv},
		{f.NewMax("max", lhs, rhs), KindMax},
		{f.NewMin("min", lhs, rhs), KindMin},
		{f.NewCmpLTE("cmp", lhs, rhs), KindCmpLTE},
	} {
		require.Equal(t, tc.kind, tc.node.Kind())
		require.Equal(t, []int{2, 3}, tc.node.Dims())
		require.Same(t, lhs.Type(), tc.node.Type())
	}

	require.Panics(t, func() { f.NewAdd("bad", lhs, m.inputVar(3, 2)) })
	f.Verify()
}

func TestUnaryAndActivations(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(4, 10)

	for _, n := range []*Node{
		f.NewRelu("relu", in),
		f.NewSigmoid("sigmoid", in),
		f.NewTanh("tanh", in),
	} {
		require.Equal(t, []int{4, 10}, n.Dims())
		require.Same(t, in.Type(), n.Type())
	}

	pow := f.NewPow("pow", in, 2)
	require.Equal(t, KindPow, pow.Kind())
	require.Same(t, in.Type(), pow.Type())

	selected := m.NewVariableOf(elements.Index, []int{4, 1}, "selected", VisibilityPublic, TrainNone, 0)
	sm := f.NewSoftMax("softmax", in, selected.Value())
	require.Equal(t, []int{4, 10}, sm.Dims())

	ce := f.NewCrossEntropyLoss("ce", sm.Value(), selected.Value())
	require.Equal(t, []int{1}, ce.Dims())

	expected := m.inputVar(4, 10)
	reg := f.NewRegression("reg", in, expected)
	require.Equal(t, []int{4, 10}, reg.Dims())
	f.Verify()
}

func TestSelectAndSplat(t *testing.T) {
	m, f := newTestFunction(t)
	cond := m.inputVar(2, 2)
	lhs := m.inputVar(2, 2)
	rhs := m.inputVar(2, 2)

	sel := f.NewSelect("select", cond, lhs, rhs)
	require.Equal(t, []int{2, 2}, sel.Dims())
	require.Panics(t, func() { f.NewSelect("bad", m.inputVar(3), lhs, rhs) })

	sp := f.NewSplat("splat", m.UniqueTypeOf(elements.Float32, 2, 2), 1.5)
	require.Equal(t, 0, sp.NumInputs())
	require.Equal(t, []int{2, 2}, sp.Dims())
	f.Verify()
}

func TestReshape(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(2, 3, 4)

	r := f.NewReshape("reshape", in, 6, 4)
	require.Equal(t, []int{6, 4}, r.Dims())
	require.Panics(t, func() { f.NewReshape("bad", in, 5, 5) })
	f.Verify()
}

func TestTranspose(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(2, 3, 4)

	tr := f.NewTranspose("transpose", in, 2, 0, 1)
	require.Equal(t, []int{4, 2, 3}, tr.Dims())

	require.Panics(t, func() { f.NewTranspose("bad", in, 0, 1) })
	require.Panics(t, func() { f.NewTranspose("bad", in, 0, 1, 1) })
	require.Panics(t, func() { f.NewTranspose("bad", in, 0, 1, 3) })
	f.Verify()
}

func TestBroadcast(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(3)

	b := f.NewBroadcast("broadcast", in, []int{2, 3, 4}, 1)
	require.Equal(t, []int{2, 3, 4}, b.Dims())

	require.Panics(t, func() { f.NewBroadcast("bad", in, []int{2, 4, 4}, 1) })
	require.Panics(t, func() { f.NewBroadcast("bad", in, []int{2, 3}, 2) })
	f.Verify()
}

func TestConcat(t *testing.T) {
	m, f := newTestFunction(t)
	a := m.inputVar(2, 3)
	b := m.inputVar(2, 3)

	c := f.NewConcat("concat", 0, a, b)
	require.Equal(t, []int{4, 3}, c.Dims())
	require.Equal(t, "Inputs.0", c.InputName(0))
	require.Equal(t, "Inputs.1", c.InputName(1))

	c2 := f.NewConcat("concat", 1, a, b, m.inputVar(2, 1))
	require.Equal(t, []int{2, 7}, c2.Dims())

	require.Panics(t, func() { f.NewConcat("bad", 0) })
	require.Panics(t, func() { f.NewConcat("bad", 2, a, b) })
	require.Panics(t, func() { f.NewConcat("bad", 0, a, m.inputVar(2, 4)) })
	f.Verify()
}

func TestSlice(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(4, 4)

	s := f.NewSlice("slice", in, []int{1, 1}, []int{3, 3})
	require.Equal(t, []int{2, 2}, s.Dims())

	require.Panics(t, func() { f.NewSlice("bad", in, []int{1}, []int{3}) })
	require.Panics(t, func() { f.NewSlice("bad", in, []int{0, 0}, []int{5, 4}) })
	require.Panics(t, func() { f.NewSlice("bad", in, []int{2, 0}, []int{2, 4}) })
	f.Verify()
}

func TestTopK(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(2, 10)

	topK := f.NewTopK("topk", in, 3)
	require.Equal(t, 2, topK.NumOutputs())
	values := Result(topK, 0)
	indices := Result(topK, 1)
	require.Equal(t, []int{2, 3}, values.Dims())
	require.Equal(t, elements.Float32, values.ElemKind())
	require.Equal(t, []int{2, 3}, indices.Dims())
	require.Equal(t, elements.Index, indices.ElemKind())
	require.Equal(t, "Values", topK.OutputName(0))
	require.Equal(t, "Indices", topK.OutputName(1))

	require.Panics(t, func() { f.NewTopK("bad", in, 0) })
	require.Panics(t, func() { f.NewTopK("bad", in, 11) })
	f.Verify()
}

func TestGather(t *testing.T) {
	m, f := newTestFunction(t)
	data := m.inputVar(5, 7)
	indices := m.NewVariableOf(elements.Index, []int{2, 3}, "indices", VisibilityPublic, TrainNone, 0)

	g := f.NewGather("gather", data, indices.Value())
	require.Equal(t, []int{2, 3, 7}, g.Dims())
	require.Equal(t, elements.Float32, g.Value().ElemKind())
	f.Verify()
}

func TestBatchNormalization(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(2, 8, 8, 4)

	bn := f.NewBatchNormalization("bn", in, 3, 1e-5, 0.9)
	require.Same(t, in.Type(), bn.Type())
	require.Equal(t, 5, bn.NumInputs())

	// The four per-channel parameters were allocated with their
	// conventional initializations.
	gamma := bn.Input(1).Source().(*Variable)
	require.Equal(t, []int{4}, gamma.Type().Dims)
	require.Equal(t, TrainBroadcast, gamma.Train())
	require.Equal(t, 1.0, gamma.InitValue())
	beta := bn.Input(2).Source().(*Variable)
	require.Equal(t, TrainBroadcast, beta.Train())
	require.Equal(t, 0.0, beta.InitValue())
	mean := bn.Input(3).Source().(*Variable)
	require.Equal(t, TrainNone, mean.Train())
	variance := bn.Input(4).Source().(*Variable)
	require.Equal(t, TrainNone, variance.Train())

	require.Panics(t, func() { f.NewBatchNormalization("bad", in, 4, 1e-5, 0.9) })
	f.Verify()
}

func TestLocalResponseNormalization(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(2, 8, 8, 6)

	lrn := f.NewLocalResponseNormalization("lrn", in, 2, 1e-4, 0.75, 2.0)
	require.Same(t, in.Type(), lrn.Type())
	scale := lrn.Input(1).Source().(*Variable)
	require.Equal(t, []int{6}, scale.Type().Dims)
	require.Equal(t, TrainNone, scale.Train())

	require.Panics(t, func() { f.NewLocalResponseNormalization("bad", m.inputVar(8, 6), 2, 1e-4, 0.75, 2.0) })
	f.Verify()
}

func TestQuantizeOps(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(2, 3)

	qTy := m.UniqueQuantizedType(elements.Int8Q, 0.5, -5, 2, 3)
	q := f.NewQuantize("quantize", in, qTy)
	require.Same(t, qTy, q.Type())

	d := f.NewDequantize("dequantize", q.Value())
	require.Equal(t, elements.Float32, d.Value().ElemKind())
	require.Equal(t, []int{2, 3}, d.Dims())

	rTy := m.UniqueQuantizedType(elements.Int8Q, 0.25, 0, 2, 3)
	r := f.NewRescaleQuantized("rescale", q.Value(), rTy)
	require.Same(t, rTy, r.Type())

	require.Panics(t, func() { f.NewQuantize("bad", q.Value(), qTy) })
	require.Panics(t, func() { f.NewQuantize("bad", in, in.Type()) })
	require.Panics(t, func() { f.NewDequantize("bad", in) })
	require.Panics(t, func() {
		f.NewRescaleQuantized("bad", q.Value(), m.UniqueQuantizedType(elements.Int32Q, 0.25, 0, 2, 3))
	})
	f.Verify()
}

func TestQuantizationProfile(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(2, 3)
	r := f.NewRelu("relu", in)

	qp := f.NewQuantizationProfile("profile", r.Value())
	require.Equal(t, 0, qp.NumOutputs())
	require.Equal(t, 3, qp.NumInputs())

	histogram := qp.Input(1).Source().(*Variable)
	require.Equal(t, []int{2000}, histogram.Type().Dims)
	info := qp.Input(2).Source().(*Variable)
	require.Equal(t, []int{2}, info.Type().Dims)

	attrs := qp.Attrs().(*quantizationProfileAttrs)
	require.Equal(t, r.Name()+":0", attrs.ProfiledName)
	f.Verify()
}

func TestSave(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(2, 3)
	r := f.NewRelu("relu", in)

	dest := f.NewSave("result", r.Value())
	require.Equal(t, VisibilityPublic, dest.Visibility())
	require.Equal(t, TrainNone, dest.Train())
	require.Same(t, r.Type(), dest.Type())
	require.True(t, strings.HasPrefix(dest.Name(), "result__"))

	saveNode := f.Nodes()[f.NumNodes()-1]
	require.Equal(t, KindSave, saveNode.Kind())
	require.True(t, strings.HasPrefix(saveNode.Name(), "save_result__"))
	require.Equal(t, 0, saveNode.NumOutputs())
	require.Panics(t, func() { saveNode.Type() })

	other := m.NewVariableOf(elements.Float64, []int{2, 3}, "other", VisibilityPublic, TrainNone, 0)
	require.Panics(t, func() { f.NewSaveTo("bad", r.Value(), other) })
	f.Verify()
}

func TestEraseNode(t *testing.T) {
	m, f := newTestFunction(t)
	in := m.inputVar(2, 3)
	r := f.NewRelu("relu", in)
	s := f.NewSigmoid("sigmoid", in)
	require.Equal(t, 2, f.NumNodes())

	f.EraseNode(s)
	require.Equal(t, 1, f.NumNodes())
	require.Same(t, r, f.Nodes()[0])
	f.Verify()

	// Erasing a node twice panics, as does erasing into the wrong function.
	require.Panics(t, func() { f.EraseNode(s) })
	f2 := m.NewFunction("other")
	require.Panics(t, func() { f2.EraseNode(r) })

	// A Variable target is delegated to the module.
	v := m.NewVariableOf(elements.Float32, []int{2}, "v", VisibilityPrivate, TrainNone, 0)
	f.EraseNode(v)
	require.Nil(t, m.VariableByName(v.Name()))
}

func TestBuilderRejectsForeignOperands(t *testing.T) {
	m1, f1 := newTestFunction(t)
	in1 := m1.inputVar(2, 3)
	n1 := f1.NewRelu("relu", in1)

	// A node from another function.
	f2 := m1.NewFunction("other")
	require.Panics(t, func() { f2.NewRelu("bad", n1.Value()) })

	// A variable from another module.
	m2 := NewModule()
	in2 := m2.inputVar(2, 3)
	require.Panics(t, func() { f1.NewRelu("bad", in2) })

	// A zero NodeValue.
	require.Panics(t, func() { f1.NewRelu("bad", NodeValue{}) })
}
