package graph

import (
	"fmt"

	. "github.com/gomlx/exceptions"

	"github.com/cx-yin/glow/types/elements"
)

// rnnInputSize extracts the per-sample feature size shared by the unrolled
// recurrent builders.
func rnnInputSize(namePrefix string, inputs []NodeValue) int {
	if len(inputs) == 0 {
		Panicf("%q: a recurrent layer needs at least one time step", namePrefix)
	}
	inputSize := inputs[0].Type().Dim(-1)
	if inputSize <= 0 {
		Panicf("%q: input dimensionality is zero", namePrefix)
	}
	return inputSize
}

// NewSimpleRNN unrolls a vanilla recurrent layer over the given time-step
// inputs, sharing one set of weights across steps:
//
//	H(t) = tanh(Whh*H(t-1) + Wxh*X(t))
//	O(t) = Why*H(t)
//
// The initial state is a public, zero-initialized variable. It returns one
// output value per time step, each shaped [batchSize, outputSize].
func (f *Function) NewSimpleRNN(namePrefix string, inputs []NodeValue, batchSize, hiddenSize, outputSize int) []NodeValue {
	inputSize := rnnInputSize(namePrefix, inputs)
	m := f.module

	hInit := m.NewVariableOf(elements.Float32, []int{batchSize, hiddenSize},
		namePrefix+".initial_state", VisibilityPublic, TrainNone, 0)
	ht := hInit.Value()

	const b = 0.1
	whh := m.NewVariableOf(elements.Float32, []int{hiddenSize, hiddenSize},
		namePrefix+".Whh", VisibilityPrivate, TrainXavier, float64(hiddenSize))
	bhh := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".Bhh", VisibilityPrivate, TrainBroadcast, b)
	wxh := m.NewVariableOf(elements.Float32, []int{inputSize, hiddenSize},
		namePrefix+".Wxh", VisibilityPrivate, TrainXavier, float64(inputSize))
	bxh := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".Bxh", VisibilityPrivate, TrainBroadcast, b)
	why := m.NewVariableOf(elements.Float32, []int{hiddenSize, outputSize},
		namePrefix+".Why", VisibilityPrivate, TrainXavier, float64(hiddenSize))
	bhy := m.NewVariableOf(elements.Float32, []int{outputSize},
		namePrefix+".Bhy", VisibilityPrivate, TrainBroadcast, b)

	// Unrolled loop over the time steps, with the parameters shared.
	outputs := make([]NodeValue, 0, len(inputs))
	for t, xt := range inputs {
		fc1 := f.NewFullyConnectedWith(fmt.Sprintf("%s.fc1.%d", namePrefix, t), ht, whh.Value(), bhh.Value())
		fc2 := f.NewFullyConnectedWith(fmt.Sprintf("%s.fc2.%d", namePrefix, t), xt, wxh.Value(), bxh.Value())
		a := f.NewAdd(fmt.Sprintf("%s.add.%d", namePrefix, t), fc1.Value(), fc2.Value())
		h := f.NewTanh(fmt.Sprintf("%s.tanh.%d", namePrefix, t), a.Value())
		o := f.NewFullyConnectedWith(fmt.Sprintf("%s.out.%d", namePrefix, t), h.Value(), why.Value(), bhy.Value())
		outputs = append(outputs, o.Value())
		ht = h.Value()
	}
	return outputs
}

// NewGRU unrolls a gated recurrent unit over the given time-step inputs:
//
//	Z(t) = sigmoid(Whz*H(t-1) + Wxz*X(t))       update gate
//	R(t) = sigmoid(Whr*H(t-1) + Wxr*X(t))       reset gate
//	U(t) = tanh(Whh*(R(t).H(t-1)) + Wxh*X(t))
//	H(t) = Z(t).H(t-1) + (1-Z(t)).U(t)
//	O(t) = Why*H(t)
//
// It returns one output value per time step, each shaped
// [batchSize, outputSize].
func (f *Function) NewGRU(namePrefix string, inputs []NodeValue, batchSize, hiddenSize, outputSize int) []NodeValue {
	inputSize := rnnInputSize(namePrefix, inputs)
	m := f.module

	hInit := m.NewVariableOf(elements.Float32, []int{batchSize, hiddenSize},
		"initial_state", VisibilityPublic, TrainNone, 0)
	ht := hInit.Value()

	const bUpdate = 0.1
	wxz := m.NewVariableOf(elements.Float32, []int{inputSize, hiddenSize},
		namePrefix+".Wxz", VisibilityPrivate, TrainXavier, float64(inputSize))
	whz := m.NewVariableOf(elements.Float32, []int{hiddenSize, hiddenSize},
		namePrefix+".Whz", VisibilityPrivate, TrainXavier, float64(hiddenSize))
	bz1 := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".bz1", VisibilityPrivate, TrainBroadcast, bUpdate)
	bz2 := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".bz2", VisibilityPrivate, TrainBroadcast, bUpdate)

	// The reset gate starts biased towards keeping the previous state.
	const bReset = -1.0
	wxr := m.NewVariableOf(elements.Float32, []int{inputSize, hiddenSize},
		namePrefix+".Wxr", VisibilityPrivate, TrainXavier, float64(inputSize))
	whr := m.NewVariableOf(elements.Float32, []int{hiddenSize, hiddenSize},
		namePrefix+".Whr", VisibilityPrivate, TrainXavier, float64(hiddenSize))
	br1 := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".br1", VisibilityPrivate, TrainBroadcast, bReset)
	br2 := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".br2", VisibilityPrivate, TrainBroadcast, bReset)

	const b = 0.1
	wxh := m.NewVariableOf(elements.Float32, []int{inputSize, hiddenSize},
		namePrefix+".Wxh", VisibilityPrivate, TrainXavier, float64(inputSize))
	whh := m.NewVariableOf(elements.Float32, []int{hiddenSize, hiddenSize},
		namePrefix+".Whh", VisibilityPrivate, TrainXavier, float64(hiddenSize))
	bh1 := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".bh1", VisibilityPrivate, TrainBroadcast, b)
	bh2 := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".bh2", VisibilityPrivate, TrainBroadcast, b)

	why := m.NewVariableOf(elements.Float32, []int{hiddenSize, outputSize},
		namePrefix+".Why", VisibilityPrivate, TrainXavier, float64(hiddenSize))
	by := m.NewVariableOf(elements.Float32, []int{outputSize},
		namePrefix+".by", VisibilityPrivate, TrainBroadcast, b)

	ones := m.NewVariableOf(elements.Float32, []int{batchSize, hiddenSize},
		namePrefix+".ones", VisibilityPrivate, TrainNone, 0)
	ones.Payload().Fill(1.0)

	outputs := make([]NodeValue, 0, len(inputs))
	for t, xt := range inputs {
		zt := f.NewSigmoid(fmt.Sprintf("%s.sigmoid1.%d", namePrefix, t),
			f.NewAdd(fmt.Sprintf("%s.add1.%d", namePrefix, t),
				f.NewFullyConnectedWith(fmt.Sprintf("%s.fc1.%d", namePrefix, t), ht, whz.Value(), bz1.Value()).Value(),
				f.NewFullyConnectedWith(fmt.Sprintf("%s.fc2.%d", namePrefix, t), xt, wxz.Value(), bz2.Value()).Value()).Value())

		rt := f.NewSigmoid(fmt.Sprintf("%s.sigmoid2.%d", namePrefix, t),
			f.NewAdd(fmt.Sprintf("%s.add2.%d", namePrefix, t),
				f.NewFullyConnectedWith(fmt.Sprintf("%s.fc3.%d", namePrefix, t), ht, whr.Value(), br1.Value()).Value(),
				f.NewFullyConnectedWith(fmt.Sprintf("%s.fc4.%d", namePrefix, t), xt, wxr.Value(), br2.Value()).Value()).Value())

		zht := f.NewMul(fmt.Sprintf("%s.zh.%d", namePrefix, t), zt.Value(), ht)
		oneMinusZt := f.NewSub(fmt.Sprintf("%s.1-z.%d", namePrefix, t), ones.Value(), zt.Value())
		rht := f.NewMul(fmt.Sprintf("%s.rh.%d", namePrefix, t), rt.Value(), ht)

		ut := f.NewTanh(fmt.Sprintf("%s.tanh1.%d", namePrefix, t),
			f.NewAdd(fmt.Sprintf("%s.add3.%d", namePrefix, t),
				f.NewFullyConnectedWith(fmt.Sprintf("%s.fc5.%d", namePrefix, t), rht.Value(), whh.Value(), bh1.Value()).Value(),
				f.NewFullyConnectedWith(fmt.Sprintf("%s.fc6.%d", namePrefix, t), xt, wxh.Value(), bh2.Value()).Value()).Value())

		oneMinusZtUt := f.NewMul(fmt.Sprintf("%s.1-zu.%d", namePrefix, t), oneMinusZt.Value(), ut.Value())
		h := f.NewAdd(fmt.Sprintf("%s.H.%d", namePrefix, t), zht.Value(), oneMinusZtUt.Value())
		ht = h.Value()

		o := f.NewFullyConnectedWith(fmt.Sprintf("%s.out.%d", namePrefix, t), ht, why.Value(), by.Value())
		outputs = append(outputs, o.Value())
	}
	return outputs
}

// NewLSTM unrolls a long short-term memory layer over the given time-step
// inputs:
//
//	F(t) = sigmoid(Whf*H(t-1) + Wxf*X(t))       forget gate
//	I(t) = sigmoid(Whi*H(t-1) + Wxi*X(t))       input gate
//	O(t) = sigmoid(Who*H(t-1) + Wxo*X(t))       output gate
//	C(t) = F(t).C(t-1) + I(t).tanh(Whc*H(t-1) + Wxc*X(t))
//	H(t) = O(t).tanh(C(t))
//
// The hidden and cell states start as public, zero-initialized variables.
// It returns one output value per time step, each shaped
// [batchSize, outputSize].
func (f *Function) NewLSTM(namePrefix string, inputs []NodeValue, batchSize, hiddenSize, outputSize int) []NodeValue {
	inputSize := rnnInputSize(namePrefix, inputs)
	m := f.module

	hInit := m.NewVariableOf(elements.Float32, []int{batchSize, hiddenSize},
		"initial_hidden_state", VisibilityPublic, TrainNone, 0)
	ht := hInit.Value()
	cInit := m.NewVariableOf(elements.Float32, []int{batchSize, hiddenSize},
		"initial_cell_state", VisibilityPublic, TrainNone, 0)
	ct := cInit.Value()

	// The forget gate starts biased towards remembering.
	const bForget = 1.0
	wxf := m.NewVariableOf(elements.Float32, []int{inputSize, hiddenSize},
		namePrefix+".Wxf", VisibilityPrivate, TrainXavier, float64(inputSize))
	whf := m.NewVariableOf(elements.Float32, []int{hiddenSize, hiddenSize},
		namePrefix+".Whf", VisibilityPrivate, TrainXavier, float64(hiddenSize))
	bf1 := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".bf1", VisibilityPrivate, TrainBroadcast, bForget)
	bf2 := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".bf2", VisibilityPrivate, TrainBroadcast, bForget)

	const bInput = 0.1
	wxi := m.NewVariableOf(elements.Float32, []int{inputSize, hiddenSize},
		namePrefix+".Wxi", VisibilityPrivate, TrainXavier, float64(inputSize))
	whi := m.NewVariableOf(elements.Float32, []int{hiddenSize, hiddenSize},
		namePrefix+".Whi", VisibilityPrivate, TrainXavier, float64(hiddenSize))
	bi1 := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".bi1", VisibilityPrivate, TrainBroadcast, bInput)
	bi2 := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".bi2", VisibilityPrivate, TrainBroadcast, bInput)

	const bOutput = 0.1
	wxo := m.NewVariableOf(elements.Float32, []int{inputSize, hiddenSize},
		namePrefix+".Wxo", VisibilityPrivate, TrainXavier, float64(inputSize))
	who := m.NewVariableOf(elements.Float32, []int{hiddenSize, hiddenSize},
		namePrefix+".Who", VisibilityPrivate, TrainXavier, float64(hiddenSize))
	bo1 := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".bo1", VisibilityPrivate, TrainBroadcast, bOutput)
	bo2 := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".bo2", VisibilityPrivate, TrainBroadcast, bOutput)

	const bCell = 0.1
	wxc := m.NewVariableOf(elements.Float32, []int{inputSize, hiddenSize},
		namePrefix+".Wxc", VisibilityPrivate, TrainXavier, float64(inputSize))
	whc := m.NewVariableOf(elements.Float32, []int{hiddenSize, hiddenSize},
		namePrefix+".Whc", VisibilityPrivate, TrainXavier, float64(hiddenSize))
	bc1 := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".bc1", VisibilityPrivate, TrainBroadcast, bCell)
	bc2 := m.NewVariableOf(elements.Float32, []int{hiddenSize},
		namePrefix+".bc2", VisibilityPrivate, TrainBroadcast, bCell)

	const b = 0.1
	why := m.NewVariableOf(elements.Float32, []int{hiddenSize, outputSize},
		namePrefix+".Why", VisibilityPrivate, TrainXavier, float64(hiddenSize))
	by := m.NewVariableOf(elements.Float32, []int{outputSize},
		namePrefix+".by", VisibilityPrivate, TrainBroadcast, b)

	outputs := make([]NodeValue, 0, len(inputs))
	for t, xt := range inputs {
		ft := f.NewSigmoid(fmt.Sprintf("%s.sigmoid1.%d", namePrefix, t),
			f.NewAdd(fmt.Sprintf("%s.add1.%d", namePrefix, t),
				f.NewFullyConnectedWith(fmt.Sprintf("%s.fc1.%d", namePrefix, t), ht, whf.Value(), bf1.Value()).Value(),
				f.NewFullyConnectedWith(fmt.Sprintf("%s.fc2.%d", namePrefix, t), xt, wxf.Value(), bf2.Value()).Value()).Value())

		it := f.NewSigmoid(fmt.Sprintf("%s.sigmoid2.%d", namePrefix, t),
			f.NewAdd(fmt.Sprintf("%s.add2.%d", namePrefix, t),
				f.NewFullyConnectedWith(fmt.Sprintf("%s.fc3.%d", namePrefix, t), ht, whi.Value(), bi1.Value()).Value(),
				f.NewFullyConnectedWith(fmt.Sprintf("%s.fc4.%d", namePrefix, t), xt, wxi.Value(), bi2.Value()).Value()).Value())

		ot := f.NewSigmoid(fmt.Sprintf("%s.sigmoid3.%d", namePrefix, t),
			f.NewAdd(fmt.Sprintf("%s.add3.%d", namePrefix, t),
				f.NewFullyConnectedWith(fmt.Sprintf("%s.fc5.%d", namePrefix, t), ht, who.Value(), bo1.Value()).Value(),
				f.NewFullyConnectedWith(fmt.Sprintf("%s.fc6.%d", namePrefix, t), xt, wxo.Value(), bo2.Value()).Value()).Value())

		crt := f.NewTanh(fmt.Sprintf("%s.tanh1.%d", namePrefix, t),
			f.NewAdd(fmt.Sprintf("%s.add4.%d", namePrefix, t),
				f.NewFullyConnectedWith(fmt.Sprintf("%s.fc7.%d", namePrefix, t), ht, whc.Value(), bc1.Value()).Value(),
				f.NewFullyConnectedWith(fmt.Sprintf("%s.fc8.%d", namePrefix, t), xt, wxc.Value(), bc2.Value()).Value()).Value())

		c := f.NewAdd(fmt.Sprintf("%s.C.%d", namePrefix, t),
			f.NewMul(fmt.Sprintf("%s.mul1.%d", namePrefix, t), ft.Value(), ct).Value(),
			f.NewMul(fmt.Sprintf("%s.mul2.%d", namePrefix, t), it.Value(), crt.Value()).Value())
		ct = c.Value()

		h := f.NewMul(fmt.Sprintf("%s.H.%d", namePrefix, t), ot.Value(),
			f.NewTanh(fmt.Sprintf("%s.tanh2.%d", namePrefix, t), ct).Value())
		ht = h.Value()

		o := f.NewFullyConnectedWith(fmt.Sprintf("%s.out.%d", namePrefix, t), ht, why.Value(), by.Value())
		outputs = append(outputs, o.Value())
	}
	return outputs
}
