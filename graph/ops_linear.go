package graph

import (
	. "github.com/gomlx/exceptions"
)

type fullyConnectedAttrs struct{}

func (a *fullyConnectedAttrs) Kind() NodeKind { return KindFullyConnected }
func (a *fullyConnectedAttrs) String() string { return "" }

type matMulAttrs struct{}

func (a *matMulAttrs) Kind() NodeKind { return KindMatMul }
func (a *matMulAttrs) String() string { return "" }

type batchedReduceAddAttrs struct{}

func (a *batchedReduceAddAttrs) Kind() NodeKind { return KindBatchedReduceAdd }
func (a *batchedReduceAddAttrs) String() string { return "" }

type batchedAddAttrs struct{}

func (a *batchedAddAttrs) Kind() NodeKind { return KindBatchedAdd }
func (a *batchedAddAttrs) String() string { return "" }

// NewFullyConnected appends a fully-connected layer with outDepth output
// units. The input's trailing dimensions are flattened; the weights
// ([flattenedSize, outDepth], fan-in-scaled random init) and bias
// ([outDepth], constant 0.1) variables are allocated on the module. Output
// is [batch, outDepth].
func (f *Function) NewFullyConnected(name string, input NodeValue, outDepth int) *Node {
	f.validateInputs(input)
	t := input.Type()
	batch, fanIn := flattenCdr(t.Dims)

	weights := f.module.NewVariableOf(t.Kind, []int{fanIn, outDepth},
		"weights", VisibilityPrivate, TrainXavier, float64(fanIn))
	bias := f.module.NewVariableOf(t.Kind, []int{outDepth},
		"bias", VisibilityPrivate, TrainBroadcast, 0.1)

	outTy := f.module.UniqueTypeOf(t.Kind, batch, outDepth)
	return f.newNode(name, &fullyConnectedAttrs{},
		[]NodeValue{input, weights.Value(), bias.Value()},
		[]string{"Input", "Weights", "Bias"},
		[]TypeRef{outTy}, []string{"Result"})
}

// NewFullyConnectedWith appends a fully-connected layer with
// caller-supplied weights and bias. The weight rows must match the
// flattened trailing size of the input; the output is [batch, biasSize].
func (f *Function) NewFullyConnectedWith(name string, input, weights, bias NodeValue) *Node {
	f.validateInputs(input, weights, bias)
	t := input.Type()
	batch, fanIn := flattenCdr(t.Dims)
	if weights.Type().Rank() != 2 || weights.Type().Dims[0] != fanIn {
		Panicf("NewFullyConnectedWith(%q): weights %s do not match flattened input size %d",
			name, weights.Type(), fanIn)
	}
	outDepth := weights.Type().Dims[1]
	if bias.Type().Size() != outDepth {
		Panicf("NewFullyConnectedWith(%q): bias %s does not hold %d elements", name, bias.Type(), outDepth)
	}

	outTy := f.module.UniqueTypeWithNewShape(t, batch, outDepth)
	return f.newNode(name, &fullyConnectedAttrs{},
		[]NodeValue{input, weights, bias},
		[]string{"Input", "Weights", "Bias"},
		[]TypeRef{outTy}, []string{"Result"})
}

// NewFullyConnectedTo is NewFullyConnectedWith with an explicit output
// type, which must be rank-2 with the input's batch dimension.
func (f *Function) NewFullyConnectedTo(name string, input, weights, bias NodeValue, outTy TypeRef) *Node {
	f.validateInputs(input, weights, bias)
	if outTy.Rank() != 2 {
		Panicf("NewFullyConnectedTo(%q): output type %s must be rank-2", name, outTy)
	}
	if outTy.Dims[0] != input.Dims()[0] {
		Panicf("NewFullyConnectedTo(%q): output batch %d does not match input batch %d",
			name, outTy.Dims[0], input.Dims()[0])
	}

	ot := f.module.UniqueType(*outTy)
	return f.newNode(name, &fullyConnectedAttrs{},
		[]NodeValue{input, weights, bias},
		[]string{"Input", "Weights", "Bias"},
		[]TypeRef{ot}, []string{"Result"})
}

// NewMatMul appends a matrix multiplication of rank-2 operands with equal
// element kinds, producing [lhs.rows, rhs.cols].
func (f *Function) NewMatMul(name string, lhs, rhs NodeValue) *Node {
	f.validateInputs(lhs, rhs)
	lt, rt := lhs.Type(), rhs.Type()
	if lt.Rank() != 2 || rt.Rank() != 2 {
		Panicf("NewMatMul(%q): operands must be rank-2, got %s x %s", name, lt, rt)
	}
	if lt.Kind != rt.Kind {
		Panicf("NewMatMul(%q): element kinds differ, %s vs %s", name, lt, rt)
	}
	outTy := f.module.UniqueTypeWithNewShape(lt, lt.Dims[0], rt.Dims[1])
	return f.NewMatMulTo(name, outTy, lhs, rhs)
}

// NewMatMulTo appends a matrix multiplication with an explicit output
// type.
func (f *Function) NewMatMulTo(name string, outTy TypeRef, lhs, rhs NodeValue) *Node {
	f.validateInputs(lhs, rhs)
	ot := f.module.UniqueType(*outTy)
	return f.newNode(name, &matMulAttrs{},
		[]NodeValue{lhs, rhs}, []string{"LHS", "RHS"},
		[]TypeRef{ot}, []string{"Result"})
}

// NewBatchedReduceAdd appends a sum over the batch (first) axis: the output
// drops the leading dimension of the input.
func (f *Function) NewBatchedReduceAdd(name string, batch NodeValue) *Node {
	f.validateInputs(batch)
	bt := batch.Type()
	if bt.Rank() < 1 {
		Panicf("NewBatchedReduceAdd(%q): input %s must have a batch axis", name, bt)
	}
	outTy := f.module.UniqueTypeWithNewShape(bt, bt.Dims[1:]...)
	return f.newNode(name, &batchedReduceAddAttrs{},
		[]NodeValue{batch}, []string{"Batch"},
		[]TypeRef{outTy}, []string{"Result"})
}

// NewBatchedAdd appends a broadcasted addition of a sample to every batch
// element; the sample's shape must match one batch element.
func (f *Function) NewBatchedAdd(name string, batch, sample NodeValue) *Node {
	f.validateInputs(batch, sample)
	bt := batch.Type()
	if bt.Rank() < 1 {
		Panicf("NewBatchedAdd(%q): batch %s must have a batch axis", name, bt)
	}
	if err := sample.Type().CheckDims(bt.Dims[1:]...); err != nil {
		Panicf("NewBatchedAdd(%q): sample does not match one batch element: %v", name, err)
	}
	return f.NewBatchedAddTo(name, bt, batch, sample)
}

// NewBatchedAddTo is NewBatchedAdd with an explicit output type.
func (f *Function) NewBatchedAddTo(name string, outTy TypeRef, batch, sample NodeValue) *Node {
	f.validateInputs(batch, sample)
	ot := f.module.UniqueType(*outTy)
	return f.newNode(name, &batchedAddAttrs{},
		[]NodeValue{batch, sample}, []string{"Batch", "Sample"},
		[]TypeRef{ot}, []string{"Result"})
}
