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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cx-yin/glow/types/elements"
)

const (
	rnnTimeSteps  = 3
	rnnBatchSize  = 4
	rnnInputSz    = 10
	rnnHiddenSize = 16
	rnnOutputSize = 5
)

func rnnInputs(m *Module) []NodeValue {
	inputs := make([]NodeValue, rnnTimeSteps)
	for t := range inputs {
		inputs[t] = m.NewVariableOf(elements.Float32, []int{rnnBatchSize, rnnInputSz},
			"x", VisibilityPublic, TrainNone, 0).Value()
	}
	return inputs
}

func TestSimpleRNN(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := m.NewFunction("rnn")

	outputs := f.NewSimpleRNN("rnn", rnnInputs(m), rnnBatchSize, rnnHiddenSize, rnnOutputSize)
	require.Len(t, outputs, rnnTimeSteps)
	for _, o := range outputs {
		require.Equal(t, []int{rnnBatchSize, rnnOutputSize}, o.Dims())
	}
	// 3 time-step inputs, the initial state and the 6 shared parameters.
	require.Len(t, m.Variables(), rnnTimeSteps+1+6)
	f.Verify()
}

func TestGRU(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := m.NewFunction("gru")

	outputs := f.NewGRU("gru", rnnInputs(m), rnnBatchSize, rnnHiddenSize, rnnOutputSize)
	require.Len(t, outputs, rnnTimeSteps)
	for _, o := range outputs {
		require.Equal(t, []int{rnnBatchSize, rnnOutputSize}, o.Dims())
	}
	f.Verify()
}

func TestLSTM(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := m.NewFunction("lstm")

	outputs := f.NewLSTM("lstm", rnnInputs(m), rnnBatchSize, rnnHiddenSize, rnnOutputSize)
	require.Len(t, outputs, rnnTimeSteps)
	for _, o := range outputs {
		require.Equal(t, []int{rnnBatchSize, rnnOutputSize}, o.Dims())
	}
	f.Verify()

	// The unrolled graph still clones cleanly.
	clone := f.Clone("lstm2")
	clone.Verify()
}

func TestRNNEmptyInput(t *testing.T) {
	m := NewModuleWithSeed(42)
	f := m.NewFunction("rnn")
	require.Panics(t, func() { f.NewSimpleRNN("rnn", nil, rnnBatchSize, rnnHiddenSize, rnnOutputSize) })
}
