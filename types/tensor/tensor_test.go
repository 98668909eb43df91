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

package tensor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cx-yin/glow/types/elements"
)

func TestFromType(t *testing.T) {
	for _, kind := range []elements.ElemKind{
		elements.Float16, elements.Float32, elements.Float64, elements.Index,
	} {
		tn := FromType(elements.NewType(kind, 2, 3))
		require.Equal(t, 6, tn.Size())
		for ii := 0; ii < 6; ii++ {
			require.Zero(t, tn.At(ii))
		}
	}
	q := FromType(elements.NewQuantizedType(elements.Int8Q, 0.5, 0, 4))
	require.Equal(t, 4, q.Size())
	require.Zero(t, q.At(3))
}

func TestAtSet(t *testing.T) {
	tn := FromType(elements.NewType(elements.Float32, 2, 2))
	tn.Set(0, 1.5)
	tn.Set(3, -2.0)
	require.Equal(t, 1.5, tn.At(0))
	require.Equal(t, -2.0, tn.At(3))
	require.Panics(t, func() { tn.At(4) })
	require.Panics(t, func() { tn.Set(-1, 0) })

	// Integer kinds truncate.
	q := FromType(elements.NewQuantizedType(elements.Int8Q, 1.0, 0, 2))
	q.Set(0, 3.7)
	require.Equal(t, 3.0, q.At(0))

	// Float16 round-trips through the half-precision encoding.
	h := FromType(elements.NewType(elements.Float16, 2))
	h.Set(0, 0.5)
	h.Set(1, -1.25)
	require.Equal(t, 0.5, h.At(0))
	require.Equal(t, -1.25, h.At(1))
}

func TestFillAndZero(t *testing.T) {
	tn := FromType(elements.NewType(elements.Float64, 5))
	tn.Fill(0.1)
	for ii := 0; ii < 5; ii++ {
		require.Equal(t, 0.1, tn.At(ii))
	}
	tn.Zero()
	for ii := 0; ii < 5; ii++ {
		require.Zero(t, tn.At(ii))
	}
}

func TestInitXavier(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tn := FromType(elements.NewType(elements.Float32, 100))
	const fanIn = 25
	tn.InitXavier(rng, fanIn)

	bound := math.Sqrt(3.0 / float64(fanIn))
	var notZero bool
	for ii := 0; ii < tn.Size(); ii++ {
		v := tn.At(ii)
		require.LessOrEqual(t, math.Abs(v), bound)
		notZero = notZero || v != 0
	}
	require.True(t, notZero)

	require.Panics(t, func() { tn.InitXavier(rng, 0) })
	idx := FromType(elements.NewType(elements.Index, 4))
	require.Panics(t, func() { idx.InitXavier(rng, fanIn) })
}
