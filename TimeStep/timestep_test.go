package TimeStep

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofv/utils"
)

func TestParallelMin(t *testing.T) {
	{ // Empty input is the identity of the reduction
		assert.Equal(t, math.MaxFloat64, ParallelMin(nil, 4))
		assert.Equal(t, math.MaxFloat64, ParallelMin([]float64{}, 0))
	}
	{ // Chunking and ordering never change the result
		r := rand.New(rand.NewSource(42))
		for _, n := range []int{1, 2, 7, 31, 100, 1001} {
			vals := make([]float64, n)
			seqMin := math.MaxFloat64
			for i := range vals {
				vals[i] = 1.e-3 + 10*r.Float64()
				seqMin = math.Min(seqMin, vals[i])
			}
			for _, np := range []int{1, 2, 3, 8, 32} {
				assert.Equal(t, seqMin, PartitionedMin(vals, utils.NewPartitionMap(np, n)))
			}
			// Reduce uneven chunks one after another, as an engine handing over partial collections would
			r.Shuffle(n, func(i, j int) { vals[i], vals[j] = vals[j], vals[i] })
			combined := math.MaxFloat64
			for lo := 0; lo < n; {
				hi := lo + 1 + r.Intn(n-lo)
				combined = math.Min(combined, ParallelMin(vals[lo:hi], 3))
				lo = hi
			}
			assert.Equal(t, seqMin, combined)
		}
	}
}

func TestFixed(t *testing.T) {
	{ // Construction
		_, err := NewFixed(0, 10, 1)
		assert.Error(t, err)
		_, err = NewFixed(math.Inf(1), 10, 1)
		assert.Error(t, err)
		_, err = NewFixed(0.1, -1, 1)
		assert.Error(t, err)
	}
	f, err := NewFixed(0.1, 5, 2)
	require.NoError(t, err)
	assert.True(t, f.IsConstant())
	{ // Forcing a different step is rejected, within tolerance is accepted
		err = f.Set(0.5)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrStepMismatch))
		var sme *StepMismatchError
		require.True(t, errors.As(err, &sme))
		assert.Equal(t, 0.1, sme.Fixed)
		assert.Equal(t, 0.5, sme.Requested)
		assert.Equal(t, "fixed time step 1.00e-01 cannot be set to 5.00e-01", err.Error())
		assert.NoError(t, f.Set(0.1+1.e-10))
		assert.ErrorIs(t, f.Set(math.NaN()), ErrStepMismatch)
		assert.Equal(t, 0.1, f.Value())
	}
	{ // Accumulation only happens between Reset and Finalize
		assert.ErrorIs(t, f.Accumulate([]float64{1}), ErrNotAccumulating)
		f.Reset()
		assert.Equal(t, Accumulating, f.Phase())
		require.NoError(t, f.Accumulate([]float64{0.4, 0.3}))
		require.NoError(t, f.Accumulate([]float64{0.2, 0.9}))
		f.Finalize()
		assert.Equal(t, Finalized, f.Phase())
		assert.ErrorIs(t, f.Accumulate([]float64{0.01}), ErrNotAccumulating)
		assert.Equal(t, 0.2, f.Bound())
		assert.Equal(t, 0.1, f.Value())
		assert.Equal(t, 0.1, f.Min())
		assert.Equal(t, 0.1, f.Max())
		assert.Equal(t, "1.00e-01 (cfl=5.00e-01)", f.String())
		assert.Equal(t, []float64{0.1, 0.1, 0.1, 0.1, 0.1}, f.Steps(nil))
	}
	{ // Reset clears the running bound
		f.Reset()
		assert.Equal(t, math.MaxFloat64, f.Bound())
		assert.Equal(t, "1.00e-01 (cfl=0.00e+00)", f.String())
	}
}

func TestCFL(t *testing.T) {
	_, err := NewCFL(-1, 3, 1)
	assert.Error(t, err)
	c, err := NewCFL(0.5, 3, 4)
	require.NoError(t, err)
	assert.False(t, c.IsConstant())
	{ // The step is the CFL fraction of the smallest bound
		c.Reset()
		require.NoError(t, c.Accumulate([]float64{2, 4, 8}))
		require.NoError(t, c.Accumulate([]float64{1.5}))
		c.Finalize()
		assert.Equal(t, 0.75, c.Value())
		assert.Equal(t, 0.75, c.Min())
		assert.Equal(t, 0.75, c.Max())
		assert.Equal(t, []float64{0.75, 0.75, 0.75}, c.Steps(make([]float64, 1)))
		assert.Equal(t, "7.50e-01 (cfl=5.00e-01)", c.String())
	}
	{ // Any explicit value is accepted until the next Reset
		require.NoError(t, c.Set(0.123))
		assert.Equal(t, 0.123, c.Value())
		c.Reset()
		assert.Equal(t, math.MaxFloat64, c.Value())
		c.Finalize()
	}
	{ // Nothing accumulated and a huge CFL never produce Inf
		big, err := NewCFL(10, 1, 1)
		require.NoError(t, err)
		big.Reset()
		require.NoError(t, big.Accumulate([]float64{math.MaxFloat64 / 2}))
		big.Finalize()
		assert.Equal(t, math.MaxFloat64, big.Value())
	}
}

func TestPolicyInterchange(t *testing.T) {
	f, err := NewFixed(0.01, 4, 1)
	require.NoError(t, err)
	c, err := NewCFL(0.9, 4, 1)
	require.NoError(t, err)
	bounds := []float64{0.5, 0.02, 0.3, 0.04}
	for _, p := range []Policy{f, c} {
		p.Reset()
		require.NoError(t, p.Accumulate(bounds))
		p.Finalize()
		assert.LessOrEqual(t, p.Min(), p.Max())
		assert.Len(t, p.Steps(nil), 4)
	}
	assert.Equal(t, 0.01, f.Value())
	assert.InDelta(t, 0.018, c.Value(), 1.e-15)
}
