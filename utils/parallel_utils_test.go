package utils

import (
	"math"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Test PartitionMap
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				maxK := pm.GetBucketDimension(np)
				histo[maxK]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 2000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Maximum imbalance of 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Buckets are contiguous and cover the whole range
		pm := NewPartitionMap(7, 100)
		var next int
		for np := 0; np < pm.ParallelDegree; np++ {
			kMin, kMax := pm.GetBucketRange(np)
			assert.Equal(t, next, kMin)
			next = kMax
		}
		assert.Equal(t, 100, next)
		assert.Equal(t, 100, pm.GetBucketDimension(-1))
	}
	{ // Degenerate inputs
		pm := NewPartitionMap(0, 10)
		assert.Equal(t, 1, pm.ParallelDegree)
		assert.Equal(t, 10, pm.GetBucketDimension(0))
		pm = NewPartitionMap(4, 0)
		for np := 0; np < 4; np++ {
			assert.Equal(t, 0, pm.GetBucketDimension(np))
		}
	}
}

func TestParallelDegree(t *testing.T) {
	assert.Equal(t, 3, ParallelDegree(3, 100))
	assert.Equal(t, 1, ParallelDegree(8, 4))
	if runtime.NumCPU() <= 1000 {
		assert.Equal(t, runtime.NumCPU(), ParallelDegree(0, 1000))
	}
}
