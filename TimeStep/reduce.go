package TimeStep

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gofv/utils"
)

// ParallelMin returns the minimum of vals, or math.MaxFloat64 when vals is empty.
// Each go routine reduces its own bucket into a private slot, the slots are combined after
// the wait.
func ParallelMin(vals []float64, ProcLimit int) (minVal float64) {
	var (
		pm = utils.NewPartitionMap(utils.ParallelDegree(ProcLimit, len(vals)), len(vals))
	)
	return PartitionedMin(vals, pm)
}

// PartitionedMin is ParallelMin over a caller supplied partition of vals
func PartitionedMin(vals []float64, pm *utils.PartitionMap) (minVal float64) {
	var (
		NP       = pm.ParallelDegree
		partials = make([]float64, NP)
		wg       = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			partials[np] = math.MaxFloat64
			kMin, kMax := pm.GetBucketRange(np)
			if kMax > kMin {
				partials[np] = math.Min(partials[np], floats.Min(vals[kMin:kMax]))
			}
		}(np)
	}
	wg.Wait()
	minVal = math.MaxFloat64
	for _, p := range partials {
		minVal = math.Min(minVal, p)
	}
	return
}
