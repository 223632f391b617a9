// batch
//
// Independent recoupment runs spread over a bounded number of goroutines
/*
Copyright 2021 Bruce Golden and Matt Spangler

Permission is hereby granted, free of charge, to any person obtaining a copy of
this software and associated documentation files (the "Software"), to deal in
the Software without restriction, including without limitation the rights to
use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
of the Software, and to permit persons to whom the Software is furnished to do
so, subject to the following conditions:
The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.
*/
package recoup

import (
	"math"
	"runtime"
	"time"

	"github.com/blgolden/animalProd/facility"

	"github.com/remeh/sizedwaitgroup"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

type BatchResult struct {
	Result *Result // may be set together with Err
	Err    error
}

// Run every request on its own facility. Results come back in request
// order. workers <= 0 uses one goroutine per CPU.
func RunBatch(ctx *Context, templates map[string]facility.Template, reqs []Request, workers int) []BatchResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	start := time.Now()

	out := make([]BatchResult, len(reqs))
	swg := sizedwaitgroup.New(workers)
	for i := range reqs {
		swg.Add()
		go func(i int, child *Context) {
			defer swg.Done()
			res, err := Run(child, templates, reqs[i])
			out[i] = BatchResult{Result: res, Err: err}
		}(i, ctx.Child())
	}
	swg.Wait()

	ctx.logger().Info("batch finished",
		zap.Int("runs", len(reqs)),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)))
	return out
}

// Spread of the outcomes of a batch
type Summary struct {
	Runs            int
	BrokeEven       int
	MeanSlope       float64
	StdDevSlope     float64
	MeanBreakEven   float64 // over the runs that broke even
	StdDevBreakEven float64
}

func Summarize(results []BatchResult) Summary {
	var s Summary
	var slopes, months []float64
	for _, r := range results {
		if r.Result == nil {
			continue
		}
		s.Runs++
		slopes = append(slopes, r.Result.Slope)
		if r.Result.BrokeEven {
			s.BrokeEven++
			months = append(months, float64(r.Result.BreakEvenMonth))
		}
	}
	s.MeanSlope, s.StdDevSlope = meanStdDev(slopes)
	s.MeanBreakEven, s.StdDevBreakEven = meanStdDev(months)
	return s
}

func meanStdDev(x []float64) (float64, float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	mean, variance := stat.MeanVariance(x, nil)
	return mean, math.Sqrt(variance)
}
