package analysis

import (
	"context"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
)

// PointsType selects how FrequencyGrid spaces its points.
type PointsType int

const (
	Decade PointsType = iota
	Octave
	Linear
)

// FrequencyGrid generates n points from start to stop (inclusive),
// spaced per kind. It is the idiomatic-Go re-expression of toy-spice's
// generateFrequencyPoints (pkg/analysis/ac.go), generalised from an
// analysis-private helper to a reusable, pure function.
func FrequencyGrid(start, stop float64, n int, kind PointsType) []float64 {
	points := make([]float64, n)
	if n == 1 {
		points[0] = start
		return points
	}

	switch kind {
	case Octave:
		logStart, logStop := math.Log2(start), math.Log2(stop)
		step := (logStop - logStart) / float64(n-1)
		for i := range points {
			points[i] = math.Pow(2, logStart+float64(i)*step)
		}
	case Linear:
		step := (stop - start) / float64(n-1)
		for i := range points {
			points[i] = start + float64(i)*step
		}
	default: // Decade
		logStart, logStop := math.Log10(start), math.Log10(stop)
		step := (logStop - logStart) / float64(n-1)
		for i := range points {
			points[i] = math.Pow(10, logStart+float64(i)*step)
		}
	}
	return points
}

// ProgressFunc receives the count of completed frequency points and the
// sweep total. It is called at granularity >= 1% of the sweep, regardless
// of how many workers are completing points concurrently.
type ProgressFunc func(done, total int)

// sweep fans workFn out across freqs using a worker per available CPU,
// bounded by the sweep length. Each result is written directly to its
// frequency's index, so the returned slice is in sweep order regardless of
// completion order or worker count.
//
// If any invocation of workFn returns an error, the remaining points are
// abandoned (the shared ctx is cancelled) and that error is returned. If
// ctx is cancelled externally mid-sweep, ErrCancelled is returned instead.
func sweep[T any](ctx context.Context, freqs []float64, workFn func(ctx context.Context, f float64) (T, error), onProgress ProgressFunc) ([]T, error) {
	n := len(freqs)
	results := make([]T, n)

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		next     int64
		done     int64
		lastPct  int64 = -1
		mu       sync.Mutex
		firstErr error
		wg       sync.WaitGroup
	)

	worker := func() {
		defer wg.Done()
		for {
			i := int(atomic.AddInt64(&next, 1) - 1)
			if i >= n {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}

			v, err := workFn(ctx, freqs[i])
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				cancel()
				return
			}
			results[i] = v

			d := atomic.AddInt64(&done, 1)
			if onProgress != nil {
				pct := d * 100 / int64(n)
				for {
					last := atomic.LoadInt64(&lastPct)
					if pct <= last {
						break
					}
					if atomic.CompareAndSwapInt64(&lastPct, last, pct) {
						onProgress(int(d), n)
						break
					}
				}
			}
		}
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go worker()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if ctx.Err() != nil {
		return nil, ErrCancelled
	}
	return results, nil
}
