package pipeline

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/FocuswithJustin/Silversmith/core/ir"
)

// ProgressFunc receives batch progress updates. Calls may arrive from
// multiple goroutines; done is monotonic per call site but calls are
// not ordered across workers.
type ProgressFunc func(done, total int)

// RunBatch processes verses across a worker pool. Verses are
// independent, so no ordering is imposed between them; results are
// recombined by input position, which preserves corpus order
// regardless of completion order. workers <= 0 selects one worker per
// CPU.
func (p *Pipeline) RunBatch(ctx context.Context, verses []*ir.Verse, workers int, onProgress ProgressFunc) ([]*ir.NERExample, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	out := make([]*ir.NERExample, len(verses))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var done atomic.Int64
	total := len(verses)

	for i, v := range verses {
		i, v := i, v
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			out[i] = p.ProcessVerse(v)

			if onProgress != nil {
				onProgress(int(done.Add(1)), total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
