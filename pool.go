package skyproj

import (
	"context"
	"runtime"

	"github.com/alitto/pond"
)

// Pool runs fixed-size-chunked batch work across a bounded worker pool.
// Modeled on the teacher's own pond usage in cmd/main.go
// (pond.New(n, 0, pond.MinWorkers(n), pond.Context(ctx))).
type Pool struct {
	pool *pond.WorkerPool
}

// NewPool creates a worker pool sized to the number of available CPUs.
func NewPool() *Pool {
	n := runtime.NumCPU()
	return &Pool{pool: pond.New(n, 0, pond.MinWorkers(n), pond.Context(context.Background()))}
}

// Close stops the pool, waiting for any in-flight chunk to finish.
func (p *Pool) Close() {
	p.pool.StopAndWait()
}

// RunChunks splits n items into contiguous chunks (one per worker) and calls
// work(start, end) for each chunk concurrently, blocking until all chunks
// complete. Partitioning by contiguous index range (rather than by
// completion order) keeps results deterministic regardless of scheduling,
// per spec §5's determinism requirement for any internal parallelism.
func (p *Pool) RunChunks(n int, work func(start, end int)) {
	workers := p.pool.MaxWorkers()
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 0 {
		return
	}

	chunkSize := (n + workers - 1) / workers
	group := p.pool.Group()

	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		s, e := start, end
		group.Submit(func() {
			work(s, e)
		})
	}

	group.Wait()
}
