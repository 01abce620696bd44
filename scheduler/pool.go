package scheduler

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool is a fixed-size goroutine worker set. Unlike gofem's process-level
// mpi.Rank()/mpi.Size() (one OS process per rank, communication over
// MPI), Pool distributes work across goroutines inside a single process:
// ParallelFor/ParallelInvoke hand contiguous chunks of work to an
// errgroup and block until every chunk finishes or one returns an error.
type Pool struct {
	workers int
}

// New returns a Pool sized to GOMAXPROCS, the way gofem sizes its process
// count from the MPI launcher's -np rather than a runtime guess.
func New() *Pool {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	return &Pool{workers: n}
}

// NewWithWorkers returns a Pool with an explicit worker count, mainly for
// deterministic tests.
func NewWithWorkers(n int) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{workers: n}
}

func (p *Pool) NumWorkers() int { return p.workers }

// ParallelFor splits [0,n) into at most NumWorkers contiguous chunks and
// runs body on each concurrently. n<=0 is a no-op. A single-chunk case
// (n small, or NumWorkers==1) runs inline without spawning goroutines.
func (p *Pool) ParallelFor(n int, body func(lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	workers := p.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return body(0, n)
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	for lo := 0; lo < n; lo += chunk {
		lo := lo
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			return body(lo, hi)
		})
	}
	return g.Wait()
}

// ParallelForIndexed is ParallelFor but also hands each chunk its worker
// index, the index a ThreadLocal is addressed by.
func (p *Pool) ParallelForIndexed(n int, body func(workerID, lo, hi int) error) error {
	if n <= 0 {
		return nil
	}
	workers := p.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		return body(0, 0, n)
	}
	chunk := (n + workers - 1) / workers
	var g errgroup.Group
	workerID := 0
	for lo := 0; lo < n; lo += chunk {
		lo := lo
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		id := workerID
		workerID++
		g.Go(func() error {
			return body(id, lo, hi)
		})
	}
	return g.Wait()
}

// ParallelInvoke runs every fn concurrently and waits for all of them,
// returning the first error encountered (errgroup semantics: all tasks
// still run, only the first error is surfaced, equivalent to spec.md §5's
// "exception captured and rethrown from wait()").
func (p *Pool) ParallelInvoke(fns ...func() error) error {
	var g errgroup.Group
	for _, fn := range fns {
		fn := fn
		g.Go(fn)
	}
	return g.Wait()
}
