// package scheduler implements the shared-memory work-distribution layer
// that replaces gofem's MPI rank/size model (spec.md §5): a fixed pool of
// goroutine workers, thread-local scratch, and parallel-for/invoke helpers
// built on golang.org/x/sync/errgroup for first-error propagation.
package scheduler

// Scheduler is the minimal surface the rest of gosph depends on, so that
// equation terms, derivatives and the solver never reference a concrete
// Pool directly (mirroring how gofem's elements take an *mpi.Communicator
// interface rather than a process-global handle).
type Scheduler interface {
	// NumWorkers returns how many goroutines the pool runs work on.
	NumWorkers() int
	// ParallelFor splits [0,n) into NumWorkers contiguous chunks and runs
	// body(lo,hi) on each chunk concurrently, returning the first error
	// any chunk returns (others still run to completion).
	ParallelFor(n int, body func(lo, hi int) error) error
	// ParallelForIndexed is ParallelFor plus the calling chunk's worker
	// index in [0,NumWorkers), so callers can address a ThreadLocal slot
	// without a goroutine-local lookup (spec.md §5's per-thread scratch).
	ParallelForIndexed(n int, body func(workerID, lo, hi int) error) error
	// ParallelInvoke runs every fn concurrently, returning the first
	// error any of them returns.
	ParallelInvoke(fns ...func() error) error
}
