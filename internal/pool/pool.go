// Package pool implements the fixed-size, phase-barrier thread pool of
// §4.7: one mutex, one condition variable, a monotonically increasing
// phase counter, and a per-worker "last seen phase", driving kernel
// launches in lockstep across a fixed set of goroutines standing in for
// the source's OS threads.
package pool

import (
	"runtime"
	"sync"

	"github.com/itohio/cputensor/internal/kernel/dispatch"
	"github.com/itohio/cputensor/tensor"
)

// Option configures a Pool at construction.
type Option func(*config)

type config struct {
	workers int
}

// WithWorkers sets the fixed worker count. 0 or unset means hardware
// concurrency (runtime.GOMAXPROCS(0)), matching the device descriptor's
// thread_count == 0 convention (§6).
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

type job struct {
	workerCount int
	node        *tensor.Tensor
	kernel      dispatch.Kernel
}

type workerState struct {
	phase uint64
}

// Pool is the fixed-size worker pool. A nil *Pool is the single-threaded
// fast path §4.7 step 1 describes explicitly: ParallelCompute runs the
// kernel inline with payload{0, 1, node} and returns.
type Pool struct {
	mu   sync.Mutex
	cond *sync.Cond

	interrupt    bool
	phase        uint64
	numCompleted uint64
	numWorkers   uint32

	job     job
	workers []*workerState

	wg sync.WaitGroup
}

// New builds and starts a pool. Workers 1..N-1 each get a dedicated
// goroutine blocked on the condition variable; worker 0 is always the
// calling goroutine of ParallelCompute, never a separate goroutine.
func New(opts ...Option) *Pool {
	cfg := config{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers == 0 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}
	if cfg.workers < 1 {
		cfg.workers = 1
	}

	p := &Pool{numWorkers: uint32(cfg.workers)}
	p.cond = sync.NewCond(&p.mu)
	p.workers = make([]*workerState, cfg.workers)
	for i := range p.workers {
		p.workers[i] = &workerState{}
	}

	p.wg.Add(cfg.workers - 1)
	for i := 1; i < cfg.workers; i++ {
		go p.runWorker(i)
	}
	return p
}

// NumWorkers reports the pool's fixed worker count. A nil Pool has one
// (implicit) worker.
func (p *Pool) NumWorkers() int {
	if p == nil {
		return 1
	}
	return int(p.numWorkers)
}

// ParallelCompute runs kernel against node across every worker, per the
// launch protocol of §4.7:
//  1. absent pool (or a 1-worker pool) ⇒ run payload{0,1,node} inline.
//  2. else, under the mutex: publish the job, reset num_completed, bump
//     phase; unlock.
//  3. broadcast to wake sleeping workers.
//  4. run worker 0's share inline, then increment num_completed (and
//     broadcast if that was the last worker).
//  5. wait on the condition variable until num_completed == num_workers.
func (p *Pool) ParallelCompute(kernel dispatch.Kernel, node *tensor.Tensor) {
	if p == nil || p.numWorkers <= 1 {
		kernel(0, 1, node)
		return
	}

	p.mu.Lock()
	p.job = job{workerCount: int(p.numWorkers), node: node, kernel: kernel}
	p.numCompleted = 0
	p.phase++
	p.workers[0].phase = p.phase
	p.mu.Unlock()

	p.cond.Broadcast()

	kernel(0, int(p.numWorkers), node)

	p.mu.Lock()
	p.numCompleted++
	if p.numCompleted == uint64(p.numWorkers) {
		p.cond.Broadcast()
	}
	for p.numCompleted != uint64(p.numWorkers) {
		p.cond.Wait()
	}
	p.mu.Unlock()
}

// runWorker is the loop of §4.7's "Worker loop": wait for a new phase or
// shutdown, run the dispatched kernel if there is one, signal completion,
// repeat.
func (p *Pool) runWorker(idx int) {
	defer p.wg.Done()
	w := p.workers[idx]

	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		for !p.interrupt && p.phase <= w.phase {
			p.cond.Wait()
		}
		if p.interrupt {
			return
		}
		w.phase = p.phase
		cur := p.job
		p.mu.Unlock()

		if cur.node != nil {
			cur.kernel(idx, cur.workerCount, cur.node)
		}

		p.mu.Lock()
		p.numCompleted++
		if p.numCompleted == uint64(p.numWorkers) {
			p.cond.Broadcast()
		}
	}
}

// Quiescent reports whether the pool is at rest: every completion has been
// observed and every worker's last-seen phase matches the pool's phase.
// Exposed for tests of the pool-safety property (§8). A nil or single-worker
// Pool runs every launch inline and is always at rest.
func (p *Pool) Quiescent() bool {
	if p == nil || p.numWorkers <= 1 {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.numCompleted != uint64(p.numWorkers) {
		return false
	}
	for _, w := range p.workers {
		if w.phase != p.phase {
			return false
		}
	}
	return true
}

// Close shuts the pool down: sets interrupt, bumps the phase so every
// worker's wait condition re-evaluates, wakes everyone, and joins every
// spawned goroutine. Safe to call on a nil or single-worker Pool (no-op).
func (p *Pool) Close() {
	if p == nil || p.numWorkers <= 1 {
		return
	}
	p.mu.Lock()
	p.interrupt = true
	p.phase++
	p.mu.Unlock()
	p.cond.Broadcast()
	p.wg.Wait()
}
