package util

import (
	"fmt"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"
)

// WorkerPool represents the tool for control
// the execution of go-routine pool.
type WorkerPool interface {
	// Submit queues a function for execution
	// in a separate routine.
	//
	// Implementation must return any error encountered
	// that prevented the function from being queued.
	Submit(func()) error

	// Release releases worker pool resources. All `Submit` calls will
	// finish with ErrPoolClosed. It doesn't wait until all submitted
	// functions have returned so synchronization must be achieved
	// via other means (e.g. sync.WaitGroup).
	Release()
}

// ErrPoolClosed is returned when submitting task to a closed pool.
var ErrPoolClosed = ants.ErrPoolClosed

// NewWorkerPool returns WorkerPool running at most size functions at once.
// Submit blocks while all workers are busy. Pool of size 1 or less runs
// functions in the caller's routine.
func NewWorkerPool(size int) (WorkerPool, error) {
	if size <= 1 {
		return NewPseudoWorkerPool(), nil
	}

	p, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("create pool of %d workers: %w", size, err)
	}

	return p, nil
}

// pseudoWorkerPool represents pseudo worker pool which executes submitted job immediately in the caller's routine.
type pseudoWorkerPool struct {
	closed atomic.Bool
}

// NewPseudoWorkerPool returns new instance of a synchronous worker pool.
func NewPseudoWorkerPool() WorkerPool {
	return &pseudoWorkerPool{}
}

// Submit executes passed function immediately.
func (p *pseudoWorkerPool) Submit(fn func()) error {
	if p.closed.Load() {
		return ErrPoolClosed
	}

	fn()

	return nil
}

// Release implements WorkerPool interface.
func (p *pseudoWorkerPool) Release() {
	p.closed.Store(true)
}
