// Package parallel runs per-file tasks on a fixed set of goroutines and
// keeps count of how many of them failed.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Task processes one unit of work, usually one file.
type Task func() error

type Pool struct {
	wg    sync.WaitGroup
	work  chan Task
	close func()

	ok     atomic.Uint64
	failed atomic.Uint64
}

// Start launches numWorkers goroutines; numWorkers < 1 means GOMAXPROCS.
// With a single worker tasks run inline in Go.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{close: func() {}}
	if numWorkers == 1 {
		return pool
	}

	pool.work = make(chan Task, numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for task := range pool.work {
				pool.run(task)
			}
		})
	}
	pool.close = sync.OnceFunc(func() { close(pool.work) })

	return pool
}

func (p *Pool) run(task Task) {
	if err := task(); err != nil {
		p.failed.Add(1)
		return
	}
	p.ok.Add(1)
}

// Go queues task, blocking while all workers are busy. It must not be
// called after Wait.
func (p *Pool) Go(task Task) {
	if p.work == nil {
		p.run(task)
		return
	}
	p.work <- task
}

// Wait stops accepting tasks, waits for the queued ones and returns how
// many succeeded and failed.
func (p *Pool) Wait() (ok, failed uint64) {
	p.close()
	p.wg.Wait()
	return p.ok.Load(), p.failed.Load()
}
