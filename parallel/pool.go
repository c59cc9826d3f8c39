package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc queues a task.
	WorkerFunc func(func())
	// WaitFunc blocks until all queued tasks are done. When done is true the
	// pool is shut down afterwards and accepts no more work.
	WaitFunc   func(done bool)
	CancelFunc func()
)

type Pool struct {
	workers sync.WaitGroup
	tasks   sync.WaitGroup
	size    int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		size: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.workers.Go(func() {
				for f := range workChan {
					f()
					pool.tasks.Done()
				}
			})
		}

		pool.Do = func(f func()) {
			pool.tasks.Add(1)
			workChan <- f
		}

		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
		pool.Wait = func(done bool) {
			pool.tasks.Wait()
			if done {
				pool.Cancel()
				pool.workers.Wait()
			}
		}
	}

	return pool
}

// Size is the number of workers, 1 meaning tasks run inline.
func (p *Pool) Size() int {
	return p.size
}
