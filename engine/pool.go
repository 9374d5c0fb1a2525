package engine

import (
	"sync"
	"sync/atomic"
)

// workerPool keeps team members warm between parallel regions.
// A task is handed to an idle worker when one is waiting; otherwise it runs
// on a fresh goroutine. Tasks are never queued, so a team can never wait on
// a member stuck behind another team's barrier.
//
//nolint:govet // Field order optimized for functionality over memory
type workerPool struct {
	tasks    chan func()
	stop     chan struct{}
	overflow atomic.Uint64
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func newWorkerPool(workers int) *workerPool {
	w := &workerPool{
		tasks: make(chan func()),
		stop:  make(chan struct{}),
	}
	w.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go w.run()
	}
	return w
}

func (w *workerPool) run() {
	defer w.wg.Done()
	for {
		select {
		case task := <-w.tasks:
			task()
		case <-w.stop:
			return
		}
	}
}

func (w *workerPool) submit(task func()) {
	select {
	case w.tasks <- task:
	default:
		w.overflow.Add(1)
		go task()
	}
}

func (w *workerPool) shutdown() {
	w.stopOnce.Do(func() {
		close(w.stop)
	})
	w.wg.Wait()
}
