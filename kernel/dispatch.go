package kernel

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// DefaultBatchSize is the number of entities handed to a worker at a time.
const DefaultBatchSize = 7

const taskQueueSize = 256

// Dispatcher splits an update pass into fixed-size batches and runs them on
// persistent workers that share one task queue. Workers are reused across
// frames; a WaitGroup is the per-pass barrier. With one worker or fewer every
// batch runs inline on the calling goroutine.
//
// A Dispatcher is driven by one goroutine: Go, Wait and Close must not be
// called concurrently.
type Dispatcher struct {
	workers []worker.Worker
	tasks   chan worker.Task
	stop    chan int
	batch   int
	wg      sync.WaitGroup
	taskID  int
}

// NewDispatcher returns a dispatcher with the given worker count and batch
// size. A batch size below 1 uses DefaultBatchSize.
func NewDispatcher(workers, batch int) *Dispatcher {
	if batch < 1 {
		batch = DefaultBatchSize
	}
	d := &Dispatcher{batch: batch}
	if workers > 1 {
		d.tasks = make(chan worker.Task, taskQueueSize)
		d.stop = make(chan int)
		for i := range workers {
			w := worker.NewWorker(i, d.tasks, d.stop, 1*time.Second, nil)
			w.Start()
			d.workers = append(d.workers, w)
		}
	}
	return d
}

// Go schedules fn over [0, n) in batch-sized half-open ranges. The ranges are
// disjoint, so fn may write per-index data without locking.
func (d *Dispatcher) Go(n int, fn func(lo, hi int)) {
	for lo := 0; lo < n; lo += d.batch {
		hi := min(lo+d.batch, n)
		if d.tasks == nil {
			fn(lo, hi)
			continue
		}
		d.wg.Add(1)
		id := d.taskID
		d.taskID++
		d.tasks <- worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer d.wg.Done()
				fn(lo, hi)
				return nil, nil
			},
		}
	}
}

// Wait blocks until every batch scheduled since the last Wait has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
	d.taskID = 0
}

// Close waits for scheduled batches and stops every worker. Batches scheduled
// afterwards run inline. Calling Close twice is a no-op.
// Worker.Stop sends one ID that any worker may consume, so the shared stop
// channel is closed instead.
func (d *Dispatcher) Close() {
	if d.tasks == nil {
		return
	}
	d.Wait()
	close(d.stop)
	d.workers = nil
	d.tasks = nil
	d.stop = nil
}
