package services

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// TaskRunner dispatches request work to background goroutines while keeping
// completion observable: handlers acknowledge the caller immediately, the
// entrypoint waits on the runner before the execution environment freezes,
// and tests wait deterministically instead of racing a fire-and-forget call.
type TaskRunner struct {
	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

// NewTaskRunner creates an empty runner.
func NewTaskRunner() *TaskRunner {
	return &TaskRunner{}
}

// Go runs fn on a new goroutine. Failures and panics are recorded and
// logged; they do not propagate to the caller of Go. Each run gets an id so
// concurrent runs of the same task are distinguishable in the logs.
func (r *TaskRunner) Go(name string, fn func() error) {
	runID := uuid.NewString()
	log.Printf("Dispatching task %s (run %s)", name, runID)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("task %s panicked: %v", name, rec)
				log.Printf("ERROR: run %s: %v", runID, err)
				r.record(err)
			}
		}()

		if err := fn(); err != nil {
			log.Printf("ERROR: task %s (run %s) failed: %v", name, runID, err)
			r.record(fmt.Errorf("task %s: %w", name, err))
			return
		}
		log.Printf("Task %s (run %s) completed", name, runID)
	}()
}

func (r *TaskRunner) record(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

// Wait blocks until every dispatched task settles and returns the joined
// task errors, if any. Background failures are not reported to the original
// caller; this is for logging and tests.
func (r *TaskRunner) Wait() error {
	r.wg.Wait()
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.Join(r.errs...)
}
