package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/piwi3910/LayerFit/internal/model"
	"github.com/sirupsen/logrus"
)

// Coordinator runs subset feasibility checks on a fixed pool of workers.
type Coordinator struct {
	Fitter  *Fitter
	Workers int
	Log     logrus.FieldLogger

	check func(model.Combination) (model.Layout, bool)
}

func NewCoordinator(fitter *Fitter, workers int, log logrus.FieldLogger) *Coordinator {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Coordinator{Fitter: fitter, Workers: workers, Log: log, check: fitter.Check}
}

// workQueue hands out every candidate exactly once.
type workQueue struct {
	mu         sync.Mutex
	candidates []model.Combination
	next       int
}

func (q *workQueue) pop() (model.Combination, int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.next >= len(q.candidates) {
		return nil, 0, false
	}
	c := q.candidates[q.next]
	q.next++
	return c, q.next, true
}

// resultSet collects feasible candidates from all workers.
type resultSet struct {
	mu     sync.Mutex
	layers []model.Combination
	seen   map[string]bool
}

func (r *resultSet) add(c model.Combination) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := c.String()
	if r.seen[key] {
		return
	}
	r.seen[key] = true
	r.layers = append(r.layers, c)
}

// FitAll checks every candidate and returns the feasible ones, largest area
// first. Candidates are validated against the inventory before any worker
// starts. A worker panic aborts the stage: all workers are joined and the
// first fault is returned without results.
func (c *Coordinator) FitAll(candidates []model.Combination) ([]model.Combination, error) {
	inv := c.Fitter.Inventory
	for _, cand := range candidates {
		if err := inv.Validate(cand); err != nil {
			return nil, fmt.Errorf("failed to validate candidate %s: %w", cand, err)
		}
	}

	queue := &workQueue{candidates: inv.SortByArea(candidates)}
	results := &resultSet{seen: make(map[string]bool)}

	var (
		wg       sync.WaitGroup
		faultMu  sync.Mutex
		firstErr error
	)
	start := time.Now()
	wg.Add(c.Workers)
	for w := 1; w <= c.Workers; w++ {
		go func(worker int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					faultMu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("worker %d: %v", worker, r)
					}
					faultMu.Unlock()
				}
			}()
			c.work(worker, queue, results, start)
		}(w)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	c.Log.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"feasible":   len(results.layers),
		"elapsed":    time.Since(start).Round(time.Millisecond),
	}).Info("Feasibility check finished")
	return inv.SortByArea(results.layers), nil
}

func (c *Coordinator) work(worker int, queue *workQueue, results *resultSet, start time.Time) {
	for {
		cand, counter, ok := queue.pop()
		if !ok {
			return
		}
		_, feasible := c.check(cand)
		if feasible {
			results.add(cand)
		}
		if counter%100 == 0 {
			c.Log.WithFields(logrus.Fields{
				"worker":   worker,
				"counter":  counter,
				"ids":      cand.String(),
				"feasible": feasible,
				"elapsed":  time.Since(start).Round(time.Second),
			}).Debug("Checked candidate")
		}
	}
}
