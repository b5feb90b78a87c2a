// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultJobTimeout = 10 * time.Second
	maxFailures       = 100
)

// Job is one unit of notification work
type Job func(ctx context.Context) error

// Failure records a job that errored, panicked, or was dropped
type Failure struct {
	Name string
	Err  string
	At   time.Time
}

type namedJob struct {
	name string
	run  Job
}

// Dispatcher runs notification jobs on background workers. Each worker owns a
// queue and every job with the same key lands on the same worker, so jobs for
// one session run in the order they were enqueued. Enqueue never blocks;
// failures are logged and kept in a bounded log, never returned.
type Dispatcher struct {
	queues     []chan namedJob
	jobTimeout time.Duration
	workers    sync.WaitGroup

	// closeMu guards the queues against send-after-close
	closeMu sync.RWMutex
	closed  bool

	mu       sync.Mutex
	idle     *sync.Cond
	pending  int
	failures []Failure
	dropped  int
}

// NewDispatcher starts workers goroutines, each consuming its own queue of
// queueSize jobs
func NewDispatcher(workers, queueSize int) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	d := &Dispatcher{
		queues:     make([]chan namedJob, workers),
		jobTimeout: defaultJobTimeout,
	}
	d.idle = sync.NewCond(&d.mu)

	d.workers.Add(workers)
	for i := range d.queues {
		d.queues[i] = make(chan namedJob, queueSize)
		go d.work(d.queues[i])
	}
	return d
}

// Enqueue schedules job on the worker owning key and reports whether it was
// accepted. A full queue or a closed dispatcher drops the job.
func (d *Dispatcher) Enqueue(key, name string, job Job) bool {
	d.closeMu.RLock()
	defer d.closeMu.RUnlock()

	if d.closed {
		d.recordDrop(name, "dispatcher closed")
		return false
	}

	d.mu.Lock()
	d.pending++
	d.mu.Unlock()

	select {
	case d.queues[d.shard(key)] <- namedJob{name: name, run: job}:
		return true
	default:
		d.finish()
		d.recordDrop(name, "queue full")
		return false
	}
}

func (d *Dispatcher) shard(key string) int {
	if len(d.queues) == 1 {
		return 0
	}
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.queues)))
}

func (d *Dispatcher) work(jobs <-chan namedJob) {
	defer d.workers.Done()
	for j := range jobs {
		d.run(j)
		d.finish()
	}
}

func (d *Dispatcher) run(j namedJob) {
	ctx, cancel := context.WithTimeout(context.Background(), d.jobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			d.recordFailure(j.name, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := j.run(ctx); err != nil {
		d.recordFailure(j.name, err)
	}
}

func (d *Dispatcher) finish() {
	d.mu.Lock()
	d.pending--
	if d.pending == 0 {
		d.idle.Broadcast()
	}
	d.mu.Unlock()
}

func (d *Dispatcher) recordFailure(name string, err error) {
	slog.Error("notification failed", "job", name, "error", err)
	d.appendFailure(Failure{Name: name, Err: err.Error(), At: time.Now()})
}

func (d *Dispatcher) recordDrop(name, reason string) {
	slog.Warn("notification dropped", "job", name, "reason", reason)
	d.mu.Lock()
	d.dropped++
	d.mu.Unlock()
	d.appendFailure(Failure{Name: name, Err: reason, At: time.Now()})
}

func (d *Dispatcher) appendFailure(f Failure) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures = append(d.failures, f)
	if len(d.failures) > maxFailures {
		d.failures = d.failures[len(d.failures)-maxFailures:]
	}
}

// Failures returns a copy of the most recent failures, oldest first
func (d *Dispatcher) Failures() []Failure {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Failure, len(d.failures))
	copy(out, d.failures)
	return out
}

// Dropped returns how many jobs were rejected by Enqueue
func (d *Dispatcher) Dropped() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

// Flush blocks until every accepted job has run
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	for d.pending > 0 {
		d.idle.Wait()
	}
	d.mu.Unlock()
}

// Close stops accepting jobs, drains the queues, and waits for the workers
func (d *Dispatcher) Close() {
	d.closeMu.Lock()
	if d.closed {
		d.closeMu.Unlock()
		return
	}
	d.closed = true
	for _, q := range d.queues {
		close(q)
	}
	d.closeMu.Unlock()

	d.workers.Wait()
}
