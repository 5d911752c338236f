// SPDX-License-Identifier: MIT
//
// Copyright © 2018 Kent Gibson <warthog618@gmail.com>.

package ril

import (
	"context"
	"sync"
	"time"
)

// task is work that requires the command channel, run by the queue.
type task func(ctx context.Context)

// entry is a queued task.  abandon, if set, is called in place of the task
// if the queue closes before the task runs.
type entry struct {
	run     task
	abandon func()
}

func (e entry) drop() {
	if e.abandon != nil {
		e.abandon()
	}
}

// taskQueue runs tasks posted from the indication path, one at a time and in
// the order posted.
type taskQueue struct {
	mu      sync.Mutex
	tasks   []entry
	delayed map[*time.Timer]entry
	wake    chan struct{}
	done    chan struct{}
	once    sync.Once
	closed  bool
}

func newTaskQueue() *taskQueue {
	return &taskQueue{
		delayed: make(map[*time.Timer]entry),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// post adds the task to the end of the queue.
//
// Never blocks.  Tasks posted after close are discarded.
func (q *taskQueue) post(t task) {
	q.push(entry{run: t})
}

// postDelayed adds the task to the end of the queue after the delay.
func (q *taskQueue) postDelayed(d time.Duration, t task) {
	q.schedule(d, entry{run: t})
}

// postRequest adds a task completing a request to the end of the queue after
// the delay.
//
// If the queue is closed before the task runs then abandon is called instead,
// so the request is always completed.
func (q *taskQueue) postRequest(d time.Duration, t task, abandon func()) {
	q.schedule(d, entry{run: t, abandon: abandon})
}

func (q *taskQueue) push(e entry) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		e.drop()
		return
	}
	q.tasks = append(q.tasks, e)
	q.mu.Unlock()
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *taskQueue) schedule(d time.Duration, e entry) {
	if d <= 0 {
		q.push(e)
		return
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		e.drop()
		return
	}
	var tm *time.Timer
	tm = time.AfterFunc(d, func() {
		q.mu.Lock()
		_, ok := q.delayed[tm]
		delete(q.delayed, tm)
		q.mu.Unlock()
		// else already dropped by close
		if ok {
			q.push(e)
		}
	})
	q.delayed[tm] = e
	q.mu.Unlock()
}

// run executes tasks until the queue is closed.
func (q *taskQueue) run(ctx context.Context) {
	for {
		select {
		case <-q.done:
			return
		case <-q.wake:
		}
		for {
			q.mu.Lock()
			if len(q.tasks) == 0 {
				q.mu.Unlock()
				break
			}
			e := q.tasks[0]
			q.tasks[0] = entry{}
			q.tasks = q.tasks[1:]
			q.mu.Unlock()
			e.run(ctx)
			select {
			case <-q.done:
				return
			default:
			}
		}
	}
}

// close stops the queue.  Pending tasks, including those still delayed, are
// dropped.
func (q *taskQueue) close() {
	q.once.Do(func() {
		q.mu.Lock()
		q.closed = true
		dropped := q.tasks
		for tm, e := range q.delayed {
			tm.Stop()
			dropped = append(dropped, e)
		}
		q.tasks = nil
		q.delayed = nil
		q.mu.Unlock()
		close(q.done)
		for _, e := range dropped {
			e.drop()
		}
	})
}
