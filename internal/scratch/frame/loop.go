// Package frame is a cooperative single-goroutine scheduler.
//
// Everything a Loop runs (posted closures, timers, per-frame tasks) runs on
// the goroutine calling Step, one at a time. State owned by those callbacks
// needs no locks. Other goroutines hand work back to the loop with Post.
package frame

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval один кадр при 60 FPS
const DefaultInterval = 16 * time.Millisecond

// Next is what a Task returns after each frame.
type Next struct {
	// if quit == true, the task is removed from the loop
	quit bool
}

func (n Next) String() string {
	if n.quit {
		return "[break]"
	}
	return "[continue]"
}

// Continue keeps the task scheduled for the next frame.
func Continue() Next {
	return Next{}
}

// Break removes the task from the loop.
func Break() Next {
	return Next{quit: true}
}

// Task runs once per frame until it returns Break or its Handle is canceled.
type Task func(now time.Time) Next

// Handle cancels a scheduled task or timer. Cancel is idempotent and safe to
// call on a handle whose work already finished.
type Handle struct {
	canceled atomic.Bool
}

func (h *Handle) Cancel() {
	if h == nil {
		return
	}
	h.canceled.Store(true)
}

// Canceled reports whether Cancel was called or the work finished.
func (h *Handle) Canceled() bool {
	if h == nil {
		return true
	}
	return h.canceled.Load()
}

type timer struct {
	handle   *Handle
	deadline time.Time
	seq      uint64
	fn       func()
}

type frameTask struct {
	handle *Handle
	run    Task
}

// Loop накапливает работу и выполняет её в Step.
type Loop struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	posted []func()
	timers []*timer
	tasks  []*frameTask
}

// New создаёт цикл, чьё текущее время равно start
func New(start time.Time) *Loop {
	return &Loop{now: start}
}

// Now returns the time of the last Step.
func (l *Loop) Now() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.now
}

// Post queues fn for the next Step. Safe from any goroutine.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.posted = append(l.posted, fn)
	l.mu.Unlock()
}

// After runs fn on the loop once at least d has elapsed since the last Step.
func (l *Loop) After(d time.Duration, fn func()) *Handle {
	h := &Handle{}
	l.mu.Lock()
	l.seq++
	l.timers = append(l.timers, &timer{
		handle:   h,
		deadline: l.now.Add(d),
		seq:      l.seq,
		fn:       fn,
	})
	l.mu.Unlock()
	return h
}

// RequestFrame schedules task on every following Step.
func (l *Loop) RequestFrame(task Task) *Handle {
	h := &Handle{}
	l.mu.Lock()
	l.tasks = append(l.tasks, &frameTask{handle: h, run: task})
	l.mu.Unlock()
	return h
}

// Pending reports the number of live frame tasks and timers.
func (l *Loop) Pending() (tasks, timers int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, t := range l.tasks {
		if !t.handle.Canceled() {
			tasks++
		}
	}
	for _, t := range l.timers {
		if !t.handle.Canceled() {
			timers++
		}
	}
	return tasks, timers
}

// Step advances the loop to now and runs, in order: closures posted before
// the call, due timers (by deadline), then one pass of the frame tasks.
// Work scheduled from inside a callback runs on a later Step.
func (l *Loop) Step(now time.Time) {
	l.mu.Lock()
	if now.After(l.now) {
		l.now = now
	}
	now = l.now

	posted := l.posted
	l.posted = nil

	var due []*timer
	rest := l.timers[:0]
	for _, t := range l.timers {
		switch {
		case t.handle.Canceled():
		case !t.deadline.After(now):
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	l.timers = rest

	tasks := make([]*frameTask, len(l.tasks))
	copy(tasks, l.tasks)
	l.mu.Unlock()

	for _, fn := range posted {
		fn()
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].deadline.Equal(due[j].deadline) {
			return due[i].seq < due[j].seq
		}
		return due[i].deadline.Before(due[j].deadline)
	})
	for _, t := range due {
		// отменён другим таймером в этом же шаге
		if t.handle.Canceled() {
			continue
		}
		t.handle.Cancel()
		t.fn()
	}

	for _, t := range tasks {
		if t.handle.Canceled() {
			continue
		}
		if next := t.run(now); next.quit {
			t.handle.Cancel()
		}
	}

	l.mu.Lock()
	live := l.tasks[:0]
	for _, t := range l.tasks {
		if !t.handle.Canceled() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(l.tasks); i++ {
		l.tasks[i] = nil
	}
	l.tasks = live
	l.mu.Unlock()
}

// Run calls Step on every tick of interval until ctx is done.
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.Step(now)
		}
	}
}
