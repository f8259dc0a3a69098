package eventloop

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrClosed is returned by Run when the loop was closed before or while
// running.
var ErrClosed = errors.New("eventloop: closed")

// Timer is a scheduled one-shot callback.
type Timer interface {
	// Stop cancels the callback and reports whether it was still pending.
	Stop() bool
}

// Scheduler runs fn once after d has elapsed.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger attaches a logger used for recovered task panics.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithQueueSize sets the task buffer size.
func WithQueueSize(n int) Option {
	return func(l *Loop) {
		if n > 0 {
			l.queueSize = n
		}
	}
}

// Loop executes posted tasks one at a time on the goroutine calling Run,
// standing in for a browser's UI thread. Timers created with AfterFunc post
// their callback onto the loop, so callbacks never overlap with other tasks.
type Loop struct {
	logger    *zap.Logger
	queueSize int
	tasks     chan func()
	done      chan struct{}
	closeOnce sync.Once

	mu     sync.Mutex
	timers map[*loopTimer]struct{}
}

var _ Scheduler = (*Loop)(nil)

// New constructs a loop. Call Run to start processing.
func New(options ...Option) *Loop {
	l := &Loop{
		logger:    zap.NewNop(),
		queueSize: 64,
		done:      make(chan struct{}),
		timers:    make(map[*loopTimer]struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	l.tasks = make(chan func(), l.queueSize)
	return l
}

// Run processes tasks until ctx is cancelled or Close is called. A loop runs
// once: on return it is closed and pending timers are stopped.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stopTimers()
	defer l.Close()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.done:
			return ErrClosed
		case task := <-l.tasks:
			l.exec(task)
		}
	}
}

// Post enqueues fn and reports whether it was accepted. It blocks while the
// queue is full and returns false once the loop is closed.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do posts fn and waits for it to finish, returning false if the loop closed
// first or ctx ended.
func (l *Loop) Do(ctx context.Context, fn func()) bool {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return false
	}
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	case <-ctx.Done():
		return false
	}
}

// AfterFunc schedules fn to run on the loop after d.
func (l *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{loop: l}
	l.mu.Lock()
	defer l.mu.Unlock()

	t.timer = time.AfterFunc(d, func() {
		l.forget(t)
		l.Post(fn)
	})
	l.timers[t] = struct{}{}
	return t
}

// Close stops the loop. It is safe to call more than once.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}

func (l *Loop) exec(task func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("eventloop: task panicked", zap.Any("panic", r))
		}
	}()
	task()
}

func (l *Loop) forget(t *loopTimer) {
	l.mu.Lock()
	delete(l.timers, t)
	l.mu.Unlock()
}

func (l *Loop) stopTimers() {
	l.mu.Lock()
	timers := l.timers
	l.timers = make(map[*loopTimer]struct{})
	l.mu.Unlock()
	for t := range timers {
		t.timer.Stop()
	}
}

type loopTimer struct {
	loop  *Loop
	timer *time.Timer
}

func (t *loopTimer) Stop() bool {
	stopped := t.timer.Stop()
	t.loop.forget(t)
	return stopped
}
