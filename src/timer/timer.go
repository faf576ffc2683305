// Package timer provides the execution context the elevator runs on.
//
// All state changes happen inside functions handed to a Scheduler, either directly through Do or
// when a timer armed with AfterFunc expires. A Scheduler never runs two such functions at the
// same time, so the state they touch needs no locking.
package timer

import (
	"log/slog"
	"time"
)

type Scheduler interface {
	// Do runs fn on the execution context and returns when it has finished.
	// Must not be called from within the execution context.
	Do(fn func())
	// AfterFunc arms a one-shot timer that runs fn on the execution context after d.
	AfterFunc(d time.Duration, fn func()) Timer
}

type Timer interface {
	// Stop prevents the timer from firing. Returns false if it already fired or was stopped.
	// Only reliable when called from the execution context.
	Stop() bool
}

// Loop is a Scheduler backed by wall clock timers. A single goroutine executes all commands.
type Loop struct {
	cmds chan func()
	quit chan struct{}
}

// StartLoop starts the goroutine that serializes all commands.
func StartLoop() *Loop {
	loop := &Loop{
		cmds: make(chan func()),
		quit: make(chan struct{}),
	}
	go func() {
		for {
			select {
			case cmd := <-loop.cmds:
				cmd()
			case <-loop.quit:
				return
			}
		}
	}()
	return loop
}

func (loop *Loop) Do(fn func()) {
	done := make(chan struct{})
	select {
	case loop.cmds <- func() {
		defer close(done)
		fn()
	}:
	case <-loop.quit:
		slog.Debug("Loop closed, dropping command")
		return
	}
	<-done
}

func (loop *Loop) AfterFunc(d time.Duration, fn func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		select {
		case loop.cmds <- func() {
			if t.stopped {
				return
			}
			t.fired = true
			fn()
		}:
		case <-loop.quit:
		}
	})
	return t
}

// Close stops the loop. Pending timers are dropped.
func (loop *Loop) Close() {
	close(loop.quit)
}

// loopTimer keeps its flags on the loop goroutine. The wall clock timer may already have
// queued its command when Stop is called, so the command checks stopped before running.
type loopTimer struct {
	timer   *time.Timer
	stopped bool
	fired   bool
}

func (t *loopTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.timer.Stop()
	return true
}
