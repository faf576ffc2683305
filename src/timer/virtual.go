package timer

import (
	"container/heap"
	"time"
)

// Virtual is a Scheduler driven by a manual clock. Do runs inline on the calling goroutine and
// timers only fire from Advance or RunUntilIdle, in deadline order. Timers armed by a firing
// timer are fired within the same Advance call if they fall inside the window.
type Virtual struct {
	now     time.Duration
	seq     uint64
	pending timerHeap
}

func NewVirtual() *Virtual {
	return &Virtual{}
}

// Now returns the virtual time elapsed since creation.
func (v *Virtual) Now() time.Duration {
	return v.now
}

func (v *Virtual) Do(fn func()) {
	fn()
}

func (v *Virtual) AfterFunc(d time.Duration, fn func()) Timer {
	v.seq++
	t := &virtualTimer{deadline: v.now + d, seq: v.seq, fn: fn}
	heap.Push(&v.pending, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that expires on the way.
func (v *Virtual) Advance(d time.Duration) {
	end := v.now + d
	for len(v.pending) > 0 && v.pending[0].deadline <= end {
		t := heap.Pop(&v.pending).(*virtualTimer)
		if t.stopped {
			continue
		}
		v.now = t.deadline
		t.fired = true
		t.fn()
	}
	v.now = end
}

// RunUntilIdle fires timers until none are left, and returns the virtual time spent.
// Gives up after limit fired timers to guard against self-rearming loops.
func (v *Virtual) RunUntilIdle(limit int) time.Duration {
	start := v.now
	for fired := 0; fired < limit; fired++ {
		next, ok := v.nextDeadline()
		if !ok {
			break
		}
		v.Advance(next - v.now)
	}
	return v.now - start
}

// Pending returns the number of armed timers.
func (v *Virtual) Pending() int {
	n := 0
	for _, t := range v.pending {
		if !t.stopped {
			n++
		}
	}
	return n
}

func (v *Virtual) nextDeadline() (time.Duration, bool) {
	for len(v.pending) > 0 {
		if v.pending[0].stopped {
			heap.Pop(&v.pending)
			continue
		}
		return v.pending[0].deadline, true
	}
	return 0, false
}

type virtualTimer struct {
	deadline time.Duration
	seq      uint64
	fn       func()
	stopped  bool
	fired    bool
}

func (t *virtualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// timerHeap orders timers by deadline, then by the order they were armed.
type timerHeap []*virtualTimer

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline != h[j].deadline {
		return h[i].deadline < h[j].deadline
	}
	return h[i].seq < h[j].seq
}
func (h timerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)   { *h = append(*h, x.(*virtualTimer)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	*h = old[:n-1]
	return t
}
