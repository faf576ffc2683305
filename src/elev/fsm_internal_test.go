package elev

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	"elevsim/src/config"
	"elevsim/src/timer"
	"elevsim/src/types"
)

func newTestEngine(t *testing.T) (*Engine, *timer.Virtual) {
	t.Helper()
	clock := timer.NewVirtual()
	cfg := config.Config{
		MinFloor:            0,
		MaxFloor:            9,
		FloorTravelDuration: time.Second,
		DoorsOpenDuration:   2 * time.Second,
		ButtonPressDelay:    500 * time.Millisecond,
	}
	e, err := New(cfg, clock, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatal(err)
	}
	return e, clock
}

func TestStartRouteWhileMovingIsRejected(t *testing.T) {
	e, clock := newTestEngine(t)
	e.RequestFromCar(4)
	clock.Advance(500 * time.Millisecond)

	before := e.snapshot()
	e.startRoute()
	after := e.snapshot()
	if e.stats.RejectedStarts != 1 {
		t.Errorf("expected one rejected start, got %d", e.stats.RejectedStarts)
	}
	if after.Status != before.Status || *after.NextStopFloor != *before.NextStopFloor {
		t.Errorf("rejected start changed state %+v -> %+v", before, after)
	}
}

func TestPlannerCalledOnlyForStaleRoutes(t *testing.T) {
	e, clock := newTestEngine(t)
	var calls [][]int
	plan := e.plan
	e.plan = func(currentFloor int, floors []int) []int {
		calls = append(calls, floors)
		return plan(currentFloor, floors)
	}

	for _, floor := range []int{7, 3, 5} {
		e.RequestFromCar(floor)
	}
	clock.RunUntilIdle(1000)
	if len(calls) != 1 {
		t.Errorf("expected one planner call, got %v", calls)
	}
	if e.state.Status != types.Idling || e.state.CurrentFloor != 7 {
		t.Errorf("unexpected final state %+v", e.state)
	}
}

// Random traffic never breaks the state invariants, never starts a route twice,
// and every accepted request is eventually served.
func TestRandomTraffic(t *testing.T) {
	e, clock := newTestEngine(t)
	rng := rand.New(rand.NewPCG(4145, 42))
	dirs := []types.Direction{types.DirNone, types.DirUp, types.DirDown}

	for range 400 {
		clock.Advance(time.Duration(rng.IntN(1500)) * time.Millisecond)
		floor := rng.IntN(12) - 1
		if dir := dirs[rng.IntN(len(dirs))]; dir == types.DirNone {
			e.RequestFromCar(floor)
		} else {
			e.RequestFromFloor(floor, dir)
		}
		checkState(t, e)
	}
	if e.stats.PlansComputed < 10 {
		t.Fatalf("traffic barely exercised the planner: %d plans", e.stats.PlansComputed)
	}
	for range 10000 {
		if clock.Pending() == 0 {
			break
		}
		clock.Advance(100 * time.Millisecond)
		checkState(t, e)
	}

	if clock.Pending() != 0 {
		t.Fatalf("timers still armed: %+v", e.state)
	}
	if e.state.Status != types.Idling || len(e.state.Route) != 0 || len(e.state.Staged) != 0 || len(e.state.CallQueue) != 0 {
		t.Errorf("requests left unserved: %+v", e.state)
	}
	if e.stats.RejectedStarts != 0 {
		t.Errorf("route started while moving %d times", e.stats.RejectedStarts)
	}
}

func checkState(t *testing.T, e *Engine) {
	t.Helper()
	s := e.state
	if s.Status == types.Idling && (s.NextStopFloor != nil || len(s.Route) != 0 || len(s.CallQueue) != 0) {
		t.Fatalf("idle with pending work: %+v", s)
	}
	if len(s.Staged) != 0 && (s.Status != types.Idling || e.debounce == nil) {
		t.Fatalf("staged floors without a pending start: %+v", s)
	}
	if s.Status.IsMoving() && s.NextStopFloor == nil {
		t.Fatalf("moving without a target: %+v", s)
	}
	seen := map[int]bool{}
	for _, floor := range s.Route {
		if seen[floor] || floor == s.CurrentFloor || e.isNextStop(floor) || !e.cfg.InRange(floor) {
			t.Fatalf("invalid route: %+v", s)
		}
		seen[floor] = true
	}
	for _, call := range s.CallQueue {
		if seen[call.Floor] {
			t.Fatalf("call queue overlaps route: %+v", s)
		}
	}
}
