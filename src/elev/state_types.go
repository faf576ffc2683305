// State types are defined in elev package to make method receivers possible in elev_state.go.
package elev

import (
	"log/slog"
	"time"

	"elevsim/src/config"
	"elevsim/src/timer"
	"elevsim/src/types"
)

// ElevState is the observable state of the car. Snapshots handed out by the Engine are deep copies.
type ElevState struct {
	CurrentFloor  int // departure floor while moving, until the next floor is reached
	Status        types.MotionStatus
	NextStopFloor *int
	Route         []int        // stops after NextStopFloor, in visiting order
	Staged        []int        // requests made while idle, routed when the debounce expires
	CallQueue     []types.Call // floor calls deferred to the next sweep
	RouteStale    bool
	TravelTime    time.Duration // advertised duration of the current leg
}

// Stats counts engine internals, mainly for tests.
type Stats struct {
	PlansComputed  int
	RejectedStarts int
}

// Engine owns the elevator state. Every access runs on the scheduler's execution context.
type Engine struct {
	cfg    config.Config
	sched  timer.Scheduler
	logger *slog.Logger
	plan   func(currentFloor int, floors []int) []int

	state       ElevState
	stats       Stats
	debounce    timer.Timer
	dwelling    bool
	subscribers []chan ElevState
}

type Option func(e *Engine)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}
