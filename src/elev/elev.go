package elev

import (
	"fmt"
	"log/slog"

	"elevsim/src/config"
	"elevsim/src/route"
	"elevsim/src/timer"
	"elevsim/src/types"
)

// New creates an idle engine at the lowest floor. All timers are armed on sched.
func New(cfg config.Config, sched timer.Scheduler, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, fmt.Errorf("%w: no scheduler", config.ErrInvalid)
	}
	e := &Engine{
		cfg:    cfg,
		sched:  sched,
		logger: slog.Default(),
		plan:   route.Plan,
		state: ElevState{
			CurrentFloor: cfg.MinFloor,
			Status:       types.Idling,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger.Debug("Elevator initialized", "minFloor", cfg.MinFloor, "maxFloor", cfg.MaxFloor)
	return e, nil
}

// RequestFromCar handles a button press on the car's control panel.
func (e *Engine) RequestFromCar(floor int) {
	e.sched.Do(func() {
		e.request(types.Call{Floor: floor, Dir: types.DirNone})
	})
}

// RequestFromFloor handles a call button press on a floor panel.
func (e *Engine) RequestFromFloor(floor int, dir types.Direction) {
	e.sched.Do(func() {
		e.request(types.Call{Floor: floor, Dir: dir})
	})
}

// IsFloorQueued reports whether floor will be visited. DirNone matches deferred calls in any direction.
func (e *Engine) IsFloorQueued(floor int, dir types.Direction) bool {
	var queued bool
	e.sched.Do(func() {
		queued = e.isFloorQueued(floor, dir)
	})
	return queued
}

func (e *Engine) Snapshot() ElevState {
	var snapshot ElevState
	e.sched.Do(func() {
		snapshot = e.snapshot()
	})
	return snapshot
}

func (e *Engine) Stats() Stats {
	var stats Stats
	e.sched.Do(func() {
		stats = e.stats
	})
	return stats
}

// Subscribe returns a channel receiving a snapshot after every state change.
// While the channel is full the oldest snapshot is discarded, the latest is always delivered.
func (e *Engine) Subscribe() <-chan ElevState {
	ch := make(chan ElevState, config.SubscriberBuffer)
	e.sched.Do(func() {
		e.subscribers = append(e.subscribers, ch)
	})
	return ch
}

// Floors lists the floor numbers from the top, as they appear on the car's control panel.
func (e *Engine) Floors() []int {
	floors := make([]int, 0, e.cfg.NumFloors())
	for floor := e.cfg.MaxFloor; floor >= e.cfg.MinFloor; floor-- {
		floors = append(floors, floor)
	}
	return floors
}

func (e *Engine) Config() config.Config {
	return e.cfg
}
