package elev

import (
	"slices"

	"github.com/tiendc/go-deepcopy"

	"elevsim/src/types"
)

// snapshot creates a deep copy of the elevator state, so readers never share slices with the engine.
func (e *Engine) snapshot() ElevState {
	var clone ElevState
	if err := deepcopy.Copy(&clone, &e.state); err != nil {
		e.logger.Error("Failed to copy elevator state", "error", err)
	}
	return clone
}

// notify publishes the current state to all subscribers without blocking. A subscriber that
// fell behind loses its oldest pending snapshot, so the latest state always gets through.
func (e *Engine) notify() {
	if len(e.subscribers) == 0 {
		return
	}
	snapshot := e.snapshot()
	for _, ch := range e.subscribers {
		select {
		case ch <- snapshot:
		default:
			e.logger.Debug("Subscriber busy, replacing oldest snapshot")
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

// IsFloorQueued reports whether floor is the next stop, in the route, staged, or deferred in the
// call queue in direction dir. DirNone matches deferred calls in any direction.
func (s ElevState) IsFloorQueued(floor int, dir types.Direction) bool {
	if s.OnRoute(floor) {
		return true
	}
	return slices.ContainsFunc(s.CallQueue, func(c types.Call) bool {
		return c.Floor == floor && (dir == types.DirNone || c.Dir == dir)
	})
}

// OnRoute reports whether the car will stop at floor without waiting for a new sweep.
func (s ElevState) OnRoute(floor int) bool {
	return s.isNextStop(floor) || slices.Contains(s.Route, floor) || slices.Contains(s.Staged, floor)
}

func (s ElevState) isNextStop(floor int) bool {
	return s.NextStopFloor != nil && *s.NextStopFloor == floor
}
