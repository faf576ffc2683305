// Contains the timer driven transitions of the elevator: idle -> moving -> doors open -> idle.
package elev

import (
	"slices"
	"time"

	"elevsim/src/types"
)

// armDebounce (re)starts the delay that collapses rapid button presses into one route computation.
func (e *Engine) armDebounce() {
	if e.debounce != nil {
		e.debounce.Stop()
	}
	e.debounce = e.sched.AfterFunc(e.cfg.ButtonPressDelay, e.onDebounceTimeout)
}

func (e *Engine) onDebounceTimeout() {
	e.debounce = nil
	if e.dwelling {
		e.logger.Debug("Doors open, route starts when they close", "floor", e.state.CurrentFloor)
		return
	}
	e.startRoute()
}

// startRoute picks the next stop and sends the car one floor towards it.
// Called on debounce timeout, when the doors close, and after a stop to re-plan the route.
func (e *Engine) startRoute() {
	if e.state.Status.IsMoving() {
		e.stats.RejectedStarts++
		e.logger.Warn("Cannot start route, elevator is already moving",
			"floor", e.state.CurrentFloor,
			"status", e.state.Status)
		return
	}
	if e.debounce != nil {
		e.debounce.Stop()
		e.debounce = nil
	}
	e.routeStaged()
	e.mergeCallQueue()

	floors := slices.Clone(e.state.Route)
	// A leg interrupted for re-planning still has to reach its target.
	if next := e.state.NextStopFloor; next != nil && *next != e.state.CurrentFloor {
		floors = append([]int{*next}, floors...)
	}

	if len(floors) == 0 {
		e.state.Status = types.Idling
		e.state.NextStopFloor = nil
		e.state.Route = nil
		e.state.RouteStale = false
		e.state.TravelTime = 0
		e.logger.Debug("No floors to visit, idling", "floor", e.state.CurrentFloor)
		e.notify()
		return
	}

	if e.state.RouteStale {
		floors = e.plan(e.state.CurrentFloor, floors)
		e.stats.PlansComputed++
		e.state.RouteStale = false
		e.logger.Debug("Route calculated", "floor", e.state.CurrentFloor, "route", floors)
	}

	next := floors[0]
	e.state.NextStopFloor = &next
	e.state.Route = floors[1:]
	if next > e.state.CurrentFloor {
		e.state.Status = types.MovingUp
	} else {
		e.state.Status = types.MovingDown
	}
	e.state.TravelTime = e.cfg.FloorTravelDuration * time.Duration(abs(e.state.CurrentFloor-next)+1)

	e.logger.Debug("Starting travel",
		"from", e.state.CurrentFloor,
		"to", next,
		"status", e.state.Status,
		"travelTime", e.state.TravelTime)
	e.armFloorStep()
	e.notify()
}

// armFloorStep moves the car to the adjacent floor in its current direction.
func (e *Engine) armFloorStep() {
	floor := e.state.CurrentFloor + 1
	if e.state.Status == types.MovingDown {
		floor = e.state.CurrentFloor - 1
	}
	e.sched.AfterFunc(e.cfg.FloorTravelDuration, func() {
		e.onFloorReached(floor)
	})
}

// onFloorReached is called every time the car passes a floor.
//   - Stops if the floor is the next stop
//   - Pauses and re-plans if requests were added to the route during the leg
//   - Otherwise continues to the next floor
func (e *Engine) onFloorReached(floor int) {
	e.state.CurrentFloor = floor

	// The floor was requested after this leg started. Stop here and keep the old target.
	if e.state.RouteStale && !e.isNextStop(floor) {
		if i := slices.Index(e.state.Route, floor); i >= 0 {
			e.state.Route = slices.Delete(e.state.Route, i, i+1)
			if e.state.NextStopFloor != nil {
				e.state.Route = append(e.state.Route, *e.state.NextStopFloor)
			}
			e.state.NextStopFloor = &floor
		}
	}

	switch {
	case e.isNextStop(floor):
		e.logger.Info("Stopping at floor", "floor", floor)
		e.mergeCallQueue()
		e.sched.AfterFunc(e.cfg.FloorTravelDuration, e.openDoors)
	case e.state.RouteStale:
		e.logger.Debug("Route changed during travel, re-planning", "floor", floor)
		e.sched.AfterFunc(e.cfg.DoorsOpenDuration, func() {
			e.state.Status = types.Idling
			e.startRoute()
		})
	default:
		e.logger.Debug("Continuing past floor", "floor", floor, "status", e.state.Status)
		e.armFloorStep()
	}
	e.notify()
}

func (e *Engine) openDoors() {
	e.state.Status = types.DoorsOpen
	e.dwelling = true
	e.logger.Debug("Doors open", "floor", e.state.CurrentFloor)
	e.sched.AfterFunc(e.cfg.DoorsOpenDuration, e.closeDoors)
	e.notify()
}

func (e *Engine) closeDoors() {
	e.dwelling = false
	e.logger.Debug("Doors closing", "floor", e.state.CurrentFloor)
	e.startRoute()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
