package elev

import (
	"slices"

	"elevsim/src/types"
)

// request is the common intake for car and floor buttons.
//   - Ignores floors out of range, the current floor and floors already in the route
//   - While idle, stages the floor; with doors open, adds it to the route. Both restart the debounce timer
//   - While moving, adds compatible requests to the route and defers the rest to the call queue
func (e *Engine) request(call types.Call) {
	if !e.acceptsFloor(call.Floor) {
		e.logger.Debug("Ignoring request", "call", FormatCall(call), "floor", e.state.CurrentFloor)
		return
	}

	if e.state.Status.IsMoving() {
		if e.compatible(call) {
			e.logger.Debug("Adding request to active route", "call", FormatCall(call), "status", e.state.Status)
			e.addToRoute(call.Floor)
		} else {
			e.logger.Debug("Deferring request to next sweep", "call", FormatCall(call), "status", e.state.Status)
			e.enqueueCall(call)
		}
		e.notify()
		return
	}

	// Direction of floor calls is not kept while the car stands still.
	if e.state.Status == types.Idling {
		e.state.Staged = append(e.state.Staged, call.Floor)
	} else {
		e.addToRoute(call.Floor)
	}
	e.armDebounce()
	e.notify()
}

func (e *Engine) acceptsFloor(floor int) bool {
	return e.cfg.InRange(floor) &&
		floor != e.state.CurrentFloor &&
		!e.isNextStop(floor) &&
		!slices.Contains(e.state.Route, floor) &&
		!slices.Contains(e.state.Staged, floor)
}

// compatible reports whether a request made while moving can be served on the current sweep.
func (e *Engine) compatible(call types.Call) bool {
	switch call.Dir {
	case types.DirNone:
		return true
	case types.DirUp:
		return e.state.Status == types.MovingUp && call.Floor > e.state.CurrentFloor
	case types.DirDown:
		return e.state.Status == types.MovingDown && call.Floor < e.state.CurrentFloor
	}
	return false
}

// addToRoute appends floor to the route and invalidates the planned order.
func (e *Engine) addToRoute(floor int) {
	e.state.Route = append(e.state.Route, floor)
	e.state.RouteStale = true
	e.state.CallQueue = slices.DeleteFunc(e.state.CallQueue, func(c types.Call) bool {
		return c.Floor == floor
	})
}

func (e *Engine) enqueueCall(call types.Call) {
	if slices.Contains(e.state.CallQueue, call) {
		return
	}
	e.state.CallQueue = append(e.state.CallQueue, call)
}

// mergeCallQueue moves deferred calls into the route. Calls for the current floor are served by
// the stop the car is making and are dropped.
func (e *Engine) mergeCallQueue() {
	if len(e.state.CallQueue) == 0 {
		return
	}
	queue := e.state.CallQueue
	e.state.CallQueue = nil
	for _, call := range queue {
		if e.acceptsFloor(call.Floor) {
			e.state.Route = append(e.state.Route, call.Floor)
			e.state.RouteStale = true
		}
	}
	e.logger.Debug("Merged call queue", "calls", len(queue), "route", e.state.Route)
}

// routeStaged moves floors requested while idle into the route.
func (e *Engine) routeStaged() {
	if len(e.state.Staged) == 0 {
		return
	}
	e.state.Route = append(e.state.Route, e.state.Staged...)
	e.state.Staged = nil
	e.state.RouteStale = true
}

func (e *Engine) isFloorQueued(floor int, dir types.Direction) bool {
	return e.state.IsFloorQueued(floor, dir)
}

func (e *Engine) isNextStop(floor int) bool {
	return e.state.isNextStop(floor)
}
