// Package route orders the floors an elevator car has to visit.
package route

import "slices"

// Plan returns floors in the order they should be visited from currentFloor.
//  1. If all floors are on one side of the car, visit them in a single sweep.
//  2. Otherwise sweep towards the closest extreme first, then reverse once.
//     Ties go upwards. A floor equal to currentFloor is visited before either sweep.
//
// The input slice is not modified.
func Plan(currentFloor int, floors []int) []int {
	if len(floors) <= 1 {
		return slices.Clone(floors)
	}

	sorted := slices.Clone(floors)
	slices.Sort(sorted)
	lowest := sorted[0]
	highest := sorted[len(sorted)-1]

	// No direction change
	if highest < currentFloor {
		slices.Reverse(sorted)
		return sorted
	}
	if lowest > currentFloor {
		return sorted
	}

	var here, below, above []int
	for _, floor := range sorted {
		switch {
		case floor < currentFloor:
			below = append(below, floor)
		case floor > currentFloor:
			above = append(above, floor)
		default:
			here = append(here, floor)
		}
	}
	slices.Reverse(below)

	if currentFloor-lowest < highest-currentFloor {
		return slices.Concat(here, below, above)
	}
	return slices.Concat(here, above, below)
}
