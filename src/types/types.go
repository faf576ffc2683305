package types

type MotionStatus int

const (
	Idling MotionStatus = iota
	MovingUp
	MovingDown
	DoorsOpen
)

// String returns the label shown on the car's status display.
func (s MotionStatus) String() string {
	switch s {
	case Idling:
		return "Waiting"
	case MovingUp:
		return "UP"
	case MovingDown:
		return "DOWN"
	case DoorsOpen:
		return "Open"
	}
	return "Unknown"
}

func (s MotionStatus) IsMoving() bool {
	return s == MovingUp || s == MovingDown
}

// Direction of a floor panel call. DirNone is used for car buttons.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	}
	return "none"
}

// Call is a request deferred until the next sweep starts.
type Call struct {
	Floor int
	Dir   Direction
}

// Button types of the elevator hardware simulator.
type ButtonType int

const (
	BT_HallUp ButtonType = iota
	BT_HallDown
	BT_Cab
)

// ButtonEvent is a button press reported by the hardware. Floor is the hardware index, counted
// from 0 at the lowest floor.
type ButtonEvent struct {
	Floor  int
	Button ButtonType
}
