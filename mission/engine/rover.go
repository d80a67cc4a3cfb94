package engine

import "fmt"

// Rover is a single mobile agent. It holds a cached copy of its position;
// the plateau owns the authoritative occupancy.
type Rover struct {
	position Position
	heading  Heading
}

// NewRover creates a rover at pos facing heading
func NewRover(pos Position, heading Heading) *Rover {
	return &Rover{position: pos, heading: heading}
}

// Position returns the rover's current position
func (r *Rover) Position() Position {
	return r.position
}

// Heading returns the direction the rover faces
func (r *Rover) Heading() Heading {
	return r.heading
}

// PlannedForwardPosition returns where a MoveForward would take the rover
// without changing its state.
func (r *Rover) PlannedForwardPosition() Position {
	return r.position.Translate(r.heading)
}

// Apply executes a command. MoveForward must only be applied after the
// plateau has committed the move; the rover itself never validates.
func (r *Rover) Apply(cmd Command) {
	switch cmd {
	case TurnLeft:
		r.heading = r.heading.Left()
	case TurnRight:
		r.heading = r.heading.Right()
	case MoveForward:
		r.position = r.PlannedForwardPosition()
	default:
		panic(fmt.Sprintf("engine: invalid command %d", int(cmd)))
	}
}

// State returns the rover's externally visible state
func (r *Rover) State() RoverState {
	return RoverState{X: r.position.X, Y: r.position.Y, Heading: r.heading}
}

// String formats the rover as "x y H"
func (r *Rover) String() string {
	return r.State().String()
}
