package engine

import "fmt"

// Instruction is one rover's deployment: where it lands, which way it faces,
// and the commands it runs afterwards.
type Instruction struct {
	Start    Position
	Heading  Heading
	Commands []Command
}

// Mission is a complete batch: the plateau bounds and the rovers in deployment order
type Mission struct {
	MaxX         int
	MaxY         int
	Instructions []Instruction
}

// CommandCount returns the total number of commands across all instructions
func (m Mission) CommandCount() int {
	total := 0
	for _, in := range m.Instructions {
		total += len(in.Commands)
	}
	return total
}

// RoverState is the final (x, y, heading) triple reported for a rover
type RoverState struct {
	X       int     `json:"x" yaml:"x"`
	Y       int     `json:"y" yaml:"y"`
	Heading Heading `json:"heading" yaml:"heading"`
}

// Position returns the state's coordinates
func (s RoverState) Position() Position {
	return Position{X: s.X, Y: s.Y}
}

// String formats the state as "x y H"
func (s RoverState) String() string {
	return fmt.Sprintf("%d %d %s", s.X, s.Y, s.Heading)
}

// Step describes one command a rover has successfully executed
type Step struct {
	Rover   int      `json:"rover"` // 1-based
	Index   int      `json:"index"` // 0-based within the rover's commands
	Command Command  `json:"command"`
	From    Position `json:"from"`
	To      Position `json:"to"`
	Heading Heading  `json:"heading"`
}

// String formats the step for trace output
func (s Step) String() string {
	return fmt.Sprintf("rover %d #%d %s %s->%s %s", s.Rover, s.Index+1, s.Command, s.From, s.To, s.Heading)
}

// States projects rovers onto their reported states
func States(rovers []*Rover) []RoverState {
	states := make([]RoverState, len(rovers))
	for i, r := range rovers {
		states[i] = r.State()
	}
	return states
}
