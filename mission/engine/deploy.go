package engine

import (
	"context"
	"fmt"
)

// Deployment drives rovers across a plateau one at a time. Each rover is
// dropped and runs all of its commands before the next rover exists, so a
// rover can only collide with rovers that were deployed before it.
type Deployment struct {
	plateau *Plateau
	onStep  func(Step)
}

// NewDeployment creates a deployment over an existing plateau
func NewDeployment(plateau *Plateau) *Deployment {
	return &Deployment{plateau: plateau}
}

// OnStep registers a callback invoked after every successfully applied command
func (d *Deployment) OnStep(fn func(Step)) {
	d.onStep = fn
}

// Plateau returns the plateau the deployment mutates
func (d *Deployment) Plateau() *Plateau {
	return d.plateau
}

// Run deploys and drives every instruction in order. The first failure aborts
// the whole run and no rovers are returned.
func (d *Deployment) Run(instructions []Instruction) ([]*Rover, error) {
	return d.RunContext(context.Background(), instructions)
}

// RunContext is Run with cancellation checked before each rover is dropped
func (d *Deployment) RunContext(ctx context.Context, instructions []Instruction) ([]*Rover, error) {
	rovers := make([]*Rover, 0, len(instructions))
	for i, in := range instructions {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("deployment cancelled before rover %d: %w", i+1, err)
		}
		rover, err := d.deploy(i+1, in)
		if err != nil {
			return nil, err
		}
		rovers = append(rovers, rover)
	}
	return rovers, nil
}

// deploy drops a single rover and executes its commands
func (d *Deployment) deploy(number int, in Instruction) (*Rover, error) {
	if !in.Heading.Valid() {
		return nil, &DeployError{Rover: number, Command: -1, Err: fmt.Errorf("%w: %d", ErrInvalidHeading, int(in.Heading))}
	}

	rover := NewRover(in.Start, in.Heading)
	if err := d.plateau.Drop(in.Start); err != nil {
		return nil, &DeployError{Rover: number, Command: -1, Err: err}
	}

	for idx, cmd := range in.Commands {
		from := rover.Position()

		switch cmd {
		case TurnLeft, TurnRight:
			rover.Apply(cmd)
		case MoveForward:
			target := rover.PlannedForwardPosition()
			if err := d.plateau.CommitMove(from, target); err != nil {
				return nil, &DeployError{Rover: number, Command: idx, Err: err}
			}
			rover.Apply(cmd)
		default:
			return nil, &DeployError{Rover: number, Command: idx, Err: fmt.Errorf("%w: %d", ErrInvalidCommand, int(cmd))}
		}

		if d.onStep != nil {
			d.onStep(Step{
				Rover:   number,
				Index:   idx,
				Command: cmd,
				From:    from,
				To:      rover.Position(),
				Heading: rover.Heading(),
			})
		}
	}

	return rover, nil
}

// Deploy builds a fresh plateau for the mission and runs it
func Deploy(m Mission) ([]*Rover, error) {
	plateau, err := NewPlateau(m.MaxX, m.MaxY)
	if err != nil {
		return nil, err
	}
	return NewDeployment(plateau).Run(m.Instructions)
}
