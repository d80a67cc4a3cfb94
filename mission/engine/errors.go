package engine

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyOccupied = errors.New("position already occupied")
	ErrCollision       = errors.New("collision with another rover")
	ErrOutOfBounds     = errors.New("position out of bounds")
	ErrNotFound        = errors.New("position not found on plateau")
	ErrInvalidPlateau  = errors.New("invalid plateau")
	ErrInvalidHeading  = errors.New("invalid heading")
	ErrInvalidCommand  = errors.New("invalid command")
)

// PositionError records a plateau operation that was rejected for a position
type PositionError struct {
	Op       string
	Position Position
	Err      error
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Position, e.Err)
}

func (e *PositionError) Unwrap() error {
	return e.Err
}

// DeployError identifies the rover and command that aborted a deployment.
// Rover is 1-based; Command is the 0-based command index, or -1 when the
// rover could not be dropped.
type DeployError struct {
	Rover   int
	Command int
	Err     error
}

func (e *DeployError) Error() string {
	if e.Command < 0 {
		return fmt.Sprintf("rover %d: %v", e.Rover, e.Err)
	}
	return fmt.Sprintf("rover %d, command %d: %v", e.Rover, e.Command+1, e.Err)
}

func (e *DeployError) Unwrap() error {
	return e.Err
}

// Internal reports whether the failure is a broken invariant rather than bad input
func (e *DeployError) Internal() bool {
	return errors.Is(e.Err, ErrNotFound)
}

// Code returns a stable machine-friendly name for a deployment failure:
// already_occupied, collision, out_of_bounds, not_found, invalid_plateau,
// invalid_heading, invalid_command, or "" for anything else.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAlreadyOccupied):
		return "already_occupied"
	case errors.Is(err, ErrCollision):
		return "collision"
	case errors.Is(err, ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidPlateau):
		return "invalid_plateau"
	case errors.Is(err, ErrInvalidHeading):
		return "invalid_heading"
	case errors.Is(err, ErrInvalidCommand):
		return "invalid_command"
	}
	return ""
}

// IsInternal reports whether err signals an inconsistency between a rover's
// cached position and the plateau's occupied set.
func IsInternal(err error) bool {
	return errors.Is(err, ErrNotFound)
}
