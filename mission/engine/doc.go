// Package engine provides the core rover simulation.
//
// The engine package implements:
//   - Compass headings and their rotations
//   - Grid positions and one-step translation
//   - Rovers, which apply commands to their own heading and position
//   - The plateau, which owns occupancy and validates every move
//   - The deployment loop that drives rovers in order
//
// Core Types:
//
// A Plateau holds the grid bounds and the set of occupied cells. It is the
// only place where bounds and collisions are checked: Drop registers a
// starting cell, ValidateMove is a pure check, and CommitMove atomically
// moves an occupant from one cell to another. A Rover never sees the plateau;
// the Deployment asks the rover where it would go, asks the plateau to commit
// that move, and only then tells the rover to advance.
//
// Usage:
//
//	rovers, err := engine.Deploy(engine.Mission{
//		MaxX: 5,
//		MaxY: 5,
//		Instructions: []engine.Instruction{
//			{Start: engine.Position{X: 1, Y: 2}, Heading: engine.North, Commands: cmds},
//		},
//	})
//	if err != nil {
//		var derr *engine.DeployError
//		if errors.As(err, &derr) && derr.Internal() {
//			// invariant violation, not bad input
//		}
//	}
//
// Errors:
//
// ErrAlreadyOccupied, ErrCollision and ErrOutOfBounds describe bad input.
// ErrNotFound means a rover's cached position disagreed with the plateau and
// is reported as internal by IsInternal.
package engine
