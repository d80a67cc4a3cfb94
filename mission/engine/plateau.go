package engine

import (
	"fmt"
	"sort"
)

// Plateau is the bounded grid and its occupancy ledger. Bounds are inclusive,
// so a 5x5 plateau accepts coordinates 0 through 5 on both axes.
//
// A Plateau is not safe for concurrent use.
type Plateau struct {
	maxX     int
	maxY     int
	occupied map[Position]struct{}
}

// NewPlateau creates an empty plateau with the given inclusive upper bounds
func NewPlateau(maxX, maxY int) (*Plateau, error) {
	if maxX < 0 || maxY < 0 {
		return nil, fmt.Errorf("%w: bounds must be non-negative, got %d x %d", ErrInvalidPlateau, maxX, maxY)
	}
	return &Plateau{
		maxX:     maxX,
		maxY:     maxY,
		occupied: make(map[Position]struct{}),
	}, nil
}

// MaxX returns the inclusive upper x bound
func (p *Plateau) MaxX() int {
	return p.maxX
}

// MaxY returns the inclusive upper y bound
func (p *Plateau) MaxY() int {
	return p.maxY
}

// Len returns the number of occupied cells
func (p *Plateau) Len() int {
	return len(p.occupied)
}

// InBounds reports whether pos lies on the grid
func (p *Plateau) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X <= p.maxX && pos.Y <= p.maxY
}

// IsOccupied reports whether a rover sits at pos
func (p *Plateau) IsOccupied(pos Position) bool {
	_, ok := p.occupied[pos]
	return ok
}

// Occupied returns a copy of the occupied cells ordered by y, then x
func (p *Plateau) Occupied() []Position {
	cells := make([]Position, 0, len(p.occupied))
	for pos := range p.occupied {
		cells = append(cells, pos)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

// Drop registers a rover's starting cell
func (p *Plateau) Drop(pos Position) error {
	if !p.InBounds(pos) {
		return &PositionError{Op: "drop", Position: pos, Err: ErrOutOfBounds}
	}
	if p.IsOccupied(pos) {
		return &PositionError{Op: "drop", Position: pos, Err: ErrAlreadyOccupied}
	}
	p.occupied[pos] = struct{}{}
	return nil
}

// ValidateMove reports whether a rover may move onto target. It has no side effects.
func (p *Plateau) ValidateMove(target Position) error {
	if !p.InBounds(target) {
		return &PositionError{Op: "move", Position: target, Err: ErrOutOfBounds}
	}
	if p.IsOccupied(target) {
		return &PositionError{Op: "move", Position: target, Err: ErrCollision}
	}
	return nil
}

// CommitMove moves an occupant from one cell to another. Either both the
// removal and the insertion happen or neither does.
func (p *Plateau) CommitMove(from, to Position) error {
	if err := p.ValidateMove(to); err != nil {
		return err
	}
	if !p.IsOccupied(from) {
		return &PositionError{Op: "commit", Position: from, Err: ErrNotFound}
	}
	delete(p.occupied, from)
	p.occupied[to] = struct{}{}
	return nil
}
