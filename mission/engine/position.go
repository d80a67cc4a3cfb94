package engine

import "fmt"

// Position represents x,y coordinates on the plateau.
// Values are compared and hashed by value, so a Position can key a map.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Translate returns the position one step away in the direction of h.
// It never clamps; bounds are the plateau's concern.
func (p Position) Translate(h Heading) Position {
	switch h {
	case North:
		return Position{X: p.X, Y: p.Y + 1}
	case South:
		return Position{X: p.X, Y: p.Y - 1}
	case East:
		return Position{X: p.X + 1, Y: p.Y}
	case West:
		return Position{X: p.X - 1, Y: p.Y}
	}
	panic(fmt.Sprintf("engine: invalid heading %d", int(h)))
}

// String formats the position as (x,y)
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
