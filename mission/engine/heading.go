package engine

import (
	"fmt"
	"strings"
)

// Heading is one of the four compass directions a rover can face
type Heading int

const (
	North Heading = iota
	East
	South
	West
)

// Headings lists every heading in clockwise order starting at North
var Headings = []Heading{North, East, South, West}

// Right returns the heading after a quarter turn clockwise
func (h Heading) Right() Heading {
	switch h {
	case North:
		return East
	case East:
		return South
	case South:
		return West
	case West:
		return North
	}
	panic(fmt.Sprintf("engine: invalid heading %d", int(h)))
}

// Left returns the heading after a quarter turn counter-clockwise
func (h Heading) Left() Heading {
	switch h {
	case North:
		return West
	case West:
		return South
	case South:
		return East
	case East:
		return North
	}
	panic(fmt.Sprintf("engine: invalid heading %d", int(h)))
}

// Valid reports whether h is one of the four compass headings
func (h Heading) Valid() bool {
	return h >= North && h <= West
}

// String returns the single-letter form used by the input and output formats
func (h Heading) String() string {
	switch h {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	return fmt.Sprintf("Heading(%d)", int(h))
}

// Name returns the full compass name
func (h Heading) Name() string {
	switch h {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return h.String()
}

// ParseHeading accepts a heading letter (N, E, S, W) or full name, case-insensitive
func ParseHeading(s string) (Heading, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "n", "north":
		return North, nil
	case "e", "east":
		return East, nil
	case "s", "south":
		return South, nil
	case "w", "west":
		return West, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidHeading, s)
}

// MarshalText encodes the heading as its letter
func (h Heading) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHeading, int(h))
	}
	return []byte(h.String()), nil
}

// UnmarshalText decodes a heading letter or name
func (h *Heading) UnmarshalText(text []byte) error {
	parsed, err := ParseHeading(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
