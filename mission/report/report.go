// Package report renders deployment results for the terminal.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wricardo/mcp-training/marsrover/mission/engine"
)

// MaxGridCells is the largest plateau, in cells, that Rows and Grid will draw
const MaxGridCells = 10_000

var ErrGridTooLarge = errors.New("plateau too large to draw")

var (
	gridStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	roverStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
)

// Text writes one "x y H" line per rover in deployment order
func Text(states []engine.RoverState) string {
	var b strings.Builder
	for _, s := range states {
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// JSON encodes the states as an indented array
func JSON(states []engine.RoverState) (string, error) {
	if states == nil {
		states = []engine.RoverState{}
	}
	data, err := json.MarshalIndent(states, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode rovers: %w", err)
	}
	return string(data), nil
}

// Arrow returns the glyph used for a heading on the grid
func Arrow(h engine.Heading) string {
	switch h {
	case engine.North:
		return "^"
	case engine.East:
		return ">"
	case engine.South:
		return "v"
	case engine.West:
		return "<"
	}
	return "?"
}

// checkSize rejects plateaus with more than MaxGridCells cells. Each side is
// checked alone first so the product cannot overflow.
func checkSize(maxX, maxY int) error {
	if maxX >= MaxGridCells || maxY >= MaxGridCells || (maxX+1)*(maxY+1) > MaxGridCells {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", ErrGridTooLarge, maxX, maxY, MaxGridCells)
	}
	return nil
}

// Rows lays the plateau out as text, top row (y = maxY) first. Empty cells
// are "." and rovers show their heading arrow. Negative bounds give no rows.
func Rows(maxX, maxY int, states []engine.RoverState) ([]string, error) {
	if maxX < 0 || maxY < 0 {
		return nil, nil
	}
	if err := checkSize(maxX, maxY); err != nil {
		return nil, err
	}

	at := make(map[engine.Position]engine.Heading, len(states))
	for _, s := range states {
		at[s.Position()] = s.Heading
	}

	rows := make([]string, 0, maxY+1)
	for y := maxY; y >= 0; y-- {
		cells := make([]string, 0, maxX+1)
		for x := 0; x <= maxX; x++ {
			if h, ok := at[engine.Position{X: x, Y: y}]; ok {
				cells = append(cells, Arrow(h))
			} else {
				cells = append(cells, ".")
			}
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return rows, nil
}

// Grid renders the plateau with rover arrows inside a rounded border
func Grid(maxX, maxY int, states []engine.RoverState) (string, error) {
	rows, err := Rows(maxX, maxY, states)
	if err != nil {
		return "", err
	}
	styled := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for j, cell := range strings.Split(row, " ") {
			if j > 0 {
				b.WriteByte(' ')
			}
			if cell == "." {
				b.WriteString(emptyStyle.Render(cell))
			} else {
				b.WriteString(roverStyle.Render(cell))
			}
		}
		styled[i] = b.String()
	}

	title := fmt.Sprintf("plateau %dx%d, %d rovers", maxX, maxY, len(states))
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		gridStyle.Render(strings.Join(styled, "\n")),
	), nil
}
