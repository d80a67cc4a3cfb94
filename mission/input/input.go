// Package input parses rover missions from their textual form.
//
// The canonical layout is the plateau's upper-right coordinates followed by
// two lines per rover: its position and heading, then its commands.
//
//	5 5
//	1 2 N
//	LMLMLMLMM
//	3 3 E
//	MMRMMRMRRM
//
// Whitespace is not significant, so the same grammar accepts the flattened
// command-line form "5 5 1 2 N LMLMLMLMM 3 3 E MMRMMRMRRM". A rover with no
// commands may omit its command word.
package input

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/wricardo/mcp-training/marsrover/mission/engine"
)

var ErrInvalidInput = errors.New("invalid mission input")

// Document is the parsed, unvalidated mission text
type Document struct {
	Pos lexer.Position

	MaxX   int         `parser:"@Int"`
	MaxY   int         `parser:"@Int"`
	Rovers []*RoverDoc `parser:"@@*"`
}

// RoverDoc is one rover block of a Document
type RoverDoc struct {
	Pos lexer.Position

	X        int    `parser:"@Int"`
	Y        int    `parser:"@Int"`
	Heading  string `parser:"@Word"`
	Commands string `parser:"@Word?"`
}

var missionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Int", Pattern: `-?\d+`},
	{Name: "Word", Pattern: `[A-Za-z]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[Document](
	participle.Lexer(missionLexer),
	participle.Elide("Whitespace", "Comment"),
)

// ParseDocument parses text into a Document without checking values
func ParseDocument(name, text string) (*Document, error) {
	doc, err := parser.ParseString(name, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return doc, nil
}

// Parse parses mission text into an engine.Mission
func Parse(text string) (*engine.Mission, error) {
	doc, err := ParseDocument("", text)
	if err != nil {
		return nil, err
	}
	return doc.Mission()
}

// ParseReader reads the whole of r and parses it
func ParseReader(name string, r io.Reader) (*engine.Mission, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	doc, err := ParseDocument(name, string(data))
	if err != nil {
		return nil, err
	}
	return doc.Mission()
}

// ParseArgs parses the flattened command-line form, one token per argument
func ParseArgs(args []string) (*engine.Mission, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: missing plateau size", ErrInvalidInput)
	}
	doc, err := ParseDocument("args", strings.Join(args, " "))
	if err != nil {
		return nil, err
	}
	return doc.Mission()
}

// Mission converts the document into engine types, checking headings,
// commands and that no coordinate is negative.
func (d *Document) Mission() (*engine.Mission, error) {
	if d.MaxX < 0 || d.MaxY < 0 {
		return nil, fmt.Errorf("%w: %s: plateau size must be non-negative, got %d %d", ErrInvalidInput, d.Pos, d.MaxX, d.MaxY)
	}

	mission := &engine.Mission{
		MaxX:         d.MaxX,
		MaxY:         d.MaxY,
		Instructions: make([]engine.Instruction, 0, len(d.Rovers)),
	}

	for i, r := range d.Rovers {
		in, err := r.Instruction()
		if err != nil {
			return nil, fmt.Errorf("%w: rover %d at %s: %v", ErrInvalidInput, i+1, r.Pos, err)
		}
		mission.Instructions = append(mission.Instructions, in)
	}

	return mission, nil
}

// Instruction converts one rover block
func (r *RoverDoc) Instruction() (engine.Instruction, error) {
	if r.X < 0 || r.Y < 0 {
		return engine.Instruction{}, fmt.Errorf("position must be non-negative, got %d %d", r.X, r.Y)
	}
	heading, err := engine.ParseHeading(r.Heading)
	if err != nil {
		return engine.Instruction{}, err
	}
	commands, err := engine.ParseCommands(r.Commands)
	if err != nil {
		return engine.Instruction{}, err
	}
	return engine.Instruction{
		Start:    engine.Position{X: r.X, Y: r.Y},
		Heading:  heading,
		Commands: commands,
	}, nil
}

// Format writes a mission back out in the canonical layout
func Format(m *engine.Mission) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d\n", m.MaxX, m.MaxY)
	for _, in := range m.Instructions {
		fmt.Fprintf(&b, "%d %d %s\n", in.Start.X, in.Start.Y, in.Heading)
		fmt.Fprintf(&b, "%s\n", engine.FormatCommands(in.Commands))
	}
	return b.String()
}
