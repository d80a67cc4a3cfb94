package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/mcp-training/marsrover/mission/engine"
	"github.com/wricardo/mcp-training/marsrover/mission/input"
)

// PlateauSpec holds the inclusive upper-right corner of the plateau
type PlateauSpec struct {
	MaxX int `json:"max_x" yaml:"max_x"`
	MaxY int `json:"max_y" yaml:"max_y"`
}

// RoverSpec is one rover as written in a scenario file
type RoverSpec struct {
	X        int    `json:"x" yaml:"x"`
	Y        int    `json:"y" yaml:"y"`
	Heading  string `json:"heading" yaml:"heading"`
	Commands string `json:"commands,omitempty" yaml:"commands,omitempty"`
}

// Expectation is the outcome a scenario claims to produce. Either Rovers or
// Error is set; Error holds an engine.Code value such as "collision".
type Expectation struct {
	Rovers []engine.RoverState `json:"rovers,omitempty" yaml:"rovers,omitempty"`
	Error  string              `json:"error,omitempty" yaml:"error,omitempty"`
}

// Scenario is a named mission loaded from the scenarios directory
type Scenario struct {
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Plateau     PlateauSpec  `json:"plateau" yaml:"plateau"`
	Rovers      []RoverSpec  `json:"rovers" yaml:"rovers"`
	Expect      *Expectation `json:"expect,omitempty" yaml:"expect,omitempty"`
}

var knownErrorCodes = map[string]bool{
	"already_occupied": true,
	"collision":        true,
	"out_of_bounds":    true,
}

// Validate checks the scenario for structural errors. It does not run the
// mission, so collisions are only found by deploying it.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario validation: name is required")
	}
	if s.Plateau.MaxX < 0 || s.Plateau.MaxY < 0 {
		return fmt.Errorf("scenario validation: plateau bounds must be non-negative, got %d x %d", s.Plateau.MaxX, s.Plateau.MaxY)
	}
	for i, r := range s.Rovers {
		if r.X < 0 || r.Y < 0 {
			return fmt.Errorf("scenario validation: rover %d position must be non-negative, got (%d,%d)", i+1, r.X, r.Y)
		}
		if _, err := engine.ParseHeading(r.Heading); err != nil {
			return fmt.Errorf("scenario validation: rover %d: %w", i+1, err)
		}
		if _, err := engine.ParseCommands(r.Commands); err != nil {
			return fmt.Errorf("scenario validation: rover %d: %w", i+1, err)
		}
	}
	if s.Expect != nil {
		if s.Expect.Error != "" && len(s.Expect.Rovers) > 0 {
			return fmt.Errorf("scenario validation: expect must set either rovers or error, not both")
		}
		if s.Expect.Error != "" && !knownErrorCodes[s.Expect.Error] {
			return fmt.Errorf("scenario validation: unknown expected error %q", s.Expect.Error)
		}
		if len(s.Expect.Rovers) > 0 && len(s.Expect.Rovers) != len(s.Rovers) {
			return fmt.Errorf("scenario validation: expect lists %d rovers but scenario has %d", len(s.Expect.Rovers), len(s.Rovers))
		}
	}
	return nil
}

// Mission converts the scenario into engine types
func (s *Scenario) Mission() (*engine.Mission, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	mission := &engine.Mission{
		MaxX:         s.Plateau.MaxX,
		MaxY:         s.Plateau.MaxY,
		Instructions: make([]engine.Instruction, 0, len(s.Rovers)),
	}
	for i, r := range s.Rovers {
		heading, err := engine.ParseHeading(r.Heading)
		if err != nil {
			return nil, fmt.Errorf("rover %d: %w", i+1, err)
		}
		commands, err := engine.ParseCommands(r.Commands)
		if err != nil {
			return nil, fmt.Errorf("rover %d: %w", i+1, err)
		}
		mission.Instructions = append(mission.Instructions, engine.Instruction{
			Start:    engine.Position{X: r.X, Y: r.Y},
			Heading:  heading,
			Commands: commands,
		})
	}
	return mission, nil
}

// FromMission builds a scenario from an already parsed mission
func FromMission(name string, m *engine.Mission) *Scenario {
	s := &Scenario{
		Name:    name,
		Plateau: PlateauSpec{MaxX: m.MaxX, MaxY: m.MaxY},
		Rovers:  make([]RoverSpec, 0, len(m.Instructions)),
	}
	for _, in := range m.Instructions {
		s.Rovers = append(s.Rovers, RoverSpec{
			X:        in.Start.X,
			Y:        in.Start.Y,
			Heading:  in.Heading.String(),
			Commands: engine.FormatCommands(in.Commands),
		})
	}
	return s
}

// LoadFile reads a scenario from path. The format follows the extension:
// .yaml/.yml, .json, or .txt for the plain mission text.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	scenario, err := Decode(name, filepath.Ext(path), data)
	if err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return scenario, nil
}

// Decode parses scenario bytes in the format named by ext. name is used when
// the document does not carry its own.
func Decode(name, ext string, data []byte) (*Scenario, error) {
	var scenario Scenario

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &scenario); err != nil {
			return nil, fmt.Errorf("failed to parse scenario: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &scenario); err != nil {
			return nil, fmt.Errorf("failed to parse scenario: %w", err)
		}
	case ".txt":
		mission, err := input.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse scenario: %w", err)
		}
		scenario = *FromMission(name, mission)
	default:
		return nil, fmt.Errorf("unsupported scenario format %q", ext)
	}

	if scenario.Name == "" {
		scenario.Name = name
	}
	return &scenario, nil
}

// Encode serialises a scenario in the format named by ext
func Encode(ext string, s *Scenario) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Marshal(s)
	case ".json":
		return json.MarshalIndent(s, "", "  ")
	case ".txt":
		mission, err := s.Mission()
		if err != nil {
			return nil, err
		}
		return []byte(input.Format(mission)), nil
	}
	return nil, fmt.Errorf("unsupported scenario format %q", ext)
}
