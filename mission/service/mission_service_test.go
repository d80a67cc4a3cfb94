package service_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/wricardo/mcp-training/marsrover/mission/config"
	"github.com/wricardo/mcp-training/marsrover/mission/engine"
	"github.com/wricardo/mcp-training/marsrover/mission/service"
)

// MockScenarioStore implements service.ScenarioStore for testing
type MockScenarioStore struct {
	scenarios map[string]*config.Scenario
	files     []string
}

func NewMockScenarioStore() *MockScenarioStore {
	return &MockScenarioStore{
		scenarios: map[string]*config.Scenario{
			"canonical": {
				Name:    "Canonical",
				Plateau: config.PlateauSpec{MaxX: 5, MaxY: 5},
				Rovers: []config.RoverSpec{
					{X: 1, Y: 2, Heading: "N", Commands: "LMLMLMLMM"},
					{X: 3, Y: 3, Heading: "E", Commands: "MMRMMRMRRM"},
				},
			},
			"collision": {
				Name:    "Collision",
				Plateau: config.PlateauSpec{MaxX: 5, MaxY: 5},
				Rovers: []config.RoverSpec{
					{X: 1, Y: 2, Heading: "S"},
					{X: 1, Y: 1, Heading: "N", Commands: "M"},
				},
			},
		},
	}
}

func (m *MockScenarioStore) LoadScenario(id string) (*config.Scenario, error) {
	s, ok := m.scenarios[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", config.ErrScenarioNotFound, id)
	}
	return s, nil
}

func (m *MockScenarioStore) ListScenarios() ([]*config.ScenarioInfo, error) {
	infos := []*config.ScenarioInfo{}
	for _, id := range []string{"canonical", "collision"} {
		s := m.scenarios[id]
		infos = append(infos, &config.ScenarioInfo{
			ScenarioID: id,
			Name:       s.Name,
			MaxX:       s.Plateau.MaxX,
			MaxY:       s.Plateau.MaxY,
			Rovers:     len(s.Rovers),
		})
	}
	return infos, nil
}

func (m *MockScenarioStore) Files() ([]string, error) {
	return m.files, nil
}

func canonicalMission() *engine.Mission {
	return &engine.Mission{
		MaxX: 5,
		MaxY: 5,
		Instructions: []engine.Instruction{
			{
				Start:   engine.Position{X: 1, Y: 2},
				Heading: engine.North,
				Commands: []engine.Command{
					engine.TurnLeft, engine.MoveForward, engine.TurnLeft, engine.MoveForward,
					engine.TurnLeft, engine.MoveForward, engine.TurnLeft, engine.MoveForward, engine.MoveForward,
				},
			},
			{
				Start:   engine.Position{X: 3, Y: 3},
				Heading: engine.East,
				Commands: []engine.Command{
					engine.MoveForward, engine.MoveForward, engine.TurnRight, engine.MoveForward, engine.MoveForward,
					engine.TurnRight, engine.MoveForward, engine.TurnRight, engine.TurnRight, engine.MoveForward,
				},
			},
		},
	}
}

func TestMissionService_Deploy(t *testing.T) {
	svc := service.NewMissionService(NewMockScenarioStore(), false)

	result, err := svc.Deploy(context.Background(), canonicalMission(), service.DeployOptions{})
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}

	want := []engine.RoverState{
		{X: 1, Y: 3, Heading: engine.North},
		{X: 5, Y: 1, Heading: engine.East},
	}
	if len(result.Rovers) != len(want) {
		t.Fatalf("Expected %d rovers, got %d", len(want), len(result.Rovers))
	}
	for i := range want {
		if result.Rovers[i] != want[i] {
			t.Errorf("Rover %d: expected %s, got %s", i+1, want[i], result.Rovers[i])
		}
	}
	if result.CommandsExecuted != 19 {
		t.Errorf("Expected 19 commands executed, got %d", result.CommandsExecuted)
	}
	if result.RunID == "" {
		t.Error("Expected a run id")
	}
	if len(result.Steps) != 0 {
		t.Errorf("Expected no steps without trace, got %d", len(result.Steps))
	}
	if result.Plateau.MaxX != 5 || result.Plateau.MaxY != 5 {
		t.Errorf("Expected plateau 5x5, got %dx%d", result.Plateau.MaxX, result.Plateau.MaxY)
	}
}

func TestMissionService_DeployTrace(t *testing.T) {
	svc := service.NewMissionService(NewMockScenarioStore(), true)

	result, err := svc.Deploy(context.Background(), canonicalMission(), service.DeployOptions{Trace: true})
	if err != nil {
		t.Fatalf("Deploy failed: %v", err)
	}
	if len(result.Steps) != 19 {
		t.Fatalf("Expected 19 steps, got %d", len(result.Steps))
	}

	first := result.Steps[0]
	if first.Rover != 1 || first.Index != 0 || first.Command != engine.TurnLeft || first.Heading != engine.West {
		t.Errorf("Unexpected first step: %s", first)
	}
	last := result.Steps[len(result.Steps)-1]
	if last.Rover != 2 || last.To != (engine.Position{X: 5, Y: 1}) {
		t.Errorf("Unexpected last step: %s", last)
	}
}

func TestMissionService_DeployRunIDsDiffer(t *testing.T) {
	svc := service.NewMissionService(NewMockScenarioStore(), false)

	a, err := svc.Deploy(context.Background(), canonicalMission(), service.DeployOptions{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Deploy(context.Background(), canonicalMission(), service.DeployOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if a.RunID == b.RunID {
		t.Errorf("Expected distinct run ids, both were %s", a.RunID)
	}
}

func TestMissionService_DeployErrors(t *testing.T) {
	svc := service.NewMissionService(NewMockScenarioStore(), false)

	tests := []struct {
		name    string
		mission *engine.Mission
		code    string
		target  error
	}{
		{
			name:    "invalid plateau",
			mission: &engine.Mission{MaxX: -1, MaxY: 5},
			code:    "invalid_plateau",
			target:  engine.ErrInvalidPlateau,
		},
		{
			name: "out of bounds",
			mission: &engine.Mission{MaxX: 1, MaxY: 1, Instructions: []engine.Instruction{
				{Start: engine.Position{X: 1, Y: 1}, Heading: engine.North, Commands: []engine.Command{engine.MoveForward}},
			}},
			code:   "out_of_bounds",
			target: engine.ErrOutOfBounds,
		},
		{
			name: "already occupied",
			mission: &engine.Mission{MaxX: 3, MaxY: 3, Instructions: []engine.Instruction{
				{Start: engine.Position{X: 2, Y: 2}, Heading: engine.North},
				{Start: engine.Position{X: 2, Y: 2}, Heading: engine.South},
			}},
			code:   "already_occupied",
			target: engine.ErrAlreadyOccupied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Deploy(context.Background(), tt.mission, service.DeployOptions{})
			if err == nil {
				t.Fatalf("Expected error, got result %+v", result)
			}
			if result != nil {
				t.Errorf("Expected no partial result, got %+v", result)
			}

			var runErr *service.RunError
			if !errors.As(err, &runErr) {
				t.Fatalf("Expected *service.RunError, got %T", err)
			}
			if runErr.Code != tt.code {
				t.Errorf("Expected code %s, got %s", tt.code, runErr.Code)
			}
			if runErr.Internal {
				t.Error("Expected a non-internal error")
			}
			if !errors.Is(err, tt.target) {
				t.Errorf("Expected errors.Is(err, %v), got %v", tt.target, err)
			}
		})
	}
}

func TestMissionService_DeployNilMission(t *testing.T) {
	svc := service.NewMissionService(NewMockScenarioStore(), false)

	if _, err := svc.Deploy(context.Background(), nil, service.DeployOptions{}); err == nil {
		t.Error("Expected error for nil mission")
	}
}

func TestMissionService_RunScenario(t *testing.T) {
	svc := service.NewMissionService(NewMockScenarioStore(), false)
	ctx := context.Background()

	result, err := svc.RunScenario(ctx, "canonical", service.DeployOptions{})
	if err != nil {
		t.Fatalf("RunScenario failed: %v", err)
	}
	if result.Scenario != "canonical" {
		t.Errorf("Expected scenario canonical, got %s", result.Scenario)
	}
	if got := result.Rovers[1].String(); got != "5 1 E" {
		t.Errorf("Expected second rover at 5 1 E, got %s", got)
	}

	_, err = svc.RunScenario(ctx, "collision", service.DeployOptions{})
	var runErr *service.RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("Expected *service.RunError, got %v", err)
	}
	if runErr.Code != "collision" || runErr.Scenario != "collision" {
		t.Errorf("Unexpected run error: code=%s scenario=%s", runErr.Code, runErr.Scenario)
	}

	var deployErr *engine.DeployError
	if !errors.As(err, &deployErr) {
		t.Fatalf("Expected *engine.DeployError in chain, got %v", err)
	}
	if deployErr.Rover != 2 || deployErr.Command != 0 {
		t.Errorf("Expected rover 2 command 0, got rover %d command %d", deployErr.Rover, deployErr.Command)
	}
}

func TestMissionService_RunScenarioNotFound(t *testing.T) {
	svc := service.NewMissionService(NewMockScenarioStore(), false)

	_, err := svc.RunScenario(context.Background(), "missing", service.DeployOptions{})
	if !errors.Is(err, config.ErrScenarioNotFound) {
		t.Fatalf("Expected ErrScenarioNotFound, got %v", err)
	}
	if msg := err.Error(); msg != "scenario not found: missing (available: canonical, collision)" {
		t.Errorf("Unexpected message: %s", msg)
	}
}

func TestMissionService_ListScenarios(t *testing.T) {
	svc := service.NewMissionService(NewMockScenarioStore(), false)

	infos, err := svc.ListScenarios(context.Background())
	if err != nil {
		t.Fatalf("ListScenarios failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d", len(infos))
	}
	if infos[0].ScenarioID != "canonical" || infos[0].Rovers != 2 {
		t.Errorf("Unexpected first scenario: %+v", infos[0])
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMissionService_ValidateScenarios(t *testing.T) {
	dir := t.TempDir()
	store := NewMockScenarioStore()
	store.files = []string{
		writeFile(t, dir, "good.yaml", `name: Good
plateau: {max_x: 5, max_y: 5}
rovers:
  - {x: 1, y: 2, heading: N, commands: LMLMLMLMM}
expect:
  rovers:
    - {x: 1, y: 3, heading: N}
`),
		writeFile(t, dir, "wrong.yaml", `name: Wrong
plateau: {max_x: 5, max_y: 5}
rovers:
  - {x: 1, y: 2, heading: N, commands: M}
expect:
  rovers:
    - {x: 1, y: 2, heading: N}
`),
		writeFile(t, dir, "crash.json", `{
  "name": "Crash",
  "plateau": {"max_x": 5, "max_y": 5},
  "rovers": [
    {"x": 1, "y": 2, "heading": "S"},
    {"x": 1, "y": 1, "heading": "N", "commands": "M"}
  ],
  "expect": {"error": "collision"}
}`),
		writeFile(t, dir, "plain.txt", "5 5\n1 2 N\nLMLMLMLMM\n"),
		writeFile(t, dir, "broken.yaml", "name: [unterminated\n"),
		writeFile(t, dir, "silent.json", `{
  "name": "Silent",
  "plateau": {"max_x": 1, "max_y": 1},
  "rovers": [{"x": 1, "y": 1, "heading": "N", "commands": "M"}],
  "expect": {"error": "collision"}
}`),
	}

	svc := service.NewMissionService(store, false)
	results, err := svc.ValidateScenarios(context.Background())
	if err != nil {
		t.Fatalf("ValidateScenarios failed: %v", err)
	}

	want := map[string]bool{
		"good":   true,
		"wrong":  false,
		"crash":  true,
		"plain":  true,
		"broken": false,
		"silent": false,
	}
	if len(results) != len(want) {
		t.Fatalf("Expected %d results, got %d", len(want), len(results))
	}
	for _, r := range results {
		valid, ok := want[r.ScenarioID]
		if !ok {
			t.Errorf("Unexpected result for %s", r.ScenarioID)
			continue
		}
		if r.Valid != valid {
			t.Errorf("%s: expected valid=%v, got %v (errors: %v)", r.ScenarioID, valid, r.Valid, r.Errors)
		}
		if !r.Valid && len(r.Errors) == 0 {
			t.Errorf("%s: invalid result carries no errors", r.ScenarioID)
		}
	}
}

func TestMissionService_ValidateScenariosCancelled(t *testing.T) {
	store := NewMockScenarioStore()
	store.files = []string{writeFile(t, t.TempDir(), "plain.txt", "5 5\n1 2 N\n")}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := service.NewMissionService(store, false)
	if _, err := svc.ValidateScenarios(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestMissionService_NoStore(t *testing.T) {
	svc := service.NewMissionService(nil, false)
	ctx := context.Background()

	if _, err := svc.Deploy(ctx, canonicalMission(), service.DeployOptions{}); err != nil {
		t.Errorf("Deploy without a store failed: %v", err)
	}
	if _, err := svc.ListScenarios(ctx); err == nil {
		t.Error("Expected ListScenarios to fail without a store")
	}
	if _, err := svc.RunScenario(ctx, "canonical", service.DeployOptions{}); err == nil {
		t.Error("Expected RunScenario to fail without a store")
	}
	if _, err := svc.ValidateScenarios(ctx); err == nil {
		t.Error("Expected ValidateScenarios to fail without a store")
	}
}
