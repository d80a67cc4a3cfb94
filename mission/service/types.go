package service

import (
	"github.com/wricardo/mcp-training/marsrover/mission/engine"
)

// DeployOptions tunes what a deployment reports
type DeployOptions struct {
	// Trace records every executed command in the result
	Trace bool
}

// PlateauInfo describes the grid a deployment ran on
type PlateauInfo struct {
	MaxX int `json:"max_x"`
	MaxY int `json:"max_y"`
}

// DeployResult contains the outcome of a successful deployment
type DeployResult struct {
	RunID            string              `json:"run_id"`
	Scenario         string              `json:"scenario,omitempty"`
	Plateau          PlateauInfo         `json:"plateau"`
	Rovers           []engine.RoverState `json:"rovers"`
	CommandsExecuted int                 `json:"commands_executed"`
	Steps            []engine.Step       `json:"steps,omitempty"`
	DurationMS       int64               `json:"duration_ms"`
}

// RunError is returned when a deployment aborts. Code is the engine.Code of
// the cause and Internal marks a broken occupancy invariant.
type RunError struct {
	RunID    string
	Scenario string
	Code     string
	Internal bool
	Err      error
}

func (e *RunError) Error() string {
	return e.Err.Error()
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// ValidationResult captures the outcome of validating a single scenario file.
// If Valid is true, Errors is empty; otherwise it accumulates every problem found.
type ValidationResult struct {
	File       string   `json:"file"`
	ScenarioID string   `json:"scenario_id"`
	Valid      bool     `json:"valid"`
	Errors     []string `json:"errors,omitempty"`
}
