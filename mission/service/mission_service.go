package service

import (
	"context"

	"github.com/wricardo/mcp-training/marsrover/mission/config"
	"github.com/wricardo/mcp-training/marsrover/mission/engine"
)

// MissionService defines all mission-related operations
type MissionService interface {
	// Deployment
	Deploy(ctx context.Context, mission *engine.Mission, opts DeployOptions) (*DeployResult, error)
	RunScenario(ctx context.Context, scenarioID string, opts DeployOptions) (*DeployResult, error)

	// Scenarios
	ListScenarios(ctx context.Context) ([]*config.ScenarioInfo, error)
	LoadScenario(ctx context.Context, scenarioID string) (*config.Scenario, error)
	ValidateScenarios(ctx context.Context) ([]*ValidationResult, error)
}

// ScenarioStore handles scenario loading
type ScenarioStore interface {
	LoadScenario(id string) (*config.Scenario, error)
	ListScenarios() ([]*config.ScenarioInfo, error)
	Files() ([]string, error)
}
