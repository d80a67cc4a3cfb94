package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wricardo/mcp-training/marsrover/mission/config"
	"github.com/wricardo/mcp-training/marsrover/mission/engine"
)

var errNoScenarios = errors.New("no scenario directory configured")

// missionServiceImpl implements the MissionService interface
type missionServiceImpl struct {
	scenarios ScenarioStore
	debug     bool
}

// NewMissionService creates a new mission service instance. With debug set
// every executed command is logged. scenarios may be nil when only Deploy is used.
func NewMissionService(scenarios ScenarioStore, debug bool) MissionService {
	return &missionServiceImpl{
		scenarios: scenarios,
		debug:     debug,
	}
}

// Deploy runs a mission on a fresh plateau
func (s *missionServiceImpl) Deploy(ctx context.Context, mission *engine.Mission, opts DeployOptions) (*DeployResult, error) {
	return s.deploy(ctx, "", mission, opts)
}

// RunScenario loads a scenario by id and deploys it
func (s *missionServiceImpl) RunScenario(ctx context.Context, scenarioID string, opts DeployOptions) (*DeployResult, error) {
	scenario, err := s.LoadScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}

	mission, err := scenario.Mission()
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenarioID, err)
	}
	return s.deploy(ctx, scenarioID, mission, opts)
}

func (s *missionServiceImpl) deploy(ctx context.Context, scenarioID string, mission *engine.Mission, opts DeployOptions) (result *DeployResult, err error) {
	if mission == nil {
		return nil, errors.New("mission is required")
	}

	runID := uuid.NewString()
	done := timeOp(runID, "deploy")
	defer func() { done(&err) }()

	plateau, err := engine.NewPlateau(mission.MaxX, mission.MaxY)
	if err != nil {
		return nil, &RunError{RunID: runID, Scenario: scenarioID, Code: engine.Code(err), Err: err}
	}

	result = &DeployResult{
		RunID:    runID,
		Scenario: scenarioID,
		Plateau:  PlateauInfo{MaxX: mission.MaxX, MaxY: mission.MaxY},
	}

	deployment := engine.NewDeployment(plateau)
	deployment.OnStep(func(step engine.Step) {
		result.CommandsExecuted++
		if opts.Trace {
			result.Steps = append(result.Steps, step)
		}
		if s.debug {
			log.Printf("run_id=%s step %s", runID, step)
		}
	})

	start := time.Now()
	rovers, err := deployment.RunContext(ctx, mission.Instructions)
	if err != nil {
		return nil, &RunError{
			RunID:    runID,
			Scenario: scenarioID,
			Code:     engine.Code(err),
			Internal: engine.IsInternal(err),
			Err:      err,
		}
	}

	result.Rovers = engine.States(rovers)
	result.DurationMS = time.Since(start).Milliseconds()
	return result, nil
}

// ListScenarios returns all loadable scenarios
func (s *missionServiceImpl) ListScenarios(ctx context.Context) ([]*config.ScenarioInfo, error) {
	if s.scenarios == nil {
		return nil, errNoScenarios
	}
	return s.scenarios.ListScenarios()
}

// LoadScenario loads a scenario by id, listing the available ids when it is missing
func (s *missionServiceImpl) LoadScenario(ctx context.Context, scenarioID string) (*config.Scenario, error) {
	if s.scenarios == nil {
		return nil, errNoScenarios
	}
	scenario, err := s.scenarios.LoadScenario(scenarioID)
	if err == nil {
		return scenario, nil
	}

	if errors.Is(err, config.ErrScenarioNotFound) {
		infos, listErr := s.scenarios.ListScenarios()
		if listErr == nil && len(infos) > 0 {
			ids := make([]string, 0, len(infos))
			for _, info := range infos {
				ids = append(ids, info.ScenarioID)
			}
			return nil, fmt.Errorf("%w: %s (available: %s)", config.ErrScenarioNotFound, scenarioID, strings.Join(ids, ", "))
		}
	}
	return nil, fmt.Errorf("failed to load scenario %s: %w", scenarioID, err)
}

// ValidateScenarios loads every scenario file, deploys it, and checks the
// outcome against the file's expectation. A scenario without one must deploy
// cleanly.
func (s *missionServiceImpl) ValidateScenarios(ctx context.Context) ([]*ValidationResult, error) {
	if s.scenarios == nil {
		return nil, errNoScenarios
	}
	files, err := s.scenarios.Files()
	if err != nil {
		return nil, err
	}

	results := make([]*ValidationResult, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		results = append(results, s.validateFile(ctx, file))
	}
	return results, nil
}

func (s *missionServiceImpl) validateFile(ctx context.Context, file string) *ValidationResult {
	base := filepath.Base(file)
	result := &ValidationResult{
		File:       base,
		ScenarioID: strings.TrimSuffix(base, filepath.Ext(base)),
		Valid:      true,
	}

	fail := func(format string, args ...any) *ValidationResult {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
		return result
	}

	scenario, err := config.LoadFile(file)
	if err != nil {
		return fail("load: %v", err)
	}
	mission, err := scenario.Mission()
	if err != nil {
		return fail("mission: %v", err)
	}

	deployed, err := s.deploy(ctx, result.ScenarioID, mission, DeployOptions{})
	expect := scenario.Expect
	switch {
	case expect == nil:
		if err != nil {
			return fail("deploy: %v", err)
		}
	case expect.Error != "":
		if err == nil {
			return fail("expected error %s, deployment succeeded", expect.Error)
		}
		if code := engine.Code(err); code != expect.Error {
			return fail("expected error %s, got %s: %v", expect.Error, code, err)
		}
	default:
		if err != nil {
			return fail("deploy: %v", err)
		}
		for i, want := range expect.Rovers {
			if got := deployed.Rovers[i]; got != want {
				fail("rover %d: expected %s, got %s", i+1, want, got)
			}
		}
	}
	return result
}
