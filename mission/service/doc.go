// Package service provides the mission layer shared by the command line and
// the MCP server.
//
// # Overview
//
// MissionService wraps the engine with run bookkeeping: every deployment gets
// a run id, is timed, and can optionally record a trace of executed commands.
// Scenarios are resolved through a ScenarioStore, which config.Manager
// satisfies.
//
// # Usage
//
//	manager, _ := config.NewManager("scenarios")
//	svc := service.NewMissionService(manager, false)
//	result, err := svc.RunScenario(ctx, "canonical", service.DeployOptions{})
//
// A failed deployment returns a *RunError whose Code matches engine.Code and
// whose Internal flag marks errors that indicate a bug rather than bad input.
package service
