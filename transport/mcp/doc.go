// Package mcp provides the Model Context Protocol server for rover missions.
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - deploy_rovers: Deploy rovers from mission text, optionally with a trace and grid
//   - run_scenario: Deploy a saved scenario by id
//   - list_scenarios: List saved scenarios
//   - rover_instructions: Input format, commands and error codes
//
// Failed deployments come back as tool errors carrying the engine error code
// (already_occupied, collision, out_of_bounds) so agents can branch on it.
//
// Usage:
//
//	srv := mcp.NewServer(missionService, version)
//	if err := srv.ServeStdio(); err != nil {
//		log.Fatal(err)
//	}
package mcp
