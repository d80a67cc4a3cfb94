package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/wricardo/mcp-training/marsrover/mission/engine"
	"github.com/wricardo/mcp-training/marsrover/mission/input"
	"github.com/wricardo/mcp-training/marsrover/mission/report"
	"github.com/wricardo/mcp-training/marsrover/mission/service"
)

// Server exposes the mission service as MCP tools
type Server struct {
	missions  service.MissionService
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server backed by the given mission service
func NewServer(missions service.MissionService, version string) *Server {
	s := &Server{missions: missions}

	s.mcpServer = server.NewMCPServer(
		"Mars Rover Mission",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(`Mars Rover Mission - MCP Interface

Deploy rovers onto a rectangular plateau and read back where they ended up.

AVAILABLE TOOLS:
- deploy_rovers: Deploy rovers from mission text ("5 5\n1 2 N\nLMLMLMLMM ...")
- run_scenario: Deploy a saved scenario by id
- list_scenarios: List saved scenarios
- rover_instructions: Input format, commands and error codes

Rovers move one at a time in input order. The first collision or boundary
violation aborts the whole deployment.`),
	)

	s.registerTools()
	return s
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "deploy_rovers",
		Description: "Deploy rovers on a plateau and return their final positions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"mission": map[string]interface{}{
					"type":        "string",
					"description": "Mission text: plateau bounds, then one start line and one command line per rover",
				},
				"trace": map[string]interface{}{
					"type":        "boolean",
					"description": "Include every executed command in the response",
				},
				"grid": map[string]interface{}{
					"type":        "boolean",
					"description": "Include a drawing of the final plateau",
				},
			},
			Required: []string{"mission"},
		},
	}, s.handleDeployRovers)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "run_scenario",
		Description: "Deploy a saved scenario and return the final rover positions",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scenario_id": map[string]interface{}{
					"type":        "string",
					"description": "Scenario id as returned by list_scenarios",
				},
				"trace": map[string]interface{}{
					"type":        "boolean",
					"description": "Include every executed command in the response",
				},
			},
			Required: []string{"scenario_id"},
		},
	}, s.handleRunScenario)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_scenarios",
		Description: "List saved scenarios",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleListScenarios)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "rover_instructions",
		Description: "Get the mission input format, command set and error codes",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleRoverInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (s *Server) GetMCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves the tools over stdin and stdout until the client disconnects
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func (s *Server) handleDeployRovers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	text, _ := args["mission"].(string)
	if strings.TrimSpace(text) == "" {
		return mcp.NewToolResultError("mission is required"), nil
	}
	trace, _ := args["trace"].(bool)
	grid, _ := args["grid"].(bool)

	mission, err := input.Parse(text)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.missions.Deploy(ctx, mission, service.DeployOptions{Trace: trace})
	if err != nil {
		return deployError(err), nil
	}

	out, err := formatResult(result, grid)
	if errors.Is(err, report.ErrGridTooLarge) {
		return mcp.NewToolResultError(fmt.Sprintf("could not draw grid: %v; deploy again without grid", err)), nil
	}
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleRunScenario(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	id, _ := args["scenario_id"].(string)
	if id == "" {
		return mcp.NewToolResultError("scenario_id is required"), nil
	}
	trace, _ := args["trace"].(bool)

	result, err := s.missions.RunScenario(ctx, id, service.DeployOptions{Trace: trace})
	if err != nil {
		return deployError(err), nil
	}

	out, err := formatResult(result, false)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleListScenarios(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos, err := s.missions.ListScenarios(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.MarshalIndent(map[string]interface{}{
		"scenarios": infos,
		"count":     len(infos),
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleRoverInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

// deployError reports a failed run with its machine-readable code
func deployError(err error) *mcp.CallToolResult {
	var runErr *service.RunError
	if errors.As(err, &runErr) && runErr.Code != "" {
		return mcp.NewToolResultError(fmt.Sprintf("could not deploy rovers: %v (code: %s)", err, runErr.Code))
	}
	return mcp.NewToolResultError(fmt.Sprintf("could not deploy rovers: %v", err))
}

func formatResult(result *service.DeployResult, grid bool) (string, error) {
	payload := map[string]interface{}{
		"run_id":            result.RunID,
		"plateau":           result.Plateau,
		"rovers":            result.Rovers,
		"final_positions":   strings.Split(strings.TrimSuffix(report.Text(result.Rovers), "\n"), "\n"),
		"commands_executed": result.CommandsExecuted,
		"duration_ms":       result.DurationMS,
	}
	if result.Scenario != "" {
		payload["scenario"] = result.Scenario
	}
	if len(result.Steps) > 0 {
		steps := make([]string, len(result.Steps))
		for i, step := range result.Steps {
			steps[i] = step.String()
		}
		payload["steps"] = steps
	}
	if grid {
		rows, err := report.Rows(result.Plateau.MaxX, result.Plateau.MaxY, result.Rovers)
		if err != nil {
			return "", err
		}
		payload["grid"] = rows
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var instructions = fmt.Sprintf(`Mars Rover Mission - Instructions

INPUT FORMAT:
  <max_x> <max_y>
  <x> <y> <heading>
  <commands>
  ... one start line and one command line per rover

  Example:
    5 5
    1 2 N
    LMLMLMLMM
    3 3 E
    MMRMMRMRRM

  The plateau spans (0,0) to (max_x,max_y) inclusive. A rover with no
  commands may leave its command line empty. Lines starting with # are
  comments.

HEADINGS: N, E, S, W

COMMANDS:
  L  turn 90 degrees left, stay in place
  R  turn 90 degrees right, stay in place
  M  move one cell forward

RULES:
  Rovers deploy one at a time in input order. Each rover finishes all of its
  commands before the next one is dropped, and stays on the plateau
  afterwards as an obstacle.
  Any error aborts the whole deployment and no positions are reported.

ERROR CODES:
  %s  a rover was dropped on an occupied cell
  %s         a move targeted an occupied cell
  %s     a move or drop left the plateau
`, engine.Code(engine.ErrAlreadyOccupied), engine.Code(engine.ErrCollision), engine.Code(engine.ErrOutOfBounds))
