// Command marsrover deploys rovers onto a plateau and reports where they end up.
//
// Missions come from command line arguments, a text file, a saved scenario, or
// an MCP client over stdio. Flags control the scenario directory, debug
// logging, and version output; both flags can also be set from the
// environment or a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/marsrover/mission/config"
	"github.com/wricardo/mcp-training/marsrover/mission/engine"
	"github.com/wricardo/mcp-training/marsrover/mission/service"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Mars Rover Mission Control"
)

// Exit statuses
const (
	exitFailure  = 1
	exitInternal = 2
)

// main loads .env, runs the command line, and maps errors to exit statuses.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode separates broken internal invariants from ordinary failures
func exitCode(err error) int {
	if engine.IsInternal(err) {
		return exitInternal
	}
	return exitFailure
}

// newApp builds the command tree
func newApp() *cli.Command {
	return &cli.Command{
		Name:    "marsrover",
		Usage:   AppName,
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "scenario-dir",
				Value:   "scenarios",
				Usage:   "Directory containing saved scenarios",
				Sources: cli.EnvVars("MARSROVER_SCENARIO_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "Enable debug logging",
				Sources: cli.EnvVars("MARSROVER_DEBUG"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			// Setup logging
			if cmd.Bool("debug") {
				log.SetFlags(log.LstdFlags | log.Lshortfile)
			} else {
				log.SetFlags(log.LstdFlags)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "deploy",
				Usage:     "Deploy rovers given as arguments: MAX_X MAX_Y (X Y HEADING COMMANDS)...",
				ArgsUsage: "MAX_X MAX_Y [X Y HEADING COMMANDS]...",
				Flags:     outputFlags(),
				Action:    runDeploy,
			},
			{
				Name:      "run",
				Usage:     "Deploy rovers from a mission file, or stdin when FILE is -",
				ArgsUsage: "FILE|-",
				Flags:     outputFlags(),
				Action:    runFile,
			},
			{
				Name:      "scenario",
				Usage:     "Deploy a saved scenario",
				ArgsUsage: "NAME",
				Flags:     outputFlags(),
				Action:    runScenario,
			},
			{
				Name:  "scenarios",
				Usage: "List saved scenarios",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Print the listing as JSON"},
				},
				Action: listScenarios,
			},
			{
				Name:   "validate",
				Usage:  "Deploy every saved scenario and check it against its expectation",
				Action: validateScenarios,
			},
			{
				Name:   "mcp",
				Usage:  "Serve the mission tools over MCP stdio",
				Action: serveMCP,
			},
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{Name: "grid", Usage: "Draw the plateau after the final positions"},
		&cli.BoolFlag{Name: "json", Usage: "Print the final positions as JSON"},
		&cli.BoolFlag{Name: "trace", Usage: "Print every executed command"},
	}
}

// initializeServices builds the mission service. Commands that only deploy
// inline missions pass withScenarios=false so a missing directory is not an error.
func initializeServices(cmd *cli.Command, withScenarios bool) (service.MissionService, error) {
	debug := cmd.Bool("debug")
	if !withScenarios {
		return service.NewMissionService(nil, debug), nil
	}

	manager, err := config.NewManager(cmd.String("scenario-dir"))
	if err != nil {
		return nil, fmt.Errorf("could not open scenario directory: %w", err)
	}
	return service.NewMissionService(manager, debug), nil
}

// deployFailure prefixes deployment errors the way every command reports them
func deployFailure(err error) error {
	var runErr *service.RunError
	if errors.As(err, &runErr) {
		return fmt.Errorf("could not deploy rovers: %w", err)
	}
	return err
}
