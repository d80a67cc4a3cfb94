package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/mcp-training/marsrover/mission/engine"
	"github.com/wricardo/mcp-training/marsrover/mission/input"
	"github.com/wricardo/mcp-training/marsrover/mission/report"
	"github.com/wricardo/mcp-training/marsrover/mission/service"
	"github.com/wricardo/mcp-training/marsrover/transport/mcp"
)

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

// runDeploy handles "deploy MAX_X MAX_Y (X Y HEADING COMMANDS)..."
func runDeploy(ctx context.Context, cmd *cli.Command) error {
	mission, err := input.ParseArgs(cmd.Args().Slice())
	if err != nil {
		return fmt.Errorf("could not create config: %w", err)
	}
	return deployMission(ctx, cmd, mission)
}

// runFile handles "run FILE|-"
func runFile(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("run expects exactly one FILE argument, use - for stdin")
	}

	name := cmd.Args().First()
	var r io.Reader
	if name == "-" {
		r = stdin(cmd)
	} else {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("could not create config: %w", err)
		}
		defer f.Close()
		r = f
	}

	mission, err := input.ParseReader(name, r)
	if err != nil {
		return fmt.Errorf("could not create config: %w", err)
	}
	return deployMission(ctx, cmd, mission)
}

func deployMission(ctx context.Context, cmd *cli.Command, mission *engine.Mission) error {
	missions, err := initializeServices(cmd, false)
	if err != nil {
		return err
	}

	result, err := missions.Deploy(ctx, mission, service.DeployOptions{Trace: cmd.Bool("trace")})
	if err != nil {
		return deployFailure(err)
	}
	return printResult(cmd, result)
}

// runScenario handles "scenario NAME"
func runScenario(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return errors.New("scenario expects exactly one NAME argument")
	}

	missions, err := initializeServices(cmd, true)
	if err != nil {
		return err
	}

	result, err := missions.RunScenario(ctx, cmd.Args().First(), service.DeployOptions{Trace: cmd.Bool("trace")})
	if err != nil {
		return deployFailure(err)
	}
	return printResult(cmd, result)
}

func printResult(cmd *cli.Command, result *service.DeployResult) error {
	w := stdout(cmd)

	if cmd.Bool("trace") {
		for _, step := range result.Steps {
			fmt.Fprintln(w, step)
		}
	}

	if cmd.Bool("json") {
		out, err := report.JSON(result.Rovers)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
	} else {
		fmt.Fprint(w, report.Text(result.Rovers))
	}

	if cmd.Bool("grid") {
		grid, err := report.Grid(result.Plateau.MaxX, result.Plateau.MaxY, result.Rovers)
		if err != nil {
			if !errors.Is(err, report.ErrGridTooLarge) {
				return err
			}
			fmt.Fprintf(w, "grid omitted: %v\n", err)
			return nil
		}
		fmt.Fprintln(w, grid)
	}
	return nil
}

// listScenarios handles "scenarios"
func listScenarios(ctx context.Context, cmd *cli.Command) error {
	missions, err := initializeServices(cmd, true)
	if err != nil {
		return err
	}

	infos, err := missions.ListScenarios(ctx)
	if err != nil {
		return err
	}

	w := stdout(cmd)
	if cmd.Bool("json") {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(infos) == 0 {
		fmt.Fprintln(w, "no scenarios found")
		return nil
	}
	for _, info := range infos {
		line := fmt.Sprintf("%-20s %dx%d  %d rovers", info.ScenarioID, info.MaxX, info.MaxY, info.Rovers)
		if info.Description != "" {
			line += "  " + info.Description
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	return nil
}

// validateScenarios handles "validate"
func validateScenarios(ctx context.Context, cmd *cli.Command) error {
	missions, err := initializeServices(cmd, true)
	if err != nil {
		return err
	}

	results, err := missions.ValidateScenarios(ctx)
	if err != nil {
		return err
	}

	w := stdout(cmd)
	failed := 0
	for _, r := range results {
		if r.Valid {
			fmt.Fprintf(w, "ok    %s\n", r.File)
			continue
		}
		failed++
		fmt.Fprintf(w, "FAIL  %s\n", r.File)
		for _, msg := range r.Errors {
			fmt.Fprintf(w, "      %s\n", msg)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed validation", failed, len(results))
	}
	return nil
}

// serveMCP handles "mcp"
func serveMCP(ctx context.Context, cmd *cli.Command) error {
	missions, err := initializeServices(cmd, true)
	if err != nil {
		return err
	}
	return mcp.NewServer(missions, Version).ServeStdio()
}
