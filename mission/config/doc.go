// Package config provides scenario management for the rover simulator.
//
// The config package handles:
//   - Loading scenarios from the scenarios directory
//   - Scenario validation
//   - Caching and listing available scenarios
//   - Saving scenarios in any supported format
//
// Scenario Formats:
//
// A scenario is looked up by id, the file name without extension. The
// extension picks the decoder:
//   - .yaml / .yml: structured scenario (name, description, plateau, rovers, expect)
//   - .json: the same structure as JSON
//   - .txt: the plain mission text accepted by package input
//
// Usage:
//
//	manager, err := config.NewManager("scenarios")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	scenario, err := manager.LoadScenario("canonical")
//	mission, err := scenario.Mission()
//
// Expectations:
//
// A scenario may declare the final rover states or the error code it is
// expected to produce; the validate command deploys every scenario and
// compares the outcome.
package config
