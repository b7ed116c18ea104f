package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"
)

// LoadScenario reads a scenario YAML file into a validated input snapshot.
// Solver tuning falls back to the production defaults when omitted.
func LoadScenario(path string) (*CalculationEngineInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var input CalculationEngineInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	input.ApplyDefaults()
	if err := input.Validate(); err != nil {
		return nil, err
	}
	return &input, nil
}

// ApplyDefaults fills unset solver tuning fields with the production defaults.
func (in *CalculationEngineInput) ApplyDefaults() {
	defaults := DefaultSolverTuning()
	if in.Solver.MaxIterations == 0 {
		in.Solver.MaxIterations = defaults.MaxIterations
	}
	if in.Solver.ConvergenceTolerance.IsZero() {
		in.Solver.ConvergenceTolerance = defaults.ConvergenceTolerance
	}
	if in.Solver.RelaxationFactor.IsZero() {
		in.Solver.RelaxationFactor = defaults.RelaxationFactor
	}
}

// EngineDefaults holds deployment-level settings kept outside scenario files.
type EngineDefaults struct {
	Solver            SolverTuning `json:"solver"`
	RunTimeoutSeconds int          `json:"run_timeout_seconds"`
}

// LoadEngineDefaults reads an HJSON defaults file. HJSON keeps the file
// human-editable with comments; the content is bridged through JSON so the
// tagged decimal forms decode the same way everywhere.
func LoadEngineDefaults(path string) (EngineDefaults, error) {
	out := EngineDefaults{Solver: DefaultSolverTuning(), RunTimeoutSeconds: 30}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return out, fmt.Errorf("read defaults %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return out, fmt.Errorf("parse defaults %s: %w", path, err)
	}
	bridge, err := json.Marshal(raw)
	if err != nil {
		return out, fmt.Errorf("bridge defaults %s: %w", path, err)
	}
	if err := json.Unmarshal(bridge, &out); err != nil {
		return out, fmt.Errorf("decode defaults %s: %w", path, err)
	}
	return out, nil
}
