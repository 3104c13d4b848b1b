package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a configuration document. JSON documents are accepted as
// YAML. Unknown keys are rejected so a misspelled input is not silently zero.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML: document is empty")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if err := config.Inputs.Validate(); err != nil {
		return fmt.Errorf("inputs: %w", err)
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(config.Inputs, &scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("duplicate scenario name %q", scenario.Name)
		}
		seen[scenario.Name] = true
	}

	if config.Solve != nil {
		if err := ip.validateSolve(config.Solve); err != nil {
			return fmt.Errorf("solve: %w", err)
		}
	}
	if config.Sensitivity != nil {
		if err := ip.validateSensitivity(config.Sensitivity); err != nil {
			return fmt.Errorf("sensitivity: %w", err)
		}
	}
	return nil
}

// validateScenario checks a scenario's overrides name real inputs and yield valid inputs
func (ip *InputParser) validateScenario(base domain.RetirementInputs, scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(scenario.Overrides) == 0 {
		return fmt.Errorf("scenario %s has no overrides", scenario.Name)
	}
	modified, err := transform.ApplyTransforms(base, transform.ScenarioTransforms(scenario.Overrides)...)
	if err != nil {
		return fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	if err := modified.Validate(); err != nil {
		return fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return nil
}

func (ip *InputParser) validateSolve(solve *domain.SolveDefaults) error {
	if _, err := transform.LookupVariable(solve.Variable); err != nil {
		return err
	}
	if solve.Min > solve.Max {
		return fmt.Errorf("min %g cannot be greater than max %g", solve.Min, solve.Max)
	}
	return nil
}

func (ip *InputParser) validateSensitivity(s *domain.SensitivityDefaults) error {
	if _, err := transform.LookupVariable(s.Variable); err != nil {
		return err
	}
	if s.Min > s.Max {
		return fmt.Errorf("min %g cannot be greater than max %g", s.Min, s.Max)
	}
	if s.Steps < 2 {
		return fmt.Errorf("steps must be at least 2, got %d", s.Steps)
	}
	return nil
}
