package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// TransformRegistry creates transforms from string parameters, for CLI flags.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with the built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set", createSetValue)
	registry.Register("adjust", createAdjustBy)
	registry.Register("scale", createScaleBy)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:variable=value"
// Example: "adjust:annual_return=-1.5"
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:variable=value', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseAssignment parses "variable=value" into a SetValue transform.
func ParseAssignment(assignment string) (InputTransform, error) {
	kv := strings.SplitN(assignment, "=", 2)
	if len(kv) != 2 {
		return nil, fmt.Errorf("invalid assignment, expected 'variable=value', got: %s", assignment)
	}
	return createSetValue(map[string]string{strings.TrimSpace(kv[0]): strings.TrimSpace(kv[1])})
}

// Factory functions for each transform

func createSetValue(params map[string]string) (InputTransform, error) {
	variable, value, err := singleVariableParam("set", params)
	if err != nil {
		return nil, err
	}
	return &SetValue{Variable: variable, Value: value}, nil
}

func createAdjustBy(params map[string]string) (InputTransform, error) {
	variable, delta, err := singleVariableParam("adjust", params)
	if err != nil {
		return nil, err
	}
	return &AdjustBy{Variable: variable, Delta: delta}, nil
}

func createScaleBy(params map[string]string) (InputTransform, error) {
	variable, factor, err := singleVariableParam("scale", params)
	if err != nil {
		return nil, err
	}
	return &ScaleBy{Variable: variable, Factor: factor}, nil
}

// singleVariableParam extracts the one "variable=number" pair each transform takes.
func singleVariableParam(transform string, params map[string]string) (string, float64, error) {
	if len(params) != 1 {
		return "", 0, fmt.Errorf("%s requires exactly one 'variable=value' parameter, got %d", transform, len(params))
	}
	for variable, raw := range params {
		if _, err := LookupVariable(variable); err != nil {
			return "", 0, err
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return "", 0, fmt.Errorf("invalid %s value: %w", variable, err)
		}
		return variable, value, nil
	}
	return "", 0, nil
}
