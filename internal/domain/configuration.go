package domain

// Configuration is the on-disk input file: base inputs plus optional named scenarios
// and defaults for the solve and sensitivity commands.
type Configuration struct {
	Inputs      RetirementInputs     `yaml:"inputs" json:"inputs"`
	Scenarios   []Scenario           `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
	Solve       *SolveDefaults       `yaml:"solve,omitempty" json:"solve,omitempty"`
	Sensitivity *SensitivityDefaults `yaml:"sensitivity,omitempty" json:"sensitivity,omitempty"`
}

// Scenario is a named variation of the base inputs.
type Scenario struct {
	Name        string             `yaml:"name" json:"name"`
	Description string             `yaml:"description,omitempty" json:"description,omitempty"`
	Overrides   map[string]float64 `yaml:"overrides" json:"overrides"`
}

// SolveDefaults supplies the solve command's variable and bounds from the file.
type SolveDefaults struct {
	Variable string  `yaml:"variable" json:"variable"`
	Min      float64 `yaml:"min" json:"min"`
	Max      float64 `yaml:"max" json:"max"`
}

// SensitivityDefaults supplies the sensitivity command's sweep from the file.
type SensitivityDefaults struct {
	Variable string  `yaml:"variable" json:"variable"`
	Min      float64 `yaml:"min" json:"min"`
	Max      float64 `yaml:"max" json:"max"`
	Steps    int     `yaml:"steps" json:"steps"`
}

// FindScenario returns the scenario with the given name.
func (c *Configuration) FindScenario(name string) (*Scenario, bool) {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}
