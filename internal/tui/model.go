package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/nestegg/internal/breakeven"
	"github.com/rgehrsitz/nestegg/internal/calculation"
	"github.com/rgehrsitz/nestegg/internal/config"
	"github.com/rgehrsitz/nestegg/internal/domain"
	"github.com/rgehrsitz/nestegg/internal/transform"
	"github.com/rgehrsitz/nestegg/internal/tui/scenes"
	"github.com/rgehrsitz/nestegg/internal/tui/tuimsg"
)

// DefaultInputs is the plan shown when no configuration file is given
var DefaultInputs = domain.RetirementInputs{
	CurrentAge:               30,
	RetirementAge:            60,
	CurrentSavings:           50_000,
	MonthlyContribution:      2_000,
	AnnualReturn:             8,
	InflationRate:            2,
	ContributionIncreaseRate: 3,
	CurrentYearlySpending:    40_000,
	TaxRate:                  20,
}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	config     *domain.Configuration
	initial    domain.RetirementInputs
	result     *domain.CalculationResult

	calcEngine *calculation.CalculationEngine
	solver     *breakeven.Solver

	parametersModel *scenes.ParametersModel
	solveModel      *scenes.SolveModel
	spinner         spinner.Model

	err     error
	loading bool
}

// NewModel creates a new application model. An empty configPath starts from
// DefaultInputs.
func NewModel(configPath, currency string) Model {
	engine := calculation.NewCalculationEngine()
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		currentScene:    SceneParameters,
		configPath:      configPath,
		initial:         DefaultInputs,
		calcEngine:      engine,
		solver:          breakeven.NewDefaultSolver(engine),
		parametersModel: scenes.NewParametersModel(currency),
		solveModel:      scenes.NewSolveModel(currency),
		spinner:         sp,
		width:           100,
		height:          30,
		loading:         configPath != "",
	}
	m.parametersModel.SetInputs(m.initial)
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	if m.configPath != "" {
		return tea.Batch(m.spinner.Tick, loadConfigCmd(m.configPath))
	}
	return calculateCmd(m.calcEngine, m.initial)
}

// Inputs returns the inputs being edited
func (m Model) Inputs() domain.RetirementInputs {
	return m.parametersModel.Inputs()
}

// Result returns the latest calculation, nil before the first completes
func (m Model) Result() *domain.CalculationResult {
	return m.result
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// loadConfigCmd returns a command that loads the configuration file
func loadConfigCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		cfg, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ConfigLoadedMsg{Config: cfg}
	}
}

// calculateCmd returns a command that runs the projection for inputs
func calculateCmd(engine *calculation.CalculationEngine, inputs domain.RetirementInputs) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.Calculate(inputs)
		return tuimsg.CalculationCompleteMsg{Result: result, Err: err}
	}
}

// solveCmd returns a command that bisects for the requested variable
func solveCmd(solver *breakeven.Solver, inputs domain.RetirementInputs, req tuimsg.SolveRequestedMsg) tea.Cmd {
	return func() tea.Msg {
		result, err := solver.Solve(context.Background(), breakeven.SolveRequest{
			Variable:  req.Variable,
			SearchMin: req.Min,
			SearchMax: req.Max,
			Base:      inputs,
		})
		return tuimsg.SolveCompleteMsg{Result: result, Err: err}
	}
}

// applySolution stores a solved value in the edited inputs
func applySolution(inputs domain.RetirementInputs, msg tuimsg.ApplySolutionMsg) (domain.RetirementInputs, error) {
	return transform.SetVariable(inputs, msg.Variable, msg.Value)
}
