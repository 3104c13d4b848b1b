package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/nestegg/internal/tui/tuimsg"
)

var (
	quitKeys = key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))
	tabKeys  = key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch scene"))
	helpKeys = key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help"))
	backKeys = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.parametersModel.SetSize(msg.Width, msg.Height-4)
		m.solveModel.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.loading = false
		if msg.Config != nil {
			m.initial = msg.Config.Inputs
			m.parametersModel.SetInputs(m.initial)
		}
		return m, calculateCmd(m.calcEngine, m.initial)

	case tuimsg.InputsChangedMsg:
		return m, calculateCmd(m.calcEngine, msg.Inputs)

	case tuimsg.ResetInputsMsg:
		m.parametersModel.SetInputs(m.initial)
		return m, calculateCmd(m.calcEngine, m.initial)

	case tuimsg.CalculationCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.result = msg.Result
		m.parametersModel.SetResult(msg.Result)
		return m, nil

	case tuimsg.SolveRequestedMsg:
		return m, solveCmd(m.solver, m.Inputs(), msg)

	case tuimsg.SolveCompleteMsg:
		m.solveModel.SetResult(msg.Result, msg.Err)
		return m, nil

	case tuimsg.ApplySolutionMsg:
		inputs, err := applySolution(m.Inputs(), msg)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.parametersModel.SetInputs(inputs)
		m.previousScene = m.currentScene
		m.currentScene = SceneParameters
		return m, calculateCmd(m.calcEngine, inputs)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	// The solve prompt owns every key while it is being edited.
	if m.currentScene == SceneSolve && m.solveModel.Editing() {
		return m.updateCurrentScene(msg)
	}

	switch {
	case key.Matches(msg, quitKeys):
		return m, tea.Quit

	case key.Matches(msg, tabKeys):
		next := SceneSolve
		if m.currentScene == SceneSolve {
			next = SceneParameters
		}
		if next == SceneSolve {
			m.solveModel.Prefill(m.parametersModel.FocusedVariable())
		}
		return m, func() tea.Msg { return NavigateMsg{Scene: next} }

	case key.Matches(msg, helpKeys):
		if m.currentScene != SceneHelp {
			return m, func() tea.Msg { return NavigateMsg{Scene: SceneHelp} }
		}

	case key.Matches(msg, backKeys):
		if m.currentScene != SceneParameters {
			back := m.previousScene
			if back == m.currentScene {
				back = SceneParameters
			}
			return m, func() tea.Msg { return NavigateMsg{Scene: back} }
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneParameters:
		m.parametersModel, cmd = m.parametersModel.Update(msg)
	case SceneSolve:
		m.solveModel, cmd = m.solveModel.Update(msg)
	}
	return m, cmd
}
