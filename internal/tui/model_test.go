package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/nestegg/internal/tui/tuimsg"
)

// step feeds msg to the model and returns the message its command produces, if any
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Msg) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	if cmd == nil {
		return next, nil
	}
	return next, cmd()
}

func initialized(t *testing.T) Model {
	t.Helper()
	m := NewModel("", "USD")
	msg := m.Init()()
	m, _ = step(t, m, msg)
	require.NotNil(t, m.Result())
	return m
}

func TestModel_InitCalculatesDefaults(t *testing.T) {
	m := initialized(t)

	assert.Equal(t, SceneParameters, m.CurrentScene())
	assert.Equal(t, DefaultInputs, m.Inputs())
	assert.Equal(t, "4570823.38", m.Result().NetWorthAtRetirement.StringFixed(2))
	assert.True(t, m.Result().Solvent)
	assert.Contains(t, m.View(), "nestegg")
}

func TestModel_SliderChangeRecalculates(t *testing.T) {
	m := initialized(t)

	m, msg := step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	changed, ok := msg.(tuimsg.InputsChangedMsg)
	require.True(t, ok, "expected InputsChangedMsg, got %T", msg)
	assert.Equal(t, 31, changed.Inputs.CurrentAge)

	m, msg = step(t, m, changed)
	m, _ = step(t, m, msg)
	assert.Equal(t, 31, m.Result().Inputs.CurrentAge)

	m, msg = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.IsType(t, tuimsg.ResetInputsMsg{}, msg)
	m, _ = step(t, m, msg)
	assert.Equal(t, DefaultInputs, m.Inputs())
}

func TestModel_SolveAndApply(t *testing.T) {
	m := initialized(t)

	m, msg := step(t, m, tuimsg.SolveRequestedMsg{Variable: "monthly_contribution", Min: 0, Max: 20_000})
	done, ok := msg.(tuimsg.SolveCompleteMsg)
	require.True(t, ok, "expected SolveCompleteMsg, got %T", msg)
	require.NoError(t, done.Err)
	require.True(t, done.Result.Found)
	assert.InDelta(t, 397.95, *done.Result.AppliedValue, 0.01)

	m, _ = step(t, m, done)
	m, msg = step(t, m, tuimsg.ApplySolutionMsg{Variable: "monthly_contribution", Value: *done.Result.AppliedValue})
	assert.Equal(t, SceneParameters, m.CurrentScene())
	assert.InDelta(t, 397.95, m.Inputs().MonthlyContribution, 0.01)

	m, _ = step(t, m, msg)
	assert.True(t, m.Result().Solvent)
}

func TestModel_Navigation(t *testing.T) {
	m := initialized(t)

	m, msg := step(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, NavigateMsg{Scene: SceneSolve}, msg)
	m, _ = step(t, m, msg)
	assert.Equal(t, SceneSolve, m.CurrentScene())
	assert.Contains(t, m.View(), "Solve for a variable")

	m, msg = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	m, _ = step(t, m, msg)
	assert.Equal(t, SceneHelp, m.CurrentScene())

	m, msg = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = step(t, m, msg)
	assert.Equal(t, SceneSolve, m.CurrentScene())
}

func TestModel_Quit(t *testing.T) {
	m := initialized(t)

	_, msg := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.IsType(t, tea.QuitMsg{}, msg)

	_, msg = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.IsType(t, tea.QuitMsg{}, msg)
}

func TestModel_LoadsConfig(t *testing.T) {
	m := NewModel("../config/testdata/plan.yaml", "USD")
	msg := loadConfigCmd("../config/testdata/plan.yaml")()
	loaded, ok := msg.(ConfigLoadedMsg)
	require.True(t, ok, "expected ConfigLoadedMsg, got %T", msg)

	m, msg = step(t, m, loaded)
	assert.Equal(t, loaded.Config.Inputs, m.Inputs())
	m, _ = step(t, m, msg)
	require.NotNil(t, m.Result())
	assert.Equal(t, loaded.Config.Inputs, m.Result().Inputs)
}

func TestModel_LoadErrorShownInStatusBar(t *testing.T) {
	m := NewModel("missing.yaml", "USD")
	msg := loadConfigCmd("missing.yaml")()
	require.IsType(t, ErrorMsg{}, msg)

	m, _ = step(t, m, msg)
	assert.Contains(t, m.View(), "failed to read file missing.yaml")
}
