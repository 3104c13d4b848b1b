package tui

import (
	"github.com/rgehrsitz/nestegg/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneParameters Scene = iota
	SceneSolve
	SceneHelp
)

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneParameters:
		return "Parameters"
	case SceneSolve:
		return "Solve"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}
