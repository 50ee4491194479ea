package ui

import (
	"gridkeys/internal/domain"
	"gridkeys/internal/grid"
)

// StateMsg carries a session snapshot published after a transition
type StateMsg struct {
	State domain.SessionState
}

// DispatchedMsg reports a pointer command that was carried out
type DispatchedMsg struct {
	Key     domain.KeySymbol
	Command string
}

// DispatchFailedMsg reports a pointer command the backend rejected
type DispatchFailedMsg struct {
	Key domain.KeySymbol
	Err error
}

// ConfigReloadedMsg carries a configuration that replaced the running one
type ConfigReloadedMsg struct {
	Path   string
	Config *grid.Config
}

// ConfigRejectedMsg reports a changed config file that failed to load
type ConfigRejectedMsg struct {
	Path string
	Err  error
}

// bindingsPagerMsg contains the result of the bindings pager
type bindingsPagerMsg struct {
	err error
}
