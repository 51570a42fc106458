package ui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/danhigham/splashscreen/internal/config"
)

// StoreUpdatedMsg signals that the store state has changed.
type StoreUpdatedMsg struct{}

// ConfigReloadedMsg delivers a config file that changed on disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// taskFinishedMsg is emitted when a boot task's command returns.
type taskFinishedMsg struct {
	name string
	err  error
}

// gateTimerMsg signals that the minimum overlay display time has elapsed.
type gateTimerMsg struct{}

// clockTickMsg triggers a status bar time refresh.
type clockTickMsg struct{}

// StoreUpdatedCmd returns a command that emits StoreUpdatedMsg.
func StoreUpdatedCmd() tea.Msg {
	return StoreUpdatedMsg{}
}
