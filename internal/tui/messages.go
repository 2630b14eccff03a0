package tui

import (
	"github.com/correctme/correctme/internal/config"
	"github.com/correctme/correctme/internal/submission"
)

// correctionDoneMsg is sent when Controller.Complete returns
type correctionDoneMsg struct {
	state submission.State
}

// speechResultMsg carries one recognition outcome
type speechResultMsg struct {
	transcript string
	err        error
}

// configReloadMsg is sent by the config file watcher
type configReloadMsg struct {
	settings *config.Settings
	err      error
}

// settingsSavedMsg reports the result of persisting a settings change
type settingsSavedMsg struct {
	err error
}
