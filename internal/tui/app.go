package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/correctme/correctme/internal/config"
	"github.com/correctme/correctme/internal/logging"
	"github.com/correctme/correctme/internal/speech"
	"github.com/correctme/correctme/internal/submission"
)

const (
	Placeholder = "Type here..."

	inputHeight = 6
)

// Options wires the editor to its collaborators
type Options struct {
	Controller *submission.Controller
	Recognizer speech.Recognizer // nil disables speech input
	Settings   *config.Settings  // nil uses defaults
	ConfigPath string            // empty disables persisting and reloading settings

	// Context bounds in-flight requests; Run cancels it on exit
	Context context.Context
}

// AppModel is the top-level editor model
type AppModel struct {
	ctx        context.Context
	controller *submission.Controller
	recognizer speech.Recognizer
	settings   *config.Settings
	configPath string

	Input    textarea.Model
	Spinner  spinner.Model
	Help     help.Model
	Keys     editorKeyMap
	MenuKeys menuKeyMap

	ShowSettings bool
	MenuCursor   int
	ShowHistory  bool
	Listening    bool
	Notice       string

	Width  int
	Height int
}

// NewAppModel creates the editor model
func NewAppModel(opts Options) AppModel {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	settings := config.NewSettings()
	if opts.Settings != nil {
		copied := *opts.Settings
		settings = &copied
	}

	recognizer := opts.Recognizer
	if recognizer == nil {
		recognizer = speech.Unavailable{}
	}

	ta := textarea.New()
	ta.Placeholder = Placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(inputHeight)
	ta.SetWidth(contentWidth(MinTerminalWidth) - 4)
	ta.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return AppModel{
		ctx:         ctx,
		controller:  opts.Controller,
		recognizer:  recognizer,
		settings:    settings,
		configPath:  opts.ConfigPath,
		Input:       ta,
		Spinner:     s,
		Help:        help.New(),
		Keys:        newEditorKeyMap(),
		MenuKeys:    newMenuKeyMap(),
		ShowHistory: settings.UI.ShowHistory,
	}
}

// Init starts the cursor blinking
func (m AppModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles all messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Input.SetWidth(contentWidth(msg.Width) - 4)
		m.Help.Width = contentWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		if m.ShowSettings {
			return m.updateSettings(msg)
		}
		return m.updateEditor(msg)

	case correctionDoneMsg:
		logging.Debug("Correction finished", zap.String("state", msg.state.String()))
		return m, nil

	case speechResultMsg:
		m.Listening = false
		if msg.err != nil {
			logging.Warn("Speech input failed", zap.Error(msg.err))
			m.Notice = "Speech input failed: " + msg.err.Error()
			return m, nil
		}
		if msg.transcript != "" {
			m.controller.AppendSpeechResult(msg.transcript)
			m.Input.SetValue(m.controller.Input())
		}
		return m, nil

	case configReloadMsg:
		return m.applyReload(msg), nil

	case settingsSavedMsg:
		if msg.err != nil {
			logging.Warn("Failed to save settings", zap.Error(msg.err))
			m.Notice = "Could not save settings: " + msg.err.Error()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.controller.Snapshot().Loading && !m.Listening {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m AppModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Submit):
		return m.submit()

	case key.Matches(msg, m.Keys.Clear):
		m.controller.Clear()
		m.Input.Reset()
		m.Notice = ""
		return m, nil

	case key.Matches(msg, m.Keys.Speak):
		return m.listen()

	case key.Matches(msg, m.Keys.Settings):
		m.ShowSettings = true
		m.MenuCursor = 0
		m.Notice = ""
		return m, nil

	case key.Matches(msg, m.Keys.History):
		m.ShowHistory = !m.ShowHistory
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	m.controller.SetInput(m.Input.Value())
	return m, cmd
}

// submit starts a correction. The button is disabled while one is in flight.
func (m AppModel) submit() (tea.Model, tea.Cmd) {
	if m.controller.Snapshot().Loading {
		return m, nil
	}

	text := m.Input.Value()
	m.controller.SetInput(text)

	sub, ok := m.controller.Begin(text)
	if !ok {
		return m, nil
	}
	m.Notice = ""

	ctx, controller := m.ctx, m.controller
	return m, tea.Batch(
		m.Spinner.Tick,
		func() tea.Msg {
			return correctionDoneMsg{state: controller.Complete(ctx, sub)}
		},
	)
}

// listen runs one speech recognition
func (m AppModel) listen() (tea.Model, tea.Cmd) {
	if m.Listening {
		return m, nil
	}
	if _, ok := m.recognizer.(speech.Unavailable); ok {
		return m, nil
	}
	m.Listening = true
	m.Notice = ""

	ctx, recognizer := m.ctx, m.recognizer
	locale := m.settings.CurrentLanguage().Locale
	return m, tea.Batch(
		m.Spinner.Tick,
		func() tea.Msg {
			var transcript string
			err := speech.Listen(ctx, recognizer, locale, func(t string) {
				transcript = t
			})
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			return speechResultMsg{transcript: transcript, err: err}
		},
	)
}

func (m AppModel) applyReload(msg configReloadMsg) AppModel {
	if msg.err != nil {
		m.Notice = "Config reload failed: " + msg.err.Error()
		return m
	}
	if msg.settings == nil {
		return m
	}

	m.settings = msg.settings
	m.ShowHistory = msg.settings.UI.ShowHistory
	m.controller.SetHistorySize(msg.settings.UI.HistorySize)
	m.Notice = "Settings reloaded"
	return m
}

// Settings returns the settings the editor is using
func (m AppModel) Settings() config.Settings {
	return *m.settings
}

// Run starts the editor and blocks until the user quits.
// In-flight requests are canceled when it returns.
func Run(opts Options) error {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	opts.Context = ctx

	p := tea.NewProgram(NewAppModel(opts), tea.WithAltScreen(), tea.WithContext(ctx))

	if opts.ConfigPath != "" {
		go func() {
			err := config.Watch(ctx, opts.ConfigPath, func(s *config.Settings, err error) {
				p.Send(configReloadMsg{settings: s, err: err})
			})
			if err != nil {
				logging.Warn("Config hot reload disabled", zap.Error(err))
			}
		}()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && parent.Err() != nil {
		return nil
	}
	return err
}
