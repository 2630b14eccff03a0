package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/correctme/correctme/internal/config"
	"github.com/correctme/correctme/internal/submission"
	"github.com/correctme/correctme/internal/urls"
)

type fakeRecognizer struct {
	transcript string
	err        error
}

func (f fakeRecognizer) Recognize(context.Context, string) (string, error) {
	return f.transcript, f.err
}

func newTestModel(t *testing.T, corr submission.Corrector, opts Options) AppModel {
	t.Helper()
	opts.Controller = submission.NewController(corr)
	m := NewAppModel(opts)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(AppModel)
}

func echoCorrector(suffix string) submission.CorrectorFunc {
	return func(_ context.Context, text string) (string, error) {
		return strings.TrimSpace(text) + suffix, nil
	}
}

func keyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func typeText(m AppModel, text string) AppModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(AppModel)
}

func press(m AppModel, msg tea.KeyMsg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

// runCmd executes cmd and any batched commands, returning their messages
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, runCmd(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// deliver runs cmd and feeds every resulting message except spinner ticks back into m
func deliver(m AppModel, cmd tea.Cmd) AppModel {
	for _, msg := range runCmd(cmd) {
		switch msg.(type) {
		case correctionDoneMsg, speechResultMsg, settingsSavedMsg:
			next, _ := m.Update(msg)
			m = next.(AppModel)
		}
	}
	return m
}

func TestSubmit_ShowsProcessingThenResult(t *testing.T) {
	m := newTestModel(t, echoCorrector(" [corrected]"), Options{})
	m = typeText(m, "hello")

	m, cmd := press(m, keyMsg(tea.KeyCtrlS))
	if cmd == nil {
		t.Fatal("expected a command after submit")
	}

	view := m.View()
	if !strings.Contains(view, ProcessingLabel) {
		t.Errorf("view should show %q while in flight", ProcessingLabel)
	}
	if strings.Contains(view, OutputLabel) {
		t.Error("output box should be hidden while in flight")
	}
	if got := m.controller.State(); got != submission.InFlight {
		t.Errorf("state = %v, want in_flight", got)
	}

	m = deliver(m, cmd)

	view = m.View()
	if !strings.Contains(view, OutputLabel) {
		t.Errorf("view should show %q after completion", OutputLabel)
	}
	if !strings.Contains(view, "hello [corrected]") {
		t.Errorf("view should contain the corrected text, got:\n%s", view)
	}
	if !strings.Contains(view, SubmitLabel) {
		t.Errorf("submit button should be enabled again")
	}
}

func TestSubmit_AltEnter(t *testing.T) {
	m := newTestModel(t, echoCorrector("!"), Options{})
	m = typeText(m, "hi")

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	if cmd == nil {
		t.Fatal("alt+enter should submit")
	}
	m = deliver(m, cmd)

	if got := m.controller.Snapshot().Corrected; got != "hi!" {
		t.Errorf("corrected = %q, want %q", got, "hi!")
	}
}

func TestSubmit_WhitespaceIsNoOp(t *testing.T) {
	var calls atomic.Int32
	corr := submission.CorrectorFunc(func(context.Context, string) (string, error) {
		calls.Add(1)
		return "x", nil
	})
	m := newTestModel(t, corr, Options{})
	m = typeText(m, "   ")

	m, cmd := press(m, keyMsg(tea.KeyCtrlS))
	if cmd != nil {
		t.Error("blank submit should not start a request")
	}
	if got := m.controller.State(); got != submission.Idle {
		t.Errorf("state = %v, want idle", got)
	}
	if calls.Load() != 0 {
		t.Errorf("corrector called %d times", calls.Load())
	}
}

func TestSubmit_IgnoredWhileInFlight(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{})
	m = typeText(m, "text")

	m, first := press(m, keyMsg(tea.KeyCtrlS))
	if first == nil {
		t.Fatal("first submit should start a request")
	}

	m, second := press(m, keyMsg(tea.KeyCtrlS))
	if second != nil {
		t.Error("second submit should be ignored while in flight")
	}

	m = deliver(m, first)
	if got := m.controller.State(); got != submission.Succeeded {
		t.Errorf("state = %v, want succeeded", got)
	}
}

func TestSubmit_FailureShowsMarker(t *testing.T) {
	corr := submission.CorrectorFunc(func(context.Context, string) (string, error) {
		return "", errors.New("connection refused")
	})
	m := newTestModel(t, corr, Options{})
	m = typeText(m, "text")

	m, cmd := press(m, keyMsg(tea.KeyCtrlS))
	m = deliver(m, cmd)

	if got := m.controller.State(); got != submission.Failed {
		t.Errorf("state = %v, want failed", got)
	}
	if !strings.Contains(m.View(), submission.ErrorMarker) {
		t.Error("view should show the error marker")
	}
}

func TestClear(t *testing.T) {
	m := newTestModel(t, echoCorrector("."), Options{})
	m = typeText(m, "text")
	m, cmd := press(m, keyMsg(tea.KeyCtrlS))
	m = deliver(m, cmd)

	m, _ = press(m, keyMsg(tea.KeyCtrlL))

	if got := m.Input.Value(); got != "" {
		t.Errorf("input = %q, want empty", got)
	}
	if got := m.controller.State(); got != submission.Idle {
		t.Errorf("state = %v, want idle", got)
	}
	if strings.Contains(m.View(), OutputLabel) {
		t.Error("output box should be hidden after clear")
	}
}

func TestTyping_UpdatesControllerInput(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{})
	m = typeText(m, "abc")

	if got := m.controller.Input(); got != "abc" {
		t.Errorf("controller input = %q, want %q", got, "abc")
	}
}

func TestSpeech_AppendsTranscript(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{
		Recognizer: fakeRecognizer{transcript: "world"},
	})
	m = typeText(m, "hello")

	m, cmd := press(m, keyMsg(tea.KeyCtrlR))
	if cmd == nil {
		t.Fatal("expected a listen command")
	}
	if !m.Listening {
		t.Error("model should be listening")
	}

	m = deliver(m, cmd)

	if m.Listening {
		t.Error("listening should end after the result")
	}
	if got := m.Input.Value(); got != "hello world" {
		t.Errorf("input = %q, want %q", got, "hello world")
	}
	if got := m.controller.Input(); got != "hello world" {
		t.Errorf("controller input = %q, want %q", got, "hello world")
	}
}

func TestSpeech_UnavailableIsNoOp(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{})

	m, cmd := press(m, keyMsg(tea.KeyCtrlR))
	if cmd != nil {
		t.Error("speech without a recognizer should do nothing")
	}
	if m.Listening {
		t.Error("model should not be listening")
	}
}

func TestSpeech_EmptyTranscriptLeavesInput(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{
		Recognizer: fakeRecognizer{transcript: "  "},
	})
	m = typeText(m, "keep")

	m, cmd := press(m, keyMsg(tea.KeyCtrlR))
	m = deliver(m, cmd)

	if got := m.Input.Value(); got != "keep" {
		t.Errorf("input = %q, want %q", got, "keep")
	}
}

func TestSpeech_ErrorShowsNotice(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{
		Recognizer: fakeRecognizer{err: errors.New("mic busy")},
	})

	m, cmd := press(m, keyMsg(tea.KeyCtrlR))
	m = deliver(m, cmd)

	if !strings.Contains(m.Notice, "mic busy") {
		t.Errorf("notice = %q, want it to mention the error", m.Notice)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{})

	_, cmd := press(m, keyMsg(tea.KeyEsc))
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("esc should return tea.Quit")
	}
}

func TestHistoryKeyToggles(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{})

	m, _ = press(m, keyMsg(tea.KeyCtrlY))
	if !m.ShowHistory {
		t.Fatal("ctrl+y should show history")
	}
	if !strings.Contains(m.View(), "No corrections yet") {
		t.Error("empty history panel should say so")
	}

	m = typeText(m, "first")
	m, cmd := press(m, keyMsg(tea.KeyCtrlS))
	m = deliver(m, cmd)
	if !strings.Contains(m.View(), "first") {
		t.Error("history panel should list the submission")
	}

	m, _ = press(m, keyMsg(tea.KeyCtrlY))
	if m.ShowHistory {
		t.Error("ctrl+y should hide history again")
	}
}

func TestSettings_OpenAndClose(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{})

	m, _ = press(m, keyMsg(tea.KeyCtrlO))
	if !m.ShowSettings {
		t.Fatal("ctrl+o should open settings")
	}
	if !strings.Contains(m.View(), "Language: English") {
		t.Error("settings should list the language entry")
	}

	m, cmd := press(m, keyMsg(tea.KeyEsc))
	if m.ShowSettings {
		t.Error("esc should close settings")
	}
	if cmd != nil {
		t.Error("closing settings should not quit")
	}
}

func TestSettings_LanguagePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := newTestModel(t, echoCorrector(""), Options{ConfigPath: path})

	m, _ = press(m, keyMsg(tea.KeyCtrlO))
	m, cmd := press(m, keyMsg(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("language change should persist")
	}

	if got := m.Settings().Language; got != "hi" {
		t.Errorf("language = %q, want hi", got)
	}
	m = deliver(m, cmd)
	if m.Notice != "Language set to हिंदी" {
		t.Errorf("notice = %q", m.Notice)
	}

	saved, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if saved.Language != "hi" {
		t.Errorf("saved language = %q, want hi", saved.Language)
	}

	// selecting again wraps back to English
	m, _ = press(m, keyMsg(tea.KeyEnter))
	if got := m.Settings().Language; got != "en" {
		t.Errorf("language = %q, want en", got)
	}
}

func TestSettings_LanguageWithoutConfigPath(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{})

	m, _ = press(m, keyMsg(tea.KeyCtrlO))
	m, cmd := press(m, keyMsg(tea.KeyEnter))
	if cmd != nil {
		t.Error("nothing should be written without a config path")
	}
	if got := m.Settings().Language; got != "hi" {
		t.Errorf("language = %q, want hi", got)
	}
}

func TestSettings_HistoryToggle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := newTestModel(t, echoCorrector(""), Options{ConfigPath: path})

	m, _ = press(m, keyMsg(tea.KeyCtrlO))
	m, _ = press(m, keyMsg(tea.KeyDown))
	if !strings.Contains(m.View(), "Show History") {
		t.Error("menu should offer Show History")
	}

	m, cmd := press(m, keyMsg(tea.KeyEnter))
	if !m.ShowHistory {
		t.Error("history should be shown")
	}
	m = deliver(m, cmd)

	saved, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !saved.UI.ShowHistory {
		t.Error("show_history should be saved")
	}
	if !strings.Contains(m.View(), "Hide History") {
		t.Error("menu should now offer Hide History")
	}
}

func TestSettings_RaiseIssue(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{})

	m, _ = press(m, keyMsg(tea.KeyCtrlO))
	m, _ = press(m, keyMsg(tea.KeyDown))
	m, _ = press(m, keyMsg(tea.KeyDown))
	m, _ = press(m, keyMsg(tea.KeyEnter))

	if !strings.Contains(m.Notice, urls.IssueReport()) {
		t.Errorf("notice = %q, want the issue link", m.Notice)
	}
	if !m.ShowSettings {
		t.Error("menu should stay open")
	}
}

func TestSettings_CursorWraps(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{})

	m, _ = press(m, keyMsg(tea.KeyCtrlO))
	m, _ = press(m, keyMsg(tea.KeyUp))
	if m.MenuCursor != int(menuClose) {
		t.Errorf("cursor = %d, want %d", m.MenuCursor, menuClose)
	}

	m, _ = press(m, keyMsg(tea.KeyEnter))
	if m.ShowSettings {
		t.Error("Close should close the menu")
	}
}

func TestSettings_CtrlCQuits(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{})
	m, _ = press(m, keyMsg(tea.KeyCtrlO))

	_, cmd := press(m, keyMsg(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c should quit from settings")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should return tea.Quit")
	}
}

func TestConfigReload(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{})

	reloaded := config.NewSettings()
	reloaded.Language = "hi"
	reloaded.UI.ShowHistory = true
	reloaded.UI.HistorySize = 1

	next, _ := m.Update(configReloadMsg{settings: reloaded})
	m = next.(AppModel)

	if !m.ShowHistory {
		t.Error("reload should apply show_history")
	}
	if !strings.Contains(m.View(), "हिंदी") {
		t.Error("header should show the reloaded language")
	}

	for _, text := range []string{"one", "two"} {
		m.Input.Reset()
		m = typeText(m, text)
		var cmd tea.Cmd
		m, cmd = press(m, keyMsg(tea.KeyCtrlS))
		m = deliver(m, cmd)
	}
	if got := len(m.controller.History()); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
}

func TestConfigReload_Error(t *testing.T) {
	m := newTestModel(t, echoCorrector(""), Options{})

	next, _ := m.Update(configReloadMsg{err: errors.New("bad yaml")})
	m = next.(AppModel)

	if !strings.Contains(m.Notice, "bad yaml") {
		t.Errorf("notice = %q", m.Notice)
	}
	if m.Settings().Language != config.DefaultLanguage {
		t.Error("settings should be unchanged")
	}
}

func TestNewAppModel_CopiesSettings(t *testing.T) {
	settings := config.NewSettings()
	m := newTestModel(t, echoCorrector(""), Options{Settings: settings})

	m, _ = press(m, keyMsg(tea.KeyCtrlO))
	m, _ = press(m, keyMsg(tea.KeyEnter))

	if settings.Language != config.DefaultLanguage {
		t.Error("caller's settings should not be modified")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "12345", 5, "12345"},
		{"cut", "1234567890", 5, "1234…"},
		{"tiny width", "abc", 1, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.width); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}
