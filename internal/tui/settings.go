package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/correctme/correctme/internal/config"
	"github.com/correctme/correctme/internal/urls"
)

type menuItem int

const (
	menuLanguage menuItem = iota
	menuHistory
	menuIssue
	menuClose
	menuItemCount
)

func (m AppModel) menuLabel(item menuItem) string {
	switch item {
	case menuLanguage:
		return "Language: " + m.settings.CurrentLanguage().Name
	case menuHistory:
		if m.ShowHistory {
			return "Hide History"
		}
		return "Show History"
	case menuIssue:
		return "Raise an Issue"
	default:
		return "Close"
	}
}

func (m AppModel) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.MenuKeys.Close):
		m.ShowSettings = false
	case key.Matches(msg, m.MenuKeys.Up):
		m.MenuCursor = (m.MenuCursor + int(menuItemCount) - 1) % int(menuItemCount)
	case key.Matches(msg, m.MenuKeys.Down):
		m.MenuCursor = (m.MenuCursor + 1) % int(menuItemCount)
	case key.Matches(msg, m.MenuKeys.Select):
		return m.selectMenuItem(menuItem(m.MenuCursor))
	}
	return m, nil
}

func (m AppModel) selectMenuItem(item menuItem) (tea.Model, tea.Cmd) {
	switch item {
	case menuLanguage:
		next := nextLanguage(m.settings.Language)
		settings := *m.settings
		settings.Language = next.Code
		m.settings = &settings
		m.Notice = "Language set to " + next.Name
		return m, m.persist(func(s *config.Settings) error {
			s.Language = next.Code
			return nil
		})

	case menuHistory:
		m.ShowHistory = !m.ShowHistory
		show := m.ShowHistory
		settings := *m.settings
		settings.UI.ShowHistory = show
		m.settings = &settings
		return m, m.persist(func(s *config.Settings) error {
			s.UI.ShowHistory = show
			return nil
		})

	case menuIssue:
		m.Notice = "Report an issue: " + urls.IssueReport()
		return m, nil

	default:
		m.ShowSettings = false
		return m, nil
	}
}

// persist writes a settings change to the config file in the background
func (m AppModel) persist(fn func(*config.Settings) error) tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	path := m.configPath
	return func() tea.Msg {
		return settingsSavedMsg{err: config.Update(path, fn)}
	}
}

func nextLanguage(code string) config.Language {
	langs := config.Languages()
	for i, l := range langs {
		if l.Code == code {
			return langs[(i+1)%len(langs)]
		}
	}
	return langs[0]
}

func (m AppModel) settingsView() string {
	lines := []string{TitleStyle.Render("Settings"), ""}
	for i := menuItem(0); i < menuItemCount; i++ {
		lines = append(lines, renderMenuItem(m.menuLabel(i), int(i) == m.MenuCursor))
	}

	if menuItem(m.MenuCursor) == menuIssue {
		lines = append(lines, "",
			SubtitleStyle.Render("Opens your mail client with:"),
			LinkStyle.Render(urls.IssueReport()),
		)
	}

	return PanelStyle.Width(contentWidth(m.Width) - 2).Render(strings.Join(lines, "\n"))
}
