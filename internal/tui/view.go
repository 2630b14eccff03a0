package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/correctme/correctme/internal/submission"
)

const (
	SubmitLabel     = "Submit"
	ProcessingLabel = "Processing..."
	OutputLabel     = "Corrected Text:"
	ListeningLabel  = "Listening..."

	maxHistoryRows = 10
)

var (
	historyOKStyle     = lipgloss.NewStyle().Foreground(TextColor)
	historyFailedStyle = lipgloss.NewStyle().Foreground(ErrorColor)
)

// View renders the current screen
func (m AppModel) View() string {
	language := m.settings.CurrentLanguage().Name

	if m.ShowSettings {
		return renderContainer(m.settingsView()+m.noticeView(), m.Help.View(m.MenuKeys), language, m.Width)
	}
	return renderContainer(m.editorView(), m.Help.View(m.Keys), language, m.Width)
}

func (m AppModel) editorView() string {
	snap := m.controller.Snapshot()
	width := contentWidth(m.Width) - 2

	parts := []string{m.Input.View(), ""}

	if snap.Loading {
		parts = append(parts, DisabledButtonStyle.Render(ProcessingLabel))
		parts = append(parts, m.Spinner.View()+" "+StatusStyle.Render(snap.Status))
	} else {
		parts = append(parts, ButtonStyle.Render(SubmitLabel))
	}

	if m.Listening {
		parts = append(parts, m.Spinner.View()+" "+StatusStyle.Render("🎤 "+ListeningLabel))
	}

	if snap.OutputVisible() {
		parts = append(parts, "", OutputLabelStyle.Render(OutputLabel))
		if snap.State == submission.Failed {
			parts = append(parts, ErrorBoxStyle.Width(width).Render(ErrorTextStyle.Render(snap.Corrected)))
		} else {
			parts = append(parts, OutputBoxStyle.Width(width).Render(snap.Corrected))
		}
	}

	if m.ShowHistory {
		parts = append(parts, "", m.historyView(width))
	}

	return strings.Join(parts, "\n") + m.noticeView()
}

func (m AppModel) noticeView() string {
	if m.Notice == "" {
		return ""
	}
	return "\n\n" + NoticeStyle.Render(m.Notice)
}

func (m AppModel) historyView(width int) string {
	entries := m.controller.History()
	lines := []string{TitleStyle.Render("History")}

	if len(entries) == 0 {
		lines = append(lines, SubtitleStyle.Render("No corrections yet"))
	}

	for i, e := range entries {
		if i == maxHistoryRows {
			lines = append(lines, SubtitleStyle.Render(fmt.Sprintf("… %d more", len(entries)-maxHistoryRows)))
			break
		}
		marker, style := "✓", historyOKStyle
		if e.State == submission.Failed {
			marker, style = "✗", historyFailedStyle
		}
		row := fmt.Sprintf("%s %s  %s → %s",
			e.StartedAt.Format("15:04:05"),
			marker,
			oneLine(e.Input),
			oneLine(e.Output),
		)
		lines = append(lines, style.Render(truncate(row, width-4)))
	}

	return PanelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// oneLine collapses whitespace so an entry fits on a single row
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens s to width display cells
func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
