package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/correctme/correctme/internal/urls"
	"github.com/correctme/correctme/internal/version"
)

const (
	AppName = "CorrectMe"

	MinTerminalWidth = 60
	MaxContentWidth  = 120
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red

	TextColor   = lipgloss.Color("#FFFFFF")
	SubtleColor = lipgloss.Color("#626262")
	BorderColor = lipgloss.Color("#7D56F4")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	SelectedMenuItemStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(SecondaryColor).
				Bold(true)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 3).
			Bold(true)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Background(lipgloss.Color("#333333")).
				Padding(0, 3)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	StatusStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	OutputLabelStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	OutputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor).
			Padding(0, 1)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	ErrorBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	LinkStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Underline(true)
)

// contentWidth returns the usable width inside the container
func contentWidth(terminalWidth int) int {
	w := terminalWidth
	if w < MinTerminalWidth {
		w = MinTerminalWidth
	}
	if w > MaxContentWidth {
		w = MaxContentWidth
	}
	return w - 4
}

func buildHeader(language string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " " + version.Version)

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render("Language: " + language)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// renderContainer wraps a screen with the header and a help footer
func renderContainer(content, footer, language string, terminalWidth int) string {
	width := contentWidth(terminalWidth)

	header := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(BorderColor).
		Width(width).
		Padding(0, 1).
		Render(buildHeader(language))

	foot := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(BorderColor).
		Width(width).
		Padding(0, 1).
		Foreground(SubtleColor).
		Render(footer + "  " + urls.ProjectURL)

	body := lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(content)

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body, foot))
}

// renderMenuItem renders a settings entry
func renderMenuItem(text string, selected bool) string {
	if selected {
		return SelectedMenuItemStyle.Render("▸ " + text)
	}
	return MenuItemStyle.Render(text)
}
