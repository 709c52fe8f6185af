package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/gameconsole/internal/console"
)

func InputStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(max(10, width-4))
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func ProgramStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("141")).
		Bold(true).
		Padding(0, 2)
}

func TimestampStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
}

func CommandStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true)
}

func ResponseStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1).
		MarginLeft(2)
}

func SuggestionStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		PaddingLeft(2)
}

func ActiveSuggestionStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		PaddingLeft(2)
}

func ConfirmStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color("214")).
		Padding(0, 1).
		Width(max(10, width-4))
}

// NotificationStyle colours a notification by level.
func NotificationStyle(level console.Level) lipgloss.Style {
	color := lipgloss.Color("39")
	switch level {
	case console.LevelSuccess:
		color = lipgloss.Color("42")
	case console.LevelError:
		color = lipgloss.Color("196")
	}
	return lipgloss.NewStyle().
		Foreground(color).
		Bold(true)
}

func StatsBarStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Background(lipgloss.Color("236")).
		Padding(0, 1).
		Width(width)
}

func StatsPanelStyle(width, height int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(max(10, width-2)).
		Height(max(3, height-2))
}

// StatsStateStyle colours the dashboard status text.
func StatsStateStyle(status string) lipgloss.Style {
	color := lipgloss.Color("214")
	switch status {
	case "Connected":
		color = lipgloss.Color("42")
	case "Connection failed":
		color = lipgloss.Color("196")
	}
	return lipgloss.NewStyle().Foreground(color)
}
