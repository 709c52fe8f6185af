package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/gameconsole/internal/dispatcher"
	"github.com/Rorical/gameconsole/internal/models"
	"github.com/Rorical/gameconsole/internal/update"
	"github.com/Rorical/gameconsole/ui/components"
)

type AppModel struct {
	appModel   models.AppModel
	dispatcher *dispatcher.EventDispatcher
	deps       update.Deps
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		textinput.Blink,
		m.dispatcher.ListenForUIEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent, m.deps)
		return m, tea.Batch(cmd, m.dispatcher.ListenForUIEvents())
	}

	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, m.deps)
	return m, cmd
}

func (m *AppModel) View() string {
	am := &m.appModel
	width := am.Width
	if width <= 0 {
		width = 80
	}

	if am.StatsFullscreen {
		return components.RenderStatsPanel(m.deps.Embed.URL(), am.StatsStatus, am.StatsButton, width, am.Height)
	}

	header := components.RenderStatsBar(m.deps.Embed.URL(), am.StatsStatus, am.StatsButton, width)
	input := components.RenderInput(am.Input.View(), width)
	var below string
	if am.PendingConfirmation != nil {
		below = components.RenderConfirmation(am.PendingConfirmation.Prompt, width)
	} else if am.LinkPickerOpen {
		below = components.RenderLinks(m.deps.Links, am.LinkIndex, width)
	} else {
		below = components.RenderSuggestions(am.Suggestions, am.Input.Value(), width)
	}
	below = strings.TrimSuffix(below, "\n")
	status := components.RenderStatus(components.StatusInfo{
		Status:       am.Status,
		Loading:      am.Loading,
		LoadingDots:  am.LoadingDots,
		Notification: am.Notification,
		Username:     am.Username,
		Role:         am.Role,
	}, width)

	// Messages get whatever height the fixed parts leave.
	fixed := lipgloss.Height(header) + lipgloss.Height(input) + lipgloss.Height(status)
	if below != "" {
		fixed += lipgloss.Height(below)
	}
	maxLines := 0
	if am.Height > 0 {
		maxLines = max(1, am.Height-fixed)
	}

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(components.RenderMessages(am.Messages, maxLines))
	b.WriteString(input)
	b.WriteString("\n")
	if below != "" {
		b.WriteString(below)
		b.WriteString("\n")
	}
	b.WriteString(status)

	return b.String()
}
