package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/gameconsole/internal/eventbus"
	"github.com/Rorical/gameconsole/internal/history"
	"github.com/Rorical/gameconsole/internal/models"
	"github.com/Rorical/gameconsole/internal/stats"
)

// Deps are the collaborators the update handlers act on.
type Deps struct {
	EventBus      *eventbus.EventBus
	History       *history.History
	Embed         *stats.Embed
	OpenDashboard func() error
	// Links are the declared link names, opened by name through OpenLink.
	Links               []string
	OpenLink            func(name string) (string, error)
	NotificationTimeout time.Duration
}

func HandleUpdateWithEventBus(appModel *models.AppModel, msg tea.Msg, deps Deps) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return HandleKeyMsgWithEventBus(appModel, msg, deps)
	case tea.WindowSizeMsg:
		HandleWindowSizeMsg(appModel, msg)
		return nil
	case TickMsg:
		return HandleTickMsg(appModel)
	case CoreEventMsg:
		return HandleCoreEvent(appModel, msg, deps)
	case ClearNotificationMsg:
		HandleClearNotification(appModel, msg)
		return nil
	}

	// Cursor blink and other input internals
	var cmd tea.Cmd
	appModel.Input, cmd = appModel.Input.Update(msg)
	return cmd
}
