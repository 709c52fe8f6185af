package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/gameconsole/internal/commands"
	"github.com/Rorical/gameconsole/internal/eventbus"
	"github.com/Rorical/gameconsole/internal/history"
	"github.com/Rorical/gameconsole/internal/models"
)

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, deps Deps) tea.Cmd {
	key := keyMsg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}

	// A pending question captures the keyboard until answered.
	if appModel.PendingConfirmation != nil {
		switch key {
		case "y", "Y", "enter":
			answerConfirmation(appModel, true, deps.EventBus)
		case "n", "N", "esc":
			answerConfirmation(appModel, false, deps.EventBus)
		}
		return nil
	}

	if appModel.LinkPickerOpen {
		handleLinkPicker(appModel, key, deps)
		return nil
	}

	switch key {
	case "f2":
		if deps.Embed != nil {
			deps.Embed.ToggleFullscreen()
			syncFullscreen(appModel, deps)
		}
		return nil
	case "esc":
		if deps.Embed != nil && deps.Embed.ExitFullscreen() {
			syncFullscreen(appModel, deps)
		}
		return nil
	case "ctrl+r":
		if err := deps.EventBus.SendToCore(eventbus.StatsRetryEvent{}); err != nil {
			appModel.Status = "Error reloading dashboard: " + err.Error()
		}
		return nil
	case "ctrl+l":
		if len(deps.Links) == 0 {
			appModel.Status = "No links declared in this profile"
			return nil
		}
		appModel.LinkPickerOpen = true
		appModel.LinkIndex = 0
		return nil
	case "ctrl+o":
		if deps.OpenDashboard != nil {
			if err := deps.OpenDashboard(); err != nil {
				appModel.Status = "Error opening dashboard: " + err.Error()
			}
		}
		return nil
	}

	// The console keys are inactive while the dashboard fills the screen.
	if appModel.StatsFullscreen {
		return nil
	}

	switch key {
	case "enter":
		value := appModel.Input.Value()
		if strings.TrimSpace(value) == "" {
			return nil
		}
		if err := deps.EventBus.SendToCore(eventbus.SubmitCommandEvent{Command: value}); err != nil {
			appModel.Status = "Error sending command: " + err.Error()
			return nil
		}
		appModel.Input.Reset()
		resetCompletion(appModel)
		appModel.Suggestions = nil
		return nil
	case "up", "down":
		dir := history.Up
		if key == "down" {
			dir = history.Down
		}
		if entry, ok := deps.History.Navigate(dir); ok {
			appModel.Input.SetValue(entry)
			appModel.Input.CursorEnd()
			resetCompletion(appModel)
			appModel.Suggestions = commands.Suggestions(entry)
		}
		return nil
	case "tab":
		complete(appModel)
		return nil
	}

	var cmd tea.Cmd
	appModel.Input, cmd = appModel.Input.Update(keyMsg)
	resetCompletion(appModel)
	appModel.Suggestions = commands.Suggestions(appModel.Input.Value())
	return cmd
}

func handleLinkPicker(appModel *models.AppModel, key string, deps Deps) {
	switch key {
	case "up":
		appModel.LinkIndex = max(0, appModel.LinkIndex-1)
	case "down":
		appModel.LinkIndex = min(len(deps.Links)-1, appModel.LinkIndex+1)
	case "esc", "ctrl+l":
		appModel.LinkPickerOpen = false
	case "enter":
		appModel.LinkPickerOpen = false
		if deps.OpenLink == nil || appModel.LinkIndex >= len(deps.Links) {
			return
		}
		u, err := deps.OpenLink(deps.Links[appModel.LinkIndex])
		if err != nil {
			appModel.Status = "Error opening link: " + err.Error()
			return
		}
		appModel.Status = "Opened " + u
	}
}

func answerConfirmation(appModel *models.AppModel, approved bool, eb *eventbus.EventBus) {
	req := appModel.PendingConfirmation
	appModel.PendingConfirmation = nil
	if err := eb.SendToCore(eventbus.ConfirmationResponseEvent{ID: req.ID, Approved: approved}); err != nil {
		appModel.Status = "Error sending confirmation: " + err.Error()
	}
}

// complete replaces the input with the next suggestion for the text typed
// before the first Tab, cycling on repeated presses.
func complete(appModel *models.AppModel) {
	if appModel.CompletionPrefix == "" {
		appModel.CompletionPrefix = appModel.Input.Value()
		appModel.CompletionIndex = 0
	}
	suggestions := commands.Suggestions(appModel.CompletionPrefix)
	if len(suggestions) == 0 {
		appModel.CompletionPrefix = ""
		return
	}

	choice := suggestions[appModel.CompletionIndex%len(suggestions)]
	appModel.CompletionIndex++
	appModel.Input.SetValue(choice)
	appModel.Input.CursorEnd()
	appModel.Suggestions = suggestions
}

func resetCompletion(appModel *models.AppModel) {
	appModel.CompletionPrefix = ""
	appModel.CompletionIndex = 0
}

func syncFullscreen(appModel *models.AppModel, deps Deps) {
	appModel.StatsFullscreen = deps.Embed.Fullscreen()
	appModel.StatsButton = deps.Embed.ButtonLabel()
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// ClearNotificationMsg expires notification Seq.
type ClearNotificationMsg struct {
	Seq int
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg, deps Deps) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		appModel.Messages = append(appModel.Messages, event.Messages...)
		appModel.Loading = event.IsProcessing

		if event.Error != nil {
			appModel.Status = "Error: " + event.Error.Error()
		} else if event.IsProcessing {
			appModel.Status = "Processing"
		} else {
			appModel.Status = "Ready"
		}

		if event.Notification != nil {
			appModel.Notification = event.Notification
			appModel.NotificationSeq++
			seq := appModel.NotificationSeq
			return tea.Tick(deps.NotificationTimeout, func(time.Time) tea.Msg {
				return ClearNotificationMsg{Seq: seq}
			})
		}
	case eventbus.ConfirmationRequestEvent:
		// The question must be visible, so it leaves fullscreen and closes
		// the link list.
		if deps.Embed != nil && deps.Embed.ExitFullscreen() {
			syncFullscreen(appModel, deps)
		}
		appModel.LinkPickerOpen = false
		appModel.PendingConfirmation = &models.ConfirmationRequest{
			ID:     event.ID,
			Prompt: event.Prompt,
		}
	case eventbus.StatsStatusEvent:
		// A slow report from an attempt a retry replaced is stale.
		if event.Attempt < appModel.StatsAttempt {
			return nil
		}
		appModel.StatsAttempt = event.Attempt
		appModel.StatsStatus = event.State.String()
	}

	return nil
}

// HandleClearNotification drops the notification unless a newer one
// replaced it.
func HandleClearNotification(appModel *models.AppModel, msg ClearNotificationMsg) {
	if msg.Seq == appModel.NotificationSeq {
		appModel.Notification = nil
	}
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
	appModel.Input.Width = max(10, sizeMsg.Width-8)
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Loading {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}
