package update

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/gameconsole/internal/console"
	"github.com/Rorical/gameconsole/internal/eventbus"
	"github.com/Rorical/gameconsole/internal/history"
	"github.com/Rorical/gameconsole/internal/models"
	"github.com/Rorical/gameconsole/internal/stats"
)

func newTestModel(t *testing.T) (*models.AppModel, Deps) {
	t.Helper()
	eb := eventbus.NewEventBus()
	t.Cleanup(eb.Close)

	m := &models.AppModel{Input: models.NewInput(), Width: 80, Height: 24}
	deps := Deps{
		EventBus:            eb,
		History:             history.New(nil),
		Embed:               stats.New("http://localhost:3000", nil),
		NotificationTimeout: time.Second,
	}
	return m, deps
}

func typeText(m *models.AppModel, deps Deps, s string) {
	HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}, deps)
}

func press(m *models.AppModel, deps Deps, k tea.KeyType) tea.Cmd {
	return HandleKeyMsgWithEventBus(m, tea.KeyMsg{Type: k}, deps)
}

func nextUIEvent(t *testing.T, eb *eventbus.EventBus) eventbus.UIEvent {
	t.Helper()
	select {
	case ev := <-eb.UIToCore():
		return ev
	case <-time.After(time.Second):
		t.Fatal("no UI event sent")
		return nil
	}
}

func TestEnterSubmitsAndClears(t *testing.T) {
	m, deps := newTestModel(t)
	typeText(m, deps, "list")
	press(m, deps, tea.KeyEnter)

	ev, ok := nextUIEvent(t, deps.EventBus).(eventbus.SubmitCommandEvent)
	if !ok || ev.Command != "list" {
		t.Errorf("event = %#v", ev)
	}
	if m.Input.Value() != "" {
		t.Errorf("input = %q after submit", m.Input.Value())
	}
}

func TestEnterOnBlankInputSendsNothing(t *testing.T) {
	m, deps := newTestModel(t)
	typeText(m, deps, "   ")
	press(m, deps, tea.KeyEnter)

	select {
	case ev := <-deps.EventBus.UIToCore():
		t.Errorf("unexpected event %#v", ev)
	default:
	}
}

func TestTypingShowsSuggestions(t *testing.T) {
	m, deps := newTestModel(t)
	typeText(m, deps, "gam")
	if len(m.Suggestions) != 4 {
		t.Errorf("suggestions = %q", m.Suggestions)
	}

	press(m, deps, tea.KeyBackspace)
	press(m, deps, tea.KeyBackspace)
	press(m, deps, tea.KeyBackspace)
	if len(m.Suggestions) != 0 {
		t.Errorf("suggestions for empty input = %q", m.Suggestions)
	}
}

func TestTabCyclesSuggestions(t *testing.T) {
	m, deps := newTestModel(t)
	typeText(m, deps, "gam")

	want := []string{"gamemode survival ", "gamemode creative ", "gamemode adventure ", "gamemode spectator ", "gamemode survival "}
	for i, w := range want {
		press(m, deps, tea.KeyTab)
		if got := m.Input.Value(); got != w {
			t.Errorf("tab %d: input = %q, want %q", i, got, w)
		}
	}

	typeText(m, deps, "S")
	if m.CompletionPrefix != "" {
		t.Errorf("completion not reset after typing")
	}
}

func TestTabWithoutMatchesKeepsInput(t *testing.T) {
	m, deps := newTestModel(t)
	typeText(m, deps, "zzz")
	press(m, deps, tea.KeyTab)
	if m.Input.Value() != "zzz" {
		t.Errorf("input = %q", m.Input.Value())
	}
}

func TestHistoryNavigation(t *testing.T) {
	m, deps := newTestModel(t)

	// Empty history leaves the input alone.
	typeText(m, deps, "dra")
	press(m, deps, tea.KeyUp)
	if m.Input.Value() != "dra" {
		t.Errorf("input = %q", m.Input.Value())
	}
	m.Input.Reset()

	deps.History.Add("list")
	deps.History.Add("say hi")

	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyUp, "say hi"},
		{tea.KeyUp, "list"},
		{tea.KeyUp, "list"},
		{tea.KeyDown, "say hi"},
		{tea.KeyDown, ""},
		{tea.KeyDown, ""},
	}
	for i, s := range steps {
		press(m, deps, s.key)
		if got := m.Input.Value(); got != s.want {
			t.Errorf("step %d: input = %q, want %q", i, got, s.want)
		}
	}
}

func TestConfirmationCapturesKeys(t *testing.T) {
	m, deps := newTestModel(t)
	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.ConfirmationRequestEvent{ID: "c1", Prompt: "Sure?"}}, deps)
	if m.PendingConfirmation == nil {
		t.Fatal("no pending confirmation")
	}

	typeText(m, deps, "x")
	if m.Input.Value() != "" || m.PendingConfirmation == nil {
		t.Errorf("unrelated key leaked: input %q", m.Input.Value())
	}

	typeText(m, deps, "n")
	ev, ok := nextUIEvent(t, deps.EventBus).(eventbus.ConfirmationResponseEvent)
	if !ok || ev.ID != "c1" || ev.Approved {
		t.Errorf("event = %#v", ev)
	}
	if m.PendingConfirmation != nil {
		t.Error("confirmation still pending")
	}

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.ConfirmationRequestEvent{ID: "c2", Prompt: "Again?"}}, deps)
	press(m, deps, tea.KeyEnter)
	ev, _ = nextUIEvent(t, deps.EventBus).(eventbus.ConfirmationResponseEvent)
	if ev.ID != "c2" || !ev.Approved {
		t.Errorf("event = %#v", ev)
	}
}

func TestFullscreenToggleAndEscape(t *testing.T) {
	m, deps := newTestModel(t)

	press(m, deps, tea.KeyF2)
	if !m.StatsFullscreen || m.StatsButton != "Exit Fullscreen" {
		t.Errorf("after F2: fullscreen %v label %q", m.StatsFullscreen, m.StatsButton)
	}

	typeText(m, deps, "list")
	if m.Input.Value() != "" {
		t.Errorf("typing reached input in fullscreen: %q", m.Input.Value())
	}

	press(m, deps, tea.KeyEsc)
	if m.StatsFullscreen || m.StatsButton != "Fullscreen" {
		t.Errorf("after Esc: fullscreen %v label %q", m.StatsFullscreen, m.StatsButton)
	}

	press(m, deps, tea.KeyF2)
	press(m, deps, tea.KeyF2)
	if m.StatsFullscreen {
		t.Error("double F2 left fullscreen on")
	}
}

func TestRetryAndOpenDashboard(t *testing.T) {
	m, deps := newTestModel(t)

	press(m, deps, tea.KeyCtrlR)
	if _, ok := nextUIEvent(t, deps.EventBus).(eventbus.StatsRetryEvent); !ok {
		t.Error("ctrl+r did not request a retry")
	}

	deps.OpenDashboard = func() error { return errors.New("no browser") }
	press(m, deps, tea.KeyCtrlO)
	if m.Status != "Error opening dashboard: no browser" {
		t.Errorf("status = %q", m.Status)
	}
}

func TestStateUpdateAndNotificationExpiry(t *testing.T) {
	m, deps := newTestModel(t)

	n := &console.Notification{Level: console.LevelSuccess, Text: "Command executed successfully"}
	cmd := HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{
		Messages:     []models.Message{{Type: models.CommandLog, Command: "list", Content: "0 players"}},
		Notification: n,
	}}, deps)
	if cmd == nil {
		t.Fatal("no expiry scheduled")
	}
	if len(m.Messages) != 1 || m.Notification == nil || m.Status != "Ready" {
		t.Fatalf("model = %+v", m)
	}

	// A newer notification survives the older one's expiry.
	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{Notification: n}}, deps)
	HandleClearNotification(m, ClearNotificationMsg{Seq: 1})
	if m.Notification == nil {
		t.Error("stale expiry cleared newer notification")
	}
	HandleClearNotification(m, ClearNotificationMsg{Seq: 2})
	if m.Notification != nil {
		t.Error("notification not cleared")
	}

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StateUpdateEvent{IsProcessing: true}}, deps)
	if m.Status != "Processing" || !m.Loading {
		t.Errorf("status = %q loading = %v", m.Status, m.Loading)
	}

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StatsStatusEvent{State: stats.Connected}}, deps)
	if m.StatsStatus != "Connected" {
		t.Errorf("stats status = %q", m.StatsStatus)
	}
}

func TestCtrlCQuits(t *testing.T) {
	m, deps := newTestModel(t)
	cmd := press(m, deps, tea.KeyCtrlC)
	if cmd == nil {
		t.Fatal("no command returned")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c did not quit")
	}
}

func TestConfirmationRequestExitsFullscreen(t *testing.T) {
	m, deps := newTestModel(t)
	press(m, deps, tea.KeyF2)

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.ConfirmationRequestEvent{ID: "c1", Prompt: "Sure?"}}, deps)
	if m.StatsFullscreen || deps.Embed.Fullscreen() || m.StatsButton != "Fullscreen" {
		t.Errorf("fullscreen %v label %q", m.StatsFullscreen, m.StatsButton)
	}

	// Esc answers the visible question.
	press(m, deps, tea.KeyEsc)
	ev, _ := nextUIEvent(t, deps.EventBus).(eventbus.ConfirmationResponseEvent)
	if ev.ID != "c1" || ev.Approved {
		t.Errorf("event = %#v", ev)
	}
}

func TestStaleStatsStatusIgnored(t *testing.T) {
	m, deps := newTestModel(t)

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StatsStatusEvent{State: stats.Loading, Attempt: 1}}, deps)
	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StatsStatusEvent{State: stats.Error, Attempt: 0}}, deps)
	if m.StatsStatus != "Loading..." {
		t.Errorf("stale attempt applied: status %q", m.StatsStatus)
	}

	HandleCoreEvent(m, CoreEventMsg{Event: eventbus.StatsStatusEvent{State: stats.Connected, Attempt: 1}}, deps)
	if m.StatsStatus != "Connected" || m.StatsAttempt != 1 {
		t.Errorf("status %q attempt %d", m.StatsStatus, m.StatsAttempt)
	}
}

func TestLinkPicker(t *testing.T) {
	m, deps := newTestModel(t)

	press(m, deps, tea.KeyCtrlL)
	if m.LinkPickerOpen || m.Status != "No links declared in this profile" {
		t.Errorf("picker open %v status %q", m.LinkPickerOpen, m.Status)
	}

	var opened []string
	deps.Links = []string{"console", "stats"}
	deps.OpenLink = func(name string) (string, error) {
		opened = append(opened, name)
		return "http://localhost:8080/" + name, nil
	}

	press(m, deps, tea.KeyCtrlL)
	if !m.LinkPickerOpen {
		t.Fatal("picker not open")
	}
	press(m, deps, tea.KeyDown)
	press(m, deps, tea.KeyDown)
	typeText(m, deps, "x")
	if m.Input.Value() != "" {
		t.Errorf("typing reached input: %q", m.Input.Value())
	}
	press(m, deps, tea.KeyEnter)

	if m.LinkPickerOpen || len(opened) != 1 || opened[0] != "stats" {
		t.Errorf("open %v opened %v", m.LinkPickerOpen, opened)
	}
	if m.Status != "Opened http://localhost:8080/stats" {
		t.Errorf("status = %q", m.Status)
	}
	select {
	case ev := <-deps.EventBus.UIToCore():
		t.Errorf("enter in picker submitted %#v", ev)
	default:
	}

	press(m, deps, tea.KeyCtrlL)
	press(m, deps, tea.KeyEsc)
	if m.LinkPickerOpen || len(opened) != 1 {
		t.Error("esc did not close the picker")
	}
}
