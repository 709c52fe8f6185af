package core

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/Rorical/gameconsole/internal/api"
	"github.com/Rorical/gameconsole/internal/console"
	"github.com/Rorical/gameconsole/internal/eventbus"
	"github.com/Rorical/gameconsole/internal/history"
	"github.com/Rorical/gameconsole/internal/stats"
)

const commandQueueSize = 16

// ServiceOptions wires a ConsoleService.
type ServiceOptions struct {
	History  *history.History
	Executor console.Executor
	// Embed is optional; without it the service ignores stats events.
	Embed       *stats.Embed
	Session     *api.Session
	ProfileName string
	ServerURL   string
}

// ConsoleService runs command execution and dashboard probes off the UI
// goroutine and talks to the UI only through the event bus.
type ConsoleService struct {
	console  *console.Console
	embed    *stats.Embed
	state    *ConsoleState
	eventBus *eventbus.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	queue    chan string
	wg       sync.WaitGroup

	pushMu        sync.Mutex
	lastSentCount int // Track how many messages we've sent to UI

	pendingConfirms map[string]chan bool // Track pending confirmations
	confirmMutex    sync.RWMutex         // Protect pendingConfirms map
}

func NewConsoleService(opts ServiceOptions, eb *eventbus.EventBus) *ConsoleService {
	ctx, cancel := context.WithCancel(context.Background())

	service := &ConsoleService{
		embed:           opts.Embed,
		state:           NewConsoleState(),
		eventBus:        eb,
		ctx:             ctx,
		cancel:          cancel,
		queue:           make(chan string, commandQueueSize),
		pendingConfirms: make(map[string]chan bool),
	}

	// The service is both the confirmation provider and the output sink.
	service.console = console.New(opts.History, opts.Executor, service, service)

	service.addWelcomeMessages(opts)

	return service
}

// Start runs the core logic in goroutines
func (cs *ConsoleService) Start() {
	// Send initial state to UI immediately
	cs.pushStateToUI()

	cs.wg.Add(2)
	go cs.eventLoop()
	go cs.commandWorker()

	if cs.embed != nil {
		_, attempt := cs.embed.State()
		cs.probeStats(attempt)
	}
}

// Stop cancels pending confirmations and requests and waits for the
// workers to exit.
func (cs *ConsoleService) Stop() {
	cs.cancel()
	cs.wg.Wait()
}

func (cs *ConsoleService) Console() *console.Console {
	return cs.console
}

func (cs *ConsoleService) State() *ConsoleState {
	return cs.state
}

func (cs *ConsoleService) eventLoop() {
	defer cs.wg.Done()
	for {
		select {
		case <-cs.ctx.Done():
			return
		case event, ok := <-cs.eventBus.UIToCore():
			if !ok {
				return
			}
			cs.handleUIEvent(event)
		}
	}
}

func (cs *ConsoleService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.SubmitCommandEvent:
		cs.enqueue(e.Command)
	case eventbus.ConfirmationResponseEvent:
		cs.handleConfirmationResponse(e)
	case eventbus.StatsRetryEvent:
		if cs.embed != nil {
			cs.probeStats(cs.embed.Retry())
		}
	}
}

func (cs *ConsoleService) enqueue(command string) {
	select {
	case cs.queue <- command:
	default:
		cs.Notify(console.Notification{Level: console.LevelError, Text: "Too many pending commands"})
	}
}

// commandWorker executes submitted commands one at a time, in order.
func (cs *ConsoleService) commandWorker() {
	defer cs.wg.Done()
	for {
		select {
		case <-cs.ctx.Done():
			return
		case command := <-cs.queue:
			cs.processCommand(command)
		}
	}
}

func (cs *ConsoleService) processCommand(command string) {
	cs.state.StartProcessing()
	cs.pushStateToUI()

	outcome := cs.console.Execute(cs.ctx, command)
	log.Printf("command %q: %s", command, outcome)

	if outcome == console.TransportError {
		cs.state.FinishProcessingWithError(fmt.Errorf("request for %q failed", command))
	} else {
		cs.state.FinishProcessing()
	}
	cs.pushStateToUI()
}

func (cs *ConsoleService) probeStats(attempt int) {
	cs.sendStatsStatus(attempt)

	cs.wg.Add(1)
	go func() {
		defer cs.wg.Done()
		cs.embed.Probe(cs.ctx, attempt)
		cs.sendStatsStatus(attempt)
	}()
}

func (cs *ConsoleService) sendStatsStatus(attempt int) {
	state, current := cs.embed.State()
	if current != attempt {
		return
	}
	if err := cs.eventBus.SendToUI(eventbus.StatsStatusEvent{
		State:   state,
		Attempt: attempt,
		Err:     cs.embed.Err(),
	}); err != nil {
		log.Printf("Error sending stats status to UI: %v", err)
	}
}

// Notify implements console.Sink.
func (cs *ConsoleService) Notify(n console.Notification) {
	cs.state.SetNotification(n)
	cs.pushStateToUI()
}

// Log implements console.Sink.
func (cs *ConsoleService) Log(entry console.LogEntry) {
	cs.state.AddLogEntry(entry)
	cs.pushStateToUI()
}

func (cs *ConsoleService) pushStateToUI() {
	cs.pushMu.Lock()
	defer cs.pushMu.Unlock()

	// Only send new messages to reduce resource usage
	newMessages := cs.state.MessagesSince(cs.lastSentCount)
	cs.lastSentCount += len(newMessages)

	if err := cs.eventBus.SendToUI(eventbus.StateUpdateEvent{
		Messages:     newMessages,
		Notification: cs.state.TakeNotification(),
		IsProcessing: cs.state.IsProcessing(),
		Error:        cs.state.GetLastError(),
	}); err != nil {
		log.Printf("Error sending state to UI: %v", err)
	}
}

func (cs *ConsoleService) addWelcomeMessages(opts ServiceOptions) {
	cs.state.AddProgramMessage("-- GAME SERVER CONSOLE --")
	cs.state.AddProgramMessage(fmt.Sprintf("Profile: %s (%s)", opts.ProfileName, opts.ServerURL))
	if opts.Session != nil {
		cs.state.AddProgramMessage(fmt.Sprintf("Logged in as %s [%s]", opts.Session.Username, opts.Session.Role))
	}
	cs.state.AddProgramMessage("Enter: run  Up/Down: history  Tab: complete  F2: dashboard  Ctrl+R: reload dashboard  Ctrl+L: links  Ctrl+C: exit")
	cs.state.AddProgramMessage("")
}

// Confirm implements console.Confirmer: it sends a confirmation request to
// the UI and waits for the answer.
func (cs *ConsoleService) Confirm(ctx context.Context, prompt string) bool {
	id := uuid.NewString()

	responseChan := make(chan bool, 1)

	cs.confirmMutex.Lock()
	cs.pendingConfirms[id] = responseChan
	cs.confirmMutex.Unlock()

	defer func() {
		cs.confirmMutex.Lock()
		delete(cs.pendingConfirms, id)
		cs.confirmMutex.Unlock()
	}()

	if err := cs.eventBus.SendToUI(eventbus.ConfirmationRequestEvent{ID: id, Prompt: prompt}); err != nil {
		log.Printf("Error sending confirmation request: %v", err)
		return false
	}

	select {
	case approved := <-responseChan:
		return approved
	case <-ctx.Done():
		return false
	}
}

// handleConfirmationResponse handles confirmation responses from the UI
func (cs *ConsoleService) handleConfirmationResponse(response eventbus.ConfirmationResponseEvent) {
	cs.confirmMutex.RLock()
	responseChan, exists := cs.pendingConfirms[response.ID]
	cs.confirmMutex.RUnlock()

	if exists {
		select {
		case responseChan <- response.Approved:
		default:
			// Already answered
		}
	}
}
