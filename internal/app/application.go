package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/gameconsole/internal/api"
	"github.com/Rorical/gameconsole/internal/config"
	"github.com/Rorical/gameconsole/internal/core"
	"github.com/Rorical/gameconsole/internal/dispatcher"
	"github.com/Rorical/gameconsole/internal/eventbus"
	"github.com/Rorical/gameconsole/internal/history"
	"github.com/Rorical/gameconsole/internal/models"
	"github.com/Rorical/gameconsole/internal/nav"
	"github.com/Rorical/gameconsole/internal/stats"
	"github.com/Rorical/gameconsole/internal/storage"
	"github.com/Rorical/gameconsole/internal/update"
)

// Application manages the complete application lifecycle
type Application struct {
	config      *config.Config
	profile     config.Profile
	client      *api.Client
	history     *history.History
	storeCloser io.Closer
	navigator   *nav.Navigator
	embed       *stats.Embed
	eventBus    *eventbus.EventBus
	dispatcher  *dispatcher.EventDispatcher
	service     *core.ConsoleService
	logFile     *os.File
}

func NewApplication(cfg *config.Config) (*Application, error) {
	if !cfg.IsValid() {
		return nil, fmt.Errorf("profile '%s' has no valid server_url", cfg.ActiveProfile)
	}
	profile := cfg.Current()

	client, err := NewClient(profile)
	if err != nil {
		return nil, err
	}

	h, closer, err := OpenHistory(cfg)
	if err != nil {
		return nil, err
	}

	return &Application{
		config:      cfg,
		profile:     profile,
		client:      client,
		history:     h,
		storeCloser: closer,
		navigator:   NewNavigator(profile, client),
		embed:       stats.New(profile.DashboardURL, nil),
		eventBus:    eventbus.NewEventBus(),
	}, nil
}

// NewClient returns an API client for profile, seeded with its stored
// session cookie.
func NewClient(profile config.Profile) (*api.Client, error) {
	var opts []api.Option
	if profile.RequestTimeout > 0 {
		opts = append(opts, api.WithTimeout(profile.RequestTimeout))
	}
	client, err := api.NewClient(profile.ServerURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	client.SetSessionCookie(profile.CookieName, profile.SessionCookie)
	return client, nil
}

// OpenHistory opens the active profile's store and loads the command history
// from it. The closer releases the store.
func OpenHistory(cfg *config.Config) (*history.History, io.Closer, error) {
	store, closer, err := storage.Open(storage.Kind(cfg.Current().HistoryStore), cfg.DataDir())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history store: %w", err)
	}
	h := history.New(store)
	h.Load()
	return h, closer, nil
}

// NewNavigator returns a navigator over the profile's declared links.
func NewNavigator(profile config.Profile, client *api.Client) *nav.Navigator {
	return nav.New(profile.Links, client, nil)
}

// Start checks the session, then runs the TUI until the user quits. An
// unauthenticated session opens the login page and returns an error
// wrapping api.ErrNotAuthenticated.
func (app *Application) Start(ctx context.Context) error {
	session, err := app.client.RequireSession(ctx, app.navigator.OpenURL)
	if err != nil {
		return err
	}
	app.client.FetchCSRFToken(ctx)

	// Log lines would corrupt the screen while the TUI runs.
	logFile, err := tea.LogToFile(filepath.Join(app.config.DataDir(), "debug.log"), "gameconsole")
	if err != nil {
		log.Printf("Failed to open debug log: %v", err)
	} else {
		app.logFile = logFile
	}

	app.dispatcher = dispatcher.NewEventDispatcher(app.eventBus)
	app.service = core.NewConsoleService(core.ServiceOptions{
		History:     app.history,
		Executor:    app.client,
		Embed:       app.embed,
		Session:     session,
		ProfileName: app.config.ActiveProfile,
		ServerURL:   app.profile.ServerURL,
	}, app.eventBus)
	app.service.Start()

	model := &AppModel{
		appModel:   createInitialAppModel(session, app.embed),
		dispatcher: app.dispatcher,
		deps: update.Deps{
			EventBus:            app.eventBus,
			History:             app.history,
			Embed:               app.embed,
			OpenDashboard:       app.openDashboard,
			Links:               app.navigator.Names(),
			OpenLink:            app.navigator.Open,
			NotificationTimeout: app.config.GetNotificationTimeout(),
		},
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (app *Application) Stop() {
	if app.service != nil {
		app.service.Stop()
	}
	if app.dispatcher != nil {
		app.dispatcher.Stop()
	}
	app.eventBus.Close()
	if err := app.storeCloser.Close(); err != nil {
		log.Printf("Failed to close history store: %v", err)
	}
	if app.logFile != nil {
		log.SetOutput(os.Stderr)
		app.logFile.Close()
	}
}

func (app *Application) openDashboard() error {
	return app.navigator.OpenURL(app.embed.URL())
}

func createInitialAppModel(session *api.Session, embed *stats.Embed) models.AppModel {
	// No initial messages in UI - they come from core as single source of truth
	m := models.AppModel{
		Messages:    make([]models.Message, 0),
		Input:       models.NewInput(),
		Status:      "Ready",
		StatsStatus: embed.StatusText(),
		StatsButton: embed.ButtonLabel(),
	}
	if session != nil {
		m.Username = session.Username
		m.Role = session.Role
	}
	return m
}
