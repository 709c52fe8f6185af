package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultServerURL    = "http://localhost:8080"
	defaultDashboardURL = "http://localhost:3000"
	defaultCookieName   = "connect.sid"
	defaultNotifyAfter  = 4 * time.Second
)

type Profile struct {
	ServerURL     string `yaml:"server_url"`
	DashboardURL  string `yaml:"dashboard_url,omitempty"`
	CookieName    string `yaml:"cookie_name,omitempty"`
	SessionCookie string `yaml:"session_cookie,omitempty"`
	// HistoryStore is one of file, sqlite or memory.
	HistoryStore   string            `yaml:"history_store,omitempty"`
	RequestTimeout time.Duration     `yaml:"request_timeout,omitempty"`
	Links          map[string]string `yaml:"links,omitempty"`
}

type Config struct {
	Profiles      map[string]Profile `yaml:"profiles"`
	ActiveProfile string             `yaml:"active_profile"`
	// NotificationTimeout is how long status notifications stay visible.
	NotificationTimeout time.Duration `yaml:"notification_timeout,omitempty"`

	path           string
	currentProfile *Profile
}

// DefaultProfile is written on first run.
func DefaultProfile() Profile {
	return Profile{
		ServerURL:    defaultServerURL,
		DashboardURL: defaultDashboardURL,
		CookieName:   defaultCookieName,
		HistoryStore: "file",
		Links: map[string]string{
			"console": "/console/",
			"stats":   "/console/stats.html",
		},
	}
}

// LoadConfig loads the config from the default location, creating it when
// missing.
func LoadConfig() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(filepath.Join(dir, "config.yaml"))
}

// LoadFrom loads the config at configPath, creating a default one when the
// file does not exist.
func LoadFrom(configPath string) (*Config, error) {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.path = configPath

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

// Dir is the directory holding the config, history and logs. It honours
// GAMECONSOLE_HOME.
func Dir() (string, error) {
	if home := os.Getenv("GAMECONSOLE_HOME"); home != "" {
		return filepath.Join(home, ".gameconsole"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".gameconsole"), nil
}

func (c *Config) Path() string {
	return c.path
}

// DataDir is the directory next to the config file, used for storage and
// logs.
func (c *Config) DataDir() string {
	return filepath.Dir(c.path)
}

func (c *Config) IsValid() bool {
	if c.currentProfile == nil || c.currentProfile.ServerURL == "" {
		return false
	}
	u, err := url.Parse(c.currentProfile.ServerURL)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Current returns a copy of the active profile with defaults applied.
func (c *Config) Current() Profile {
	if c.currentProfile == nil {
		return DefaultProfile()
	}
	p := *c.currentProfile
	if p.CookieName == "" {
		p.CookieName = defaultCookieName
	}
	if p.HistoryStore == "" {
		p.HistoryStore = "file"
	}
	return p
}

func (c *Config) GetNotificationTimeout() time.Duration {
	if c.NotificationTimeout <= 0 {
		return defaultNotifyAfter
	}
	return c.NotificationTimeout
}

func loadConfigFile(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createDefaultConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: map[string]Profile{
			"default": DefaultProfile(),
		},
		ActiveProfile: "default",
	}

	if err := saveConfig(config, configPath); err != nil {
		return nil, err
	}

	return config, nil
}

func saveConfig(config *Config, configPath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	// The file may hold a session cookie.
	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no path")
	}
	if err := saveConfig(c, c.path); err != nil {
		return err
	}
	return c.setCurrentProfile()
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// Fall back to the first profile in name order so the choice is stable.
		names := c.ProfileNames()
		c.ActiveProfile = names[0]
		profile = c.Profiles[names[0]]
	}

	c.currentProfile = &profile
	return nil
}
