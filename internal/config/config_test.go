package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefault(t *testing.T) {
	t.Setenv("GAMECONSOLE_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ActiveProfile != "default" {
		t.Errorf("ActiveProfile = %q", cfg.ActiveProfile)
	}
	if !cfg.IsValid() {
		t.Error("default config is not valid")
	}
	if _, err := os.Stat(cfg.Path()); err != nil {
		t.Errorf("config file not written: %v", err)
	}
	if got := cfg.Current().Links["stats"]; got != "/console/stats.html" {
		t.Errorf("stats link = %q", got)
	}
	if cfg.GetNotificationTimeout() != defaultNotifyAfter {
		t.Errorf("notification timeout = %v", cfg.GetNotificationTimeout())
	}
}

func TestLoadExistingYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
active_profile: survival
notification_timeout: 10s
profiles:
  survival:
    server_url: https://mc.example.com
    dashboard_url: https://stats.example.com
    session_cookie: abc
    history_store: sqlite
    request_timeout: 15s
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	p := cfg.Current()
	if p.ServerURL != "https://mc.example.com" || p.SessionCookie != "abc" || p.HistoryStore != "sqlite" {
		t.Errorf("profile = %+v", p)
	}
	if p.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v", p.RequestTimeout)
	}
	if p.CookieName != defaultCookieName {
		t.Errorf("CookieName default = %q", p.CookieName)
	}
	if cfg.GetNotificationTimeout() != 10*time.Second {
		t.Errorf("notification timeout = %v", cfg.GetNotificationTimeout())
	}
}

func TestMissingActiveProfileFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
active_profile: gone
profiles:
  zeta: {server_url: "http://z:1"}
  alpha: {server_url: "http://a:1"}
`
	os.WriteFile(path, []byte(data), 0600)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ActiveProfile != "alpha" {
		t.Errorf("ActiveProfile = %q, want alpha", cfg.ActiveProfile)
	}
}

func TestInvalidServerURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("active_profile: x\nprofiles:\n  x: {server_url: \"localhost\"}\n"), 0600)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IsValid() {
		t.Error("config without scheme reported valid")
	}
}

func TestSwitchDeleteAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}

	cfg.Profiles["creative"] = Profile{ServerURL: "http://creative:8080"}
	if err := cfg.Switch("creative"); err != nil {
		t.Fatal(err)
	}
	cfg.SetSessionCookie("cookie-1")
	if err := cfg.Save(); err != nil {
		t.Fatal(err)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.ActiveProfile != "creative" || reloaded.Current().SessionCookie != "cookie-1" {
		t.Errorf("reloaded = %q %+v", reloaded.ActiveProfile, reloaded.Current())
	}

	if err := reloaded.Delete("creative"); err != nil {
		t.Fatal(err)
	}
	if reloaded.ActiveProfile != "default" {
		t.Errorf("ActiveProfile after delete = %q", reloaded.ActiveProfile)
	}
	if err := reloaded.Delete("default"); err != nil {
		t.Fatal(err)
	}
	if _, ok := reloaded.Profiles["default"]; !ok || len(reloaded.Profiles) != 1 {
		t.Errorf("profiles after deleting last = %v", reloaded.Profiles)
	}
	if err := reloaded.Switch("nope"); err == nil {
		t.Error("Switch to missing profile succeeded")
	}
}
