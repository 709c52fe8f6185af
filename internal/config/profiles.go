package config

import (
	"fmt"
	"sort"
)

// ProfileNames returns the profile names in sorted order.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Switch makes name the active profile.
func (c *Config) Switch(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	c.ActiveProfile = name
	return c.setCurrentProfile()
}

// Delete removes a profile. Deleting the active profile activates another
// one, and deleting the last profile recreates the default.
func (c *Config) Delete(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile '%s' does not exist", name)
	}
	delete(c.Profiles, name)

	if len(c.Profiles) == 0 {
		c.Profiles["default"] = DefaultProfile()
		c.ActiveProfile = "default"
	} else if c.ActiveProfile == name {
		c.ActiveProfile = c.ProfileNames()[0]
	}
	return c.setCurrentProfile()
}

// SetSessionCookie stores the session cookie of the active profile, or clears
// it when value is empty.
func (c *Config) SetSessionCookie(value string) {
	p := c.Profiles[c.ActiveProfile]
	p.SessionCookie = value
	c.Profiles[c.ActiveProfile] = p
	c.currentProfile = &p
}
