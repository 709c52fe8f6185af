package cmd

import (
	"errors"
	"fmt"
	"log"
	"net/url"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/gameconsole/internal/config"
	"github.com/Rorical/gameconsole/internal/storage"
)

var storeKinds = []string{string(storage.KindFile), string(storage.KindSQLite), string(storage.KindMemory)}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage server profiles",
	Long:  `Manage server profiles: the game server, its dashboard and the stored session.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		fmt.Printf("Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Println("Available Profiles:")
		for _, name := range cfg.ProfileNames() {
			profile := cfg.Profiles[name]
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			fmt.Printf("  %s%s\n", name, marker)
			fmt.Printf("    Server: %s\n", profile.ServerURL)
			if profile.DashboardURL != "" {
				fmt.Printf("    Dashboard: %s\n", profile.DashboardURL)
			}
			hasSession := "No"
			if profile.SessionCookie != "" {
				hasSession = "Yes"
			}
			fmt.Printf("    Session: %s\n", hasSession)
			fmt.Println()
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		profileName := args[0]
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		fmt.Printf("Profile: %s\n", profileName)
		fmt.Printf("Server URL: %s\n", profile.ServerURL)
		fmt.Printf("Dashboard URL: %s\n", profile.DashboardURL)
		fmt.Printf("Cookie Name: %s\n", profile.CookieName)
		hasSession := "Not set"
		if profile.SessionCookie != "" {
			hasSession = "Set (hidden for security)"
		}
		fmt.Printf("Session Cookie: %s\n", hasSession)
		fmt.Printf("History Store: %s\n", profile.HistoryStore)
		if profile.RequestTimeout > 0 {
			fmt.Printf("Request Timeout: %s\n", profile.RequestTimeout)
		}
		for name, target := range profile.Links {
			fmt.Printf("Link %s: %s\n", name, target)
		}
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label: "Profile name",
			}
			profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		profile, err := promptProfile(config.DefaultProfile())
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}

		cfg.Profiles[profileName] = profile

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			profileName, err = selectProfile(cfg, "Select profile to edit", "")
			if err != nil {
				log.Fatalf("Selection failed: %v", err)
			}
		}

		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		profile, err = promptProfile(profile)
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		cfg.Profiles[profileName] = profile

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			profileName, err = selectProfile(cfg, "Select profile to delete", "")
			if err != nil {
				log.Fatalf("Selection failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		if err := cfg.Delete(profileName); err != nil {
			log.Fatalf("Failed to delete profile: %v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			profileName, err = selectProfile(cfg, "Select profile to switch to", cfg.ActiveProfile)
			if errors.Is(err, errNoProfiles) {
				fmt.Println("No other profiles available to switch to")
				return
			}
			if err != nil {
				log.Fatalf("Selection failed: %v", err)
			}
		}

		if err := cfg.Switch(profileName); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}

		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

var errNoProfiles = errors.New("no profiles available")

// selectProfile lets the user pick a profile other than exclude.
func selectProfile(cfg *config.Config, label, exclude string) (string, error) {
	var names []string
	for _, name := range cfg.ProfileNames() {
		if name != exclude {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", errNoProfiles
	}

	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	return name, err
}

// promptProfile asks for every profile field, offering the values of p as
// defaults.
func promptProfile(p config.Profile) (config.Profile, error) {
	var err error

	serverPrompt := promptui.Prompt{
		Label:    "Server URL",
		Default:  p.ServerURL,
		Validate: validateHTTPURL,
	}
	if p.ServerURL, err = serverPrompt.Run(); err != nil {
		return p, err
	}

	dashboardPrompt := promptui.Prompt{
		Label:   "Dashboard URL",
		Default: p.DashboardURL,
		Validate: func(s string) error {
			if s == "" {
				return nil
			}
			return validateHTTPURL(s)
		},
	}
	if p.DashboardURL, err = dashboardPrompt.Run(); err != nil {
		return p, err
	}

	cookieNamePrompt := promptui.Prompt{
		Label:   "Session cookie name",
		Default: p.CookieName,
	}
	if p.CookieName, err = cookieNamePrompt.Run(); err != nil {
		return p, err
	}

	// Copied from the browser after logging in.
	sessionPrompt := promptui.Prompt{
		Label:   "Session cookie value",
		Default: p.SessionCookie,
		Mask:    '*',
	}
	if p.SessionCookie, err = sessionPrompt.Run(); err != nil {
		return p, err
	}

	storePrompt := promptui.Select{
		Label:     "History store",
		Items:     storeKinds,
		CursorPos: indexOf(storeKinds, p.HistoryStore),
	}
	if _, p.HistoryStore, err = storePrompt.Run(); err != nil {
		return p, err
	}

	return p, nil
}

func validateHTTPURL(s string) error {
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an http or https URL")
	}
	return nil
}

func indexOf(items []string, v string) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return 0
}

func init() {
	// Add subcommands to profile
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
