package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/gameconsole/internal/app"
	"github.com/Rorical/gameconsole/internal/config"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session and forget the stored cookie",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		profile := cfg.Current()
		client, err := app.NewClient(profile)
		if err != nil {
			log.Fatalf("%v", err)
		}

		ctx := cmd.Context()
		client.FetchCSRFToken(ctx)
		// The local session is dropped even when the server call fails.
		if err := client.Logout(ctx); err != nil {
			log.Printf("Logout request failed: %v", err)
		}

		cfg.SetSessionCookie("")
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		if err := app.NewNavigator(profile, client).OpenURL(client.LoginURL()); err != nil {
			log.Printf("Failed to open login page: %v", err)
		}
		fmt.Println("Logged out")
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
