package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/Rorical/gameconsole/internal/config"
	"github.com/Rorical/gameconsole/internal/nav"
	"github.com/Rorical/gameconsole/internal/stats"
	"github.com/Rorical/gameconsole/ui/styles"
)

var statsOpen bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Check the statistics dashboard",
	Long:  `Probe the statistics dashboard of the active profile and print its status. With --open the dashboard is opened in the browser.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		profile := cfg.Current()
		if profile.DashboardURL == "" {
			log.Fatalf("Profile '%s' has no dashboard_url", cfg.ActiveProfile)
		}

		embed := stats.New(profile.DashboardURL, nil)
		_, attempt := embed.State()
		state := embed.Probe(cmd.Context(), attempt)

		status := embed.StatusText()
		fmt.Printf("%s  %s\n", profile.DashboardURL, styles.StatsStateStyle(status).Render(status))
		if err := embed.Err(); err != nil {
			fmt.Printf("  %v\n", err)
		}

		if statsOpen {
			if err := nav.OpenBrowser(embed.URL()); err != nil {
				log.Fatalf("Failed to open dashboard: %v", err)
			}
		}
		if state == stats.Error {
			os.Exit(1)
		}
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsOpen, "open", false, "open the dashboard in the browser")
	rootCmd.AddCommand(statsCmd)
}
