package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/gameconsole/internal/app"
	"github.com/Rorical/gameconsole/internal/config"
)

var openCmd = &cobra.Command{
	Use:   "open [link]",
	Short: "Open a page declared in the profile's links",
	Args:  cobra.MaximumNArgs(1),
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
		navigator := app.NewNavigator(profile, client)

		if len(args) == 0 {
			for _, name := range navigator.Names() {
				u, _ := navigator.URL(name)
				fmt.Printf("  %-12s %s\n", name, u)
			}
			return
		}

		u, err := navigator.Open(args[0])
		if err != nil {
			log.Fatalf("%v", err)
		}
		fmt.Printf("Opened %s\n", u)
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
