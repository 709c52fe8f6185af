package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/Rorical/gameconsole/internal/config"
)

var useCmd = &cobra.Command{
	Use:   "use [profile-name]",
	Short: "Switch to a profile and start the console",
	Long:  `Switch to the specified profile and immediately start the console.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		profileName := args[0]

		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		if err := cfg.Switch(profileName); err != nil {
			log.Fatalf("Failed to switch profile: %v", err)
		}

		// Save config with new active profile
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		runConsole(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
