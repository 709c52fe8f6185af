package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Rorical/gameconsole/internal/api"
	"github.com/Rorical/gameconsole/internal/app"
	"github.com/Rorical/gameconsole/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "gameconsole",
	Short: "Game server administration console",
	Long: `gameconsole is a terminal console for game server administrators: run
server commands with history and autocomplete, and watch the statistics
dashboard.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		runConsole(cmd.Context(), cfg)
	},
}

const notLoggedIn = "Not logged in. The login page was opened; store the session cookie with `gameconsole profile edit`."

// runConsole runs the TUI for the active profile and exits the process on
// failure.
func runConsole(ctx context.Context, cfg *config.Config) {
	application, err := app.NewApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	err = application.Start(ctx)
	application.Stop()

	if errors.Is(err, api.ErrNotAuthenticated) {
		fmt.Fprintln(os.Stderr, notLoggedIn)
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(profileCmd)
}
