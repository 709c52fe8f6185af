package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/gameconsole/internal/api"
	"github.com/Rorical/gameconsole/internal/app"
	"github.com/Rorical/gameconsole/internal/config"
	"github.com/Rorical/gameconsole/internal/console"
	"github.com/Rorical/gameconsole/ui/styles"
)

var execYes bool

var execCmd = &cobra.Command{
	Use:   "exec <command...>",
	Short: "Run one server command",
	Long: `Run a single server command and print the server's reply. Dangerous
commands and commands the server flags ask for confirmation unless --yes is
given. The command is recorded in the history like in the console.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		ctx := cmd.Context()
		client := mustSession(ctx, cfg)
		client.FetchCSRFToken(ctx)

		h, closer, err := app.OpenHistory(cfg)
		if err != nil {
			log.Fatalf("Failed to open history: %v", err)
		}
		defer closer.Close()

		var confirmer console.Confirmer = console.ConfirmFunc(promptConfirm)
		if execYes {
			confirmer = console.ConfirmFunc(func(context.Context, string) bool { return true })
		}

		c := console.New(h, client, confirmer, stdoutSink{})
		outcome := c.Execute(ctx, strings.Join(args, " "))
		if code := exitCode(outcome); code != 0 {
			closer.Close()
			os.Exit(code)
		}
	},
}

// mustSession builds a client for the active profile and checks its
// session, opening the login page and exiting when not logged in.
func mustSession(ctx context.Context, cfg *config.Config) *api.Client {
	if !cfg.IsValid() {
		log.Fatalf("Profile '%s' has no valid server_url", cfg.ActiveProfile)
	}
	profile := cfg.Current()
	client, err := app.NewClient(profile)
	if err != nil {
		log.Fatalf("%v", err)
	}

	navigator := app.NewNavigator(profile, client)
	if _, err := client.RequireSession(ctx, navigator.OpenURL); err != nil {
		fmt.Fprintln(os.Stderr, notLoggedIn)
		os.Exit(1)
	}
	return client
}

func promptConfirm(ctx context.Context, question string) bool {
	if ctx.Err() != nil {
		return false
	}
	prompt := promptui.Prompt{
		Label:     strings.TrimSuffix(question, "?"),
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}

func exitCode(o console.Outcome) int {
	switch o {
	case console.Succeeded, console.Skipped:
		return 0
	case console.TransportError:
		return 2
	default:
		return 1
	}
}

// stdoutSink prints log entries to stdout and notifications to stderr.
type stdoutSink struct{}

func (stdoutSink) Notify(n console.Notification) {
	fmt.Fprintln(os.Stderr, styles.NotificationStyle(n.Level).Render(n.Text))
}

func (stdoutSink) Log(entry console.LogEntry) {
	fmt.Println(entry.Body())
}

func init() {
	execCmd.Flags().BoolVarP(&execYes, "yes", "y", false, "answer yes to every confirmation")
	rootCmd.AddCommand(execCmd)
}
