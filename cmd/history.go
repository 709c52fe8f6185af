package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/gameconsole/internal/app"
	"github.com/Rorical/gameconsole/internal/config"
	"github.com/Rorical/gameconsole/internal/utils"
)

var historyExportHTML string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the command history",
}

var listHistoryCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the command history, oldest first",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		h, closer, err := app.OpenHistory(cfg)
		if err != nil {
			log.Fatalf("Failed to open history: %v", err)
		}
		defer closer.Close()

		for i, entry := range h.Entries() {
			fmt.Printf("%3d  %s\n", i+1, entry)
		}
	},
}

var clearHistoryCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the command history",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		h, closer, err := app.OpenHistory(cfg)
		if err != nil {
			log.Fatalf("Failed to open history: %v", err)
		}
		defer closer.Close()

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete %d history entries", h.Len()),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Clear cancelled")
			return
		}

		h.Clear()
		fmt.Println("History cleared")
	},
}

var exportHistoryCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the command history as an HTML page",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		h, closer, err := app.OpenHistory(cfg)
		if err != nil {
			log.Fatalf("Failed to open history: %v", err)
		}
		defer closer.Close()

		var out io.Writer = os.Stdout
		if historyExportHTML != "" && historyExportHTML != "-" {
			f, err := os.Create(historyExportHTML)
			if err != nil {
				log.Fatalf("Failed to create %s: %v", historyExportHTML, err)
			}
			defer f.Close()
			out = f
		}

		if _, err := io.WriteString(out, historyHTML(cfg.ActiveProfile, h.Entries())); err != nil {
			log.Fatalf("Failed to write export: %v", err)
		}
	},
}

// historyHTML renders entries as a standalone page. Commands are inserted
// as text only.
func historyHTML(profile string, entries []string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Command history: ")
	b.WriteString(utils.EscapeHTML(profile))
	b.WriteString("</title></head>\n<body>\n<ol>\n")
	for _, entry := range entries {
		b.WriteString("  <li><code>")
		b.WriteString(utils.EscapeHTML(entry))
		b.WriteString("</code></li>\n")
	}
	b.WriteString("</ol>\n</body>\n</html>\n")
	return b.String()
}

func init() {
	exportHistoryCmd.Flags().StringVar(&historyExportHTML, "html", "-", "file to write the HTML page to (- for stdout)")
	historyCmd.AddCommand(listHistoryCmd)
	historyCmd.AddCommand(clearHistoryCmd)
	historyCmd.AddCommand(exportHistoryCmd)
	rootCmd.AddCommand(historyCmd)
}
