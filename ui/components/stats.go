package components

import (
	"github.com/Rorical/gameconsole/internal/utils"
	"github.com/Rorical/gameconsole/ui/styles"
)

// RenderStatsBar is the one-line dashboard header shown above the console.
func RenderStatsBar(url, status, button string, width int) string {
	state := styles.StatsStateStyle(status).Render(status)
	line := "Dashboard " + utils.Truncate(url, max(10, width/2)) + "  " + state + "  [F2] " + button
	return styles.StatsBarStyle(width).Render(line)
}

// RenderStatsPanel fills the screen with the dashboard state while in
// fullscreen.
func RenderStatsPanel(url, status, button string, width, height int) string {
	body := "Server Statistics\n\n" +
		utils.Truncate(url, max(10, width-8)) + "\n" +
		styles.StatsStateStyle(status).Render(status) + "\n\n" +
		"[Esc] " + button + "  [Ctrl+O] open in browser  [Ctrl+R] reload"
	return styles.StatsPanelStyle(width, height).Render(body)
}
