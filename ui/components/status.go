package components

import (
	"strings"

	"github.com/Rorical/gameconsole/internal/console"
	"github.com/Rorical/gameconsole/internal/utils"
	"github.com/Rorical/gameconsole/ui/styles"
)

// StatusInfo is what the status bar shows.
type StatusInfo struct {
	Status       string
	Loading      bool
	LoadingDots  int
	Notification *console.Notification
	Username     string
	Role         string
}

func RenderStatus(info StatusInfo, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := info.Status
	if info.Loading {
		statusContent += strings.Repeat(".", info.LoadingDots)
	}
	if info.Notification != nil {
		text := utils.Sanitize(info.Notification.Text)
		statusContent = styles.NotificationStyle(info.Notification.Level).Render(text)
	}
	if info.Username != "" {
		user := info.Username
		if info.Role != "" {
			user += " [" + info.Role + "]"
		}
		statusContent += " | " + user
	}

	return statusStyle.Render(statusContent)
}
