package components

import (
	"strings"

	"github.com/Rorical/gameconsole/internal/models"
	"github.com/Rorical/gameconsole/ui/styles"
)

// RenderMessages renders the console output. When maxLines is positive only
// the most recent lines that fit are kept.
func RenderMessages(messages []models.Message, maxLines int) string {
	var b strings.Builder

	programStyle := styles.ProgramStyle()
	timestampStyle := styles.TimestampStyle()
	commandStyle := styles.CommandStyle()
	responseStyle := styles.ResponseStyle()

	for _, msg := range messages {
		switch msg.Type {
		case models.Program:
			b.WriteString(programStyle.Render(msg.Content) + "\n")
		case models.CommandLog:
			stamp := timestampStyle.Render("[" + msg.Time.Format("15:04:05") + "]")
			b.WriteString(stamp + " " + commandStyle.Render("> "+msg.Command) + "\n")
			b.WriteString(responseStyle.Render(msg.Content) + "\n")
		}
	}

	out := b.String()
	if maxLines <= 0 {
		return out
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) <= maxLines {
		return out
	}
	return strings.Join(lines[len(lines)-maxLines:], "\n") + "\n"
}
