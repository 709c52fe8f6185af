package components

import (
	"fmt"
	"strings"

	"github.com/Rorical/gameconsole/internal/utils"
	"github.com/Rorical/gameconsole/ui/styles"
)

// MaxSuggestions is how many autocomplete matches are listed under the input.
const MaxSuggestions = 5

func RenderInput(input string, width int) string {
	return styles.InputStyle(width).Render(input)
}

// RenderSuggestions lists the autocomplete matches, highlighting the one
// matching the current input.
func RenderSuggestions(suggestions []string, current string, width int) string {
	if len(suggestions) == 0 {
		return ""
	}

	var b strings.Builder
	for i, s := range suggestions {
		if i == MaxSuggestions {
			more := len(suggestions) - MaxSuggestions
			b.WriteString(styles.SuggestionStyle().Render(utils.Truncate(fmt.Sprintf("... %d more", more), width-2)) + "\n")
			break
		}
		line := utils.Truncate(s, width-2)
		if strings.TrimSpace(s) == strings.TrimSpace(current) {
			b.WriteString(styles.ActiveSuggestionStyle().Render(line) + "\n")
		} else {
			b.WriteString(styles.SuggestionStyle().Render(line) + "\n")
		}
	}
	return b.String()
}

// RenderConfirmation draws a yes/no question.
func RenderConfirmation(prompt string, width int) string {
	text := utils.Sanitize(prompt) + "\n[y] yes  [n] no"
	return styles.ConfirmStyle(width).Render(text)
}

// RenderLinks lists the declared links with the selected one highlighted.
func RenderLinks(names []string, selected, width int) string {
	var b strings.Builder
	b.WriteString(styles.SuggestionStyle().Render("Open link ([Enter] open  [Esc] close)") + "\n")
	for i, name := range names {
		line := utils.Truncate(name, width-2)
		if i == selected {
			b.WriteString(styles.ActiveSuggestionStyle().Render("> "+line) + "\n")
		} else {
			b.WriteString(styles.SuggestionStyle().Render("  "+line) + "\n")
		}
	}
	return b.String()
}
