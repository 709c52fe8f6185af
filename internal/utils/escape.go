package utils

import "html"

// EscapeHTML makes s safe to insert into HTML as text. Every character that
// could open markup or an attribute is replaced by its entity.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}
