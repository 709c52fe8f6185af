// Package commands holds the static knowledge the console has about game
// server commands: the autocomplete list and the dangerous-command check.
package commands

import "strings"

// Known is the autocomplete list, in display order.
var Known = []string{
	"help",
	"list",
	"say ",
	"tell ",
	"kick ",
	"ban ",
	"ban-ip ",
	"banlist",
	"pardon ",
	"pardon-ip ",
	"op ",
	"deop ",
	"whitelist add ",
	"whitelist remove ",
	"whitelist list",
	"whitelist on",
	"whitelist off",
	"gamemode survival ",
	"gamemode creative ",
	"gamemode adventure ",
	"gamemode spectator ",
	"difficulty ",
	"time set day",
	"time set night",
	"weather clear",
	"weather rain",
	"weather thunder",
	"tp ",
	"give ",
	"effect give ",
	"xp add ",
	"seed",
	"save-all",
	"save-on",
	"save-off",
	"reload",
	"stop",
}

// dangerousPrefixes require an explicit confirmation before execution.
var dangerousPrefixes = []string{"stop", "kill", "ban", "whitelist"}

// IsDangerous reports whether command starts with one of the dangerous
// prefixes, ignoring case. Only the start of the command is checked.
func IsDangerous(command string) bool {
	lower := strings.ToLower(command)
	for _, prefix := range dangerousPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// Suggestions returns the known commands that start with input, ignoring
// case, in list order. Empty input yields no suggestions.
func Suggestions(input string) []string {
	if input == "" {
		return nil
	}

	lower := strings.ToLower(input)
	var result []string
	for _, c := range Known {
		if strings.HasPrefix(strings.ToLower(c), lower) {
			result = append(result, c)
		}
	}
	return result
}
