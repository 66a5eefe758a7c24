package slug

import (
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// Key folds a display name into a comparison key: lowercase ASCII letters and digits only.
// "Clash Royale", "clash_royale" and "CLASH-ROYALE" all map to "clashroyale".
func Key(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	return nonAlphaNum.ReplaceAllString(s, "")
}

// Make turns a display name into an icon-style identifier, e.g. "World War Z" -> "world_war_z".
func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "game"
	}
	return s
}
