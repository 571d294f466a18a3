package common

import "strings"

// TruncateName truncates a player name to the specified maximum length.
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}

// HandMarkers renders one marker cell per hand slot: a caret under the
// selected card and a dot under every playable one.
func HandMarkers(size, selected int, playable []int, cellWidth int) string {
	ok := make(map[int]bool, len(playable))
	for _, i := range playable {
		ok[i] = true
	}

	var sb strings.Builder
	for i := range size {
		mark := " "
		switch {
		case i == selected:
			mark = "^"
		case ok[i]:
			mark = "·"
		}
		pad := cellWidth - 1
		sb.WriteString(strings.Repeat(" ", pad/2) + mark + strings.Repeat(" ", pad-pad/2))
	}
	return sb.String()
}
