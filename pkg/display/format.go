package display

import "strings"

// Rule returns a horizontal separator sized to the terminal, capped at max
func Rule(char string, max int) string {
	width := GetTerminalWidth()
	if max > 0 && width > max {
		width = max
	}
	return strings.Repeat(char, width)
}

// Truncate shortens a string to maxLen runes with an ellipsis
func Truncate(s string, maxLen int) string {
	if maxLen <= 3 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
