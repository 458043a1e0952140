package attributes

import "strings"

// ExtractColor reads the literal color word out of a string.
func ExtractColor(s string) Color {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "бел"):
		return ColorWhite
	case strings.Contains(lower, "сер"):
		return ColorGray
	case strings.Contains(lower, "рыж") || strings.Contains(lower, "красн"):
		return ColorRed
	default:
		return ColorNone
	}
}
