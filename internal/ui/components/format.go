package components

import (
	"fmt"
	"strings"

	"dragochi/internal/ui/theme"
)

// Clock renders seconds as HH:MM:SS; hours grow past two digits when needed.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

// Human renders seconds as a short "3h 05m" style label.
func Human(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h, m := seconds/3600, seconds/60%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %02dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// HBar draws a bar of at most width cells scaled against top.
func HBar(value, top, width int) string {
	if top <= 0 || value <= 0 || width <= 0 {
		return ""
	}
	n := value * width / top
	if n == 0 {
		n = 1
	}
	return theme.Bar.Render(strings.Repeat("█", n))
}
