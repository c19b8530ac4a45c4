package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(itemCount int, lang string, width int, loading bool) string {
	left := fmt.Sprintf(" %d items · %s", itemCount, lang)
	if loading {
		left += " (loading...)"
	}

	right := " l language  f filter  o open  q quit "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right
	return statusBarStyle.Width(width).Render(bar)
}
