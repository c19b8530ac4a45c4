package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Synverta/news/internal/i18n"
)

type filterBar struct {
	categories   []string
	active       map[string]bool
	filterMode   bool
	filterCursor int
}

func newFilterBar(categories []string) filterBar {
	return filterBar{
		categories: categories,
		active:     make(map[string]bool),
	}
}

func (f *filterBar) toggle(category string) {
	if f.active[category] {
		delete(f.active, category)
	} else {
		f.active[category] = true
	}
}

func (f *filterBar) toggleCurrent() {
	if f.filterCursor < len(f.categories) {
		f.toggle(f.categories[f.filterCursor])
	}
}

// activeCategories returns nil when no filter is set, meaning all.
func (f *filterBar) activeCategories() []string {
	if len(f.active) == 0 {
		return nil
	}
	var out []string
	for _, c := range f.categories {
		if f.active[c] {
			out = append(out, c)
		}
	}
	return out
}

func (f *filterBar) render(width int, labels *i18n.Table, lang string) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	if len(f.active) == 0 {
		parts = append(parts, tabActiveStyle.Render("All"))
	} else {
		parts = append(parts, tabInactiveStyle.Render("All"))
	}

	for i, c := range f.categories {
		style := tabInactiveStyle
		if f.active[c] {
			style = tabActiveStyle
		}
		label := labels.CategoryLabel(c, lang)
		if f.filterMode && i == f.filterCursor {
			label = "[" + label + "]"
		}
		parts = append(parts, style.Render(label))
	}

	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorTabBg).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
