package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Synverta/news/internal/news"
)

func (a *App) renderPreview(it *news.Item, width, height, scroll int) string {
	if it == nil {
		return centerText("Select an article", width, height)
	}

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(it.Title)

	meta := a.labels.CategoryLabel(it.Category, a.lang)
	if at := it.PublishedAt(); !at.IsZero() {
		meta += " · " + a.labels.FormatDate(at, a.lang) + " (" + humanize.Time(at) + ")"
	}
	if it.Featured {
		meta += " · " + a.labels.FeaturedBadge(a.lang)
	}
	metaLine := previewMetaStyle.Render(meta)

	body := stripMarkup(it.Summary)
	if body == "" {
		body = "(No summary available)"
	}
	bodyBlock := previewBodyStyle.Width(contentWidth).Render(wrapText(body, contentWidth))

	var tagLine string
	if len(it.Tags) > 0 {
		tagLine = previewTagStyle.Render("# " + strings.Join(it.Tags, "  # "))
	}

	link := previewLinkStyle.Width(contentWidth).Render("Read more: " + it.URL)

	parts := []string{title, metaLine, "", bodyBlock}
	if tagLine != "" {
		parts = append(parts, "", tagLine)
	}
	parts = append(parts, "", link)
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// stripMarkup flattens the summary's trusted HTML for terminal display.
func stripMarkup(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
