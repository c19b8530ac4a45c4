// Package tui is a terminal preview of the feed: what editors check before
// a site build, without opening a browser.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Synverta/news/internal/browser"
	"github.com/Synverta/news/internal/feed"
	"github.com/Synverta/news/internal/i18n"
	"github.com/Synverta/news/internal/news"
)

type focusPane int

const (
	focusList focusPane = iota
	focusPreview
)

type App struct {
	feed      *feed.Client
	labels    *i18n.Table
	languages []string
	lang      string

	all    []news.Item // sorted dataset for the current language
	items  []news.Item // view after category filter
	cursor int
	focus  focusPane
	filter filterBar

	width  int
	height int

	spinner       spinner.Model
	loading       bool
	previewScroll int
	err           error
}

// RunOpts holds all parameters for launching the preview.
type RunOpts struct {
	Feed       *feed.Client
	Labels     *i18n.Table
	Languages  []string
	Lang       string
	Categories []string
}

func NewApp(opts RunOpts) *App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		feed:      opts.Feed,
		labels:    opts.Labels,
		languages: opts.Languages,
		lang:      opts.Labels.Resolve(opts.Lang),
		filter:    newFilterBar(opts.Categories),
		spinner:   sp,
		loading:   true,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadItemsCmd(a.lang), a.spinner.Tick)
}

// loadItemsCmd fetches and sorts the dataset for a language. The feed
// client memoizes, so switching back to a language is instant.
func (a *App) loadItemsCmd(lang string) tea.Cmd {
	fc := a.feed
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		items := news.SortByDate(fc.Fetch(ctx, lang))
		return itemsLoadedMsg{lang: lang, items: items}
	}
}

func (a *App) applyFilter() {
	active := a.filter.activeCategories()
	if active == nil {
		a.items = a.all
		return
	}
	allowed := make(map[string]bool, len(active))
	for _, c := range active {
		allowed[c] = true
	}
	var out []news.Item
	for _, it := range a.all {
		if allowed[it.Category] {
			out = append(out, it)
		}
	}
	a.items = out
}

func openBrowserCmd(url string) tea.Cmd {
	return func() tea.Msg {
		if err := browser.Open(url); err != nil {
			return openErrMsg{err: err}
		}
		return nil
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		a.err = nil
		return a.handleKey(msg)

	case itemsLoadedMsg:
		a.loading = false
		a.lang = msg.lang
		a.all = msg.items
		a.applyFilter()
		if a.cursor >= len(a.items) {
			a.cursor = max(0, len(a.items)-1)
		}
		return a, nil

	case openErrMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	}

	if a.filter.filterMode {
		return a.handleFilterKey(msg)
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "j", "down":
		if a.focus == focusList && a.cursor < len(a.items)-1 {
			a.cursor++
			a.previewScroll = 0
		} else if a.focus == focusPreview {
			a.previewScroll++
		}
		return a, nil
	case "k", "up":
		if a.focus == focusList && a.cursor > 0 {
			a.cursor--
			a.previewScroll = 0
		} else if a.focus == focusPreview && a.previewScroll > 0 {
			a.previewScroll--
		}
		return a, nil
	case "tab":
		if a.focus == focusList {
			a.focus = focusPreview
		} else {
			a.focus = focusList
		}
		return a, nil
	case "o", "enter":
		if len(a.items) > 0 && a.cursor < len(a.items) {
			return a, openBrowserCmd(a.items[a.cursor].URL)
		}
		return a, nil
	case "l":
		return a.cycleLanguage()
	case "f":
		a.filter.filterMode = true
		return a, nil
	}

	return a, nil
}

func (a *App) cycleLanguage() (tea.Model, tea.Cmd) {
	if len(a.languages) < 2 {
		return a, nil
	}
	next := a.languages[0]
	for i, l := range a.languages {
		if l == a.lang {
			next = a.languages[(i+1)%len(a.languages)]
			break
		}
	}
	a.loading = true
	a.cursor = 0
	a.previewScroll = 0
	return a, tea.Batch(a.loadItemsCmd(next), a.spinner.Tick)
}

func (a *App) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "f", "q":
		a.filter.filterMode = false
		return a, nil
	case "left", "h":
		if a.filter.filterCursor > 0 {
			a.filter.filterCursor--
		}
		return a, nil
	case "right", "l":
		if a.filter.filterCursor < len(a.filter.categories)-1 {
			a.filter.filterCursor++
		}
		return a, nil
	case " ", "enter":
		a.filter.toggleCurrent()
		a.cursor = 0
		a.applyFilter()
		return a, nil
	}
	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  newsgen")
	}

	headerHeight := 1
	filterHeight := 1
	statusHeight := 1
	contentHeight := a.height - headerHeight - filterHeight - statusHeight - 4 // borders
	if contentHeight < 3 {
		contentHeight = 3
	}

	listWidth := int(float64(a.width) * 0.35)
	previewWidth := a.width - listWidth - 1 // gap

	headerLeft := headerStyle.Render("newsgen preview")
	headerRight := headerLangStyle.Render(a.lang)
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	filter := a.filter.render(a.width, a.labels, a.lang)

	innerListW := listWidth - 4 // border + padding
	listContent := a.renderList(a.items, a.cursor, contentHeight, innerListW)

	var listPane string
	if a.focus == focusList {
		listPane = listPaneActiveStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	} else {
		listPane = listPaneStyle.Width(listWidth - 2).Height(contentHeight).Render(listContent)
	}

	var selected *news.Item
	if len(a.items) > 0 && a.cursor < len(a.items) {
		selected = &a.items[a.cursor]
	}
	innerPreviewW := previewWidth - 4
	previewContent := a.renderPreview(selected, innerPreviewW, contentHeight, a.previewScroll)

	var previewPane string
	if a.focus == focusPreview {
		previewPane = previewPaneActiveStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	} else {
		previewPane = previewPaneStyle.Width(previewWidth - 2).Height(contentHeight).Render(previewContent)
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top, listPane, previewPane)

	status := renderStatusBar(len(a.items), a.lang, a.width, a.loading)
	if a.loading {
		status = a.spinner.View() + " " + status
	}
	if a.err != nil {
		status = lipgloss.NewStyle().Foreground(colorAccent).Render(a.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, filter, content, status)
}

// Run starts the preview application.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
