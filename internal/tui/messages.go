package tui

import "github.com/Synverta/news/internal/news"

type itemsLoadedMsg struct {
	lang  string
	items []news.Item
}

type openErrMsg struct {
	err error
}
