package i18n

import (
	"strings"
	"time"
)

// The site ships in English and Portuguese. A Table holds every user-facing
// string the renderer needs for one build; config may override or extend the
// built-in labels, so the table is owned by the caller, not package state.
type Table struct {
	defaultLang string
	labels      map[string]map[string]string // lang -> category key -> label
	messages    map[string]messages
}

type messages struct {
	empty    string
	featured string
	dateFmt  string
}

var builtinLabels = map[string]map[string]string{
	"en": {
		"industry": "Industry News",
		"product":  "Product Updates",
		"company":  "Company",
	},
	"pt": {
		"industry": "Notícias do Setor",
		"product":  "Atualizações de Produto",
		"company":  "Empresa",
	},
}

var builtinMessages = map[string]messages{
	"en": {
		empty:    "No news available.",
		featured: "Featured",
		dateFmt:  "January 2, 2006",
	},
	"pt": {
		empty:    "Nenhuma notícia disponível.",
		featured: "Destaque",
		dateFmt:  "02/01/2006",
	},
}

// NewTable builds a table for the given default language, applying label
// overrides on top of the built-ins. Overrides for unknown languages create
// the language with built-in messages borrowed from the default.
func NewTable(defaultLang string, overrides map[string]map[string]string) *Table {
	t := &Table{
		defaultLang: defaultLang,
		labels:      make(map[string]map[string]string),
		messages:    builtinMessages,
	}
	for lang, m := range builtinLabels {
		t.labels[lang] = make(map[string]string, len(m))
		for k, v := range m {
			t.labels[lang][k] = v
		}
	}
	for lang, m := range overrides {
		if t.labels[lang] == nil {
			t.labels[lang] = make(map[string]string, len(m))
		}
		for k, v := range m {
			t.labels[lang][k] = v
		}
	}
	return t
}

// Resolve maps an arbitrary language tag onto a supported one, falling back
// to the table's default when the tag is empty or unknown. Region subtags
// ("pt-BR") resolve to their base language.
func (t *Table) Resolve(lang string) string {
	if lang == "" {
		return t.defaultLang
	}
	lang = strings.ToLower(lang)
	if len(lang) > 2 {
		lang = lang[:2]
	}
	if _, ok := t.labels[lang]; ok {
		return lang
	}
	return t.defaultLang
}

// CategoryLabel returns the display label for a category in the given
// language. Unknown categories pass through as the literal key.
func (t *Table) CategoryLabel(category, lang string) string {
	if label, ok := t.labels[t.Resolve(lang)][category]; ok {
		return label
	}
	return category
}

// EmptyMessage returns the default empty-state text for a language.
func (t *Table) EmptyMessage(lang string) string {
	return t.msgs(lang).empty
}

// FeaturedBadge returns the featured badge text for a language.
func (t *Table) FeaturedBadge(lang string) string {
	return t.msgs(lang).featured
}

// FormatDate renders a time in the language's display format.
func (t *Table) FormatDate(at time.Time, lang string) string {
	return at.Format(t.msgs(lang).dateFmt)
}

func (t *Table) msgs(lang string) messages {
	if m, ok := t.messages[t.Resolve(lang)]; ok {
		return m
	}
	return t.messages["en"]
}
