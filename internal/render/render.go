// Package render turns news items into HTML fragments and injects them into
// page shell documents. Items flow through a view model so templates never
// see raw feed records.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Synverta/news/internal/i18n"
	"github.com/Synverta/news/internal/news"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// ItemView is the template input for one rendered item.
type ItemView struct {
	Title         string
	URL           string
	Date          string
	Datetime      string
	CategoryLabel string
	FeaturedBadge string
	Tags          []string
	// Summary is editorial content from the site's own feed and may carry
	// markup, so it is injected unescaped.
	Summary template.HTML
}

type emptyView struct {
	Message string
}

type Renderer struct {
	tpl    *template.Template
	labels *i18n.Table
}

func New(labels *i18n.Table) (*Renderer, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{tpl: tpl, labels: labels}, nil
}

// viewOf builds the view model for an item in a language.
func (r *Renderer) viewOf(it news.Item, lang string) ItemView {
	v := ItemView{
		Title:         it.Title,
		URL:           it.URL,
		Datetime:      it.Date,
		CategoryLabel: r.labels.CategoryLabel(it.Category, lang),
		Tags:          it.Tags,
		Summary:       template.HTML(it.Summary),
	}
	if at := it.PublishedAt(); !at.IsZero() {
		v.Date = r.labels.FormatDate(at, lang)
	} else {
		v.Date = it.Date
	}
	if it.Featured {
		v.FeaturedBadge = r.labels.FeaturedBadge(lang)
	}
	return v
}

// Item renders a single item fragment.
func (r *Renderer) Item(it news.Item, lang string) (string, error) {
	var buf bytes.Buffer
	if err := r.tpl.ExecuteTemplate(&buf, "item.html.tmpl", r.viewOf(it, lang)); err != nil {
		return "", fmt.Errorf("rendering item %q: %w", it.Title, err)
	}
	return buf.String(), nil
}

// List renders a sequence of items as concatenated fragments. An empty
// sequence renders exactly one empty-state element carrying emptyMsg, or the
// language default when emptyMsg is blank.
func (r *Renderer) List(items []news.Item, lang, emptyMsg string) (string, error) {
	if len(items) == 0 {
		if emptyMsg == "" {
			emptyMsg = r.labels.EmptyMessage(lang)
		}
		var buf bytes.Buffer
		if err := r.tpl.ExecuteTemplate(&buf, "empty.html.tmpl", emptyView{Message: emptyMsg}); err != nil {
			return "", fmt.Errorf("rendering empty state: %w", err)
		}
		return buf.String(), nil
	}

	var b strings.Builder
	for _, it := range items {
		frag, err := r.Item(it, lang)
		if err != nil {
			return "", err
		}
		b.WriteString(frag)
	}
	return b.String(), nil
}

// ParseShell parses a page shell document.
func ParseShell(html []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing shell: %w", err)
	}
	return doc, nil
}

// DocumentLanguage reads the shell's html[lang] attribute. Empty when the
// attribute is missing; callers resolve it against the language table.
func DocumentLanguage(doc *goquery.Document) string {
	lang, _ := doc.Find("html").Attr("lang")
	return strings.TrimSpace(lang)
}

// HasContainer reports whether the shell has an element with the given id.
func HasContainer(doc *goquery.Document, id string) bool {
	return doc.Find("#"+id).Length() > 0
}

// Inject replaces the inner HTML of each container present in the document.
// Ids absent from the shell are skipped; the rest of the document is left
// untouched.
func Inject(doc *goquery.Document, fragments map[string]string) {
	for id, html := range fragments {
		sel := doc.Find("#" + id)
		if sel.Length() == 0 {
			continue
		}
		sel.SetHtml(html)
	}
}

// Serialize renders the document back to HTML.
func Serialize(doc *goquery.Document) ([]byte, error) {
	html, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("serializing shell: %w", err)
	}
	return []byte(html), nil
}
