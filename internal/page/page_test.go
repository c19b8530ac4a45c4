package page

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/Synverta/news/internal/config"
	"github.com/Synverta/news/internal/feed"
	"github.com/Synverta/news/internal/i18n"
	"github.com/Synverta/news/internal/news"
	"github.com/Synverta/news/internal/render"
)

func TestSubset(t *testing.T) {
	items := news.SortByDate([]news.Item{
		{Title: "A", Date: "2024-01-01", Category: "industry", Featured: true},
		{Title: "B", Date: "2024-03-01", Category: "product"},
		{Title: "C", Date: "2024-02-01", Category: "industry"},
	})

	latest := Subset(items, config.Container{Source: config.SourceLatest, Limit: 2})
	if len(latest) != 2 || latest[0].Title != "B" {
		t.Errorf("latest subset wrong: %+v", latest)
	}

	featured := Subset(items, config.Container{Source: config.SourceFeatured, Limit: 5})
	if len(featured) != 1 || featured[0].Title != "A" {
		t.Errorf("featured subset wrong: %+v", featured)
	}

	industry := Subset(items, config.Container{Source: config.SourceCategory, Category: "industry", Limit: 1})
	if len(industry) != 1 || industry[0].Title != "C" {
		t.Errorf("category subset wrong: %+v", industry)
	}
}

const homeShell = `<!DOCTYPE html>
<html lang="en">
<body>
<section id="latest-news-list"></section>
<section id="featured-news-list"></section>
<footer id="site-footer">footer</footer>
</body>
</html>`

// The canonical two-item dataset: the March item is newest, the January item
// is the only featured one.
const homeFeed = `[
	{"title": "Industry Brief", "url": "https://example.com/1", "date": "2024-01-01", "category": "industry", "summary": "old", "featured": true},
	{"title": "Product Drop", "url": "https://example.com/2", "date": "2024-03-01", "category": "product", "summary": "new", "featured": false}
]`

func buildHome(t *testing.T, shellHTML, feedJSON string) *goquery.Document {
	t.Helper()
	dir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data", "news-en.json"), []byte(feedJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	shellPath := filepath.Join(dir, "index.html")
	if err := os.WriteFile(shellPath, []byte(shellHTML), 0o644); err != nil {
		t.Fatal(err)
	}

	labels := i18n.NewTable("en", nil)
	renderer, err := render.New(labels)
	if err != nil {
		t.Fatal(err)
	}
	client := feed.NewClient(config.Feed{Base: dir, PathTemplate: "data/news-%s.json"}, zap.NewNop())
	b := NewBuilder(client, renderer, labels, zap.NewNop())

	outPath := filepath.Join(dir, "public", "index.html")
	p := config.Page{
		Mode:   "home",
		Shell:  shellPath,
		Output: outPath,
		Containers: []config.Container{
			{ID: "latest-news-list", Source: config.SourceLatest, Limit: 5},
			{ID: "featured-news-list", Source: config.SourceFeatured, Limit: 3},
		},
	}
	if err := b.Build(context.Background(), p); err != nil {
		t.Fatalf("build: %v", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(out)))
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	return doc
}

func TestBuildHomepage(t *testing.T) {
	doc := buildHome(t, homeShell, homeFeed)

	latest := doc.Find("#latest-news-list article.news-item")
	if latest.Length() != 2 {
		t.Fatalf("expected 2 latest items, got %d", latest.Length())
	}
	if got := latest.First().Find("h3 a").Text(); got != "Product Drop" {
		t.Errorf("newest item should lead the latest list, got %q", got)
	}

	featured := doc.Find("#featured-news-list article.news-item")
	if featured.Length() != 1 {
		t.Fatalf("expected 1 featured item, got %d", featured.Length())
	}
	if got := featured.First().Find("h3 a").Text(); got != "Industry Brief" {
		t.Errorf("featured list should hold the flagged item, got %q", got)
	}

	// Untouched parts of the shell survive.
	if got := doc.Find("#site-footer").Text(); got != "footer" {
		t.Errorf("footer mutated: %q", got)
	}
}

func TestBuildEmptyFeedRendersEmptyState(t *testing.T) {
	doc := buildHome(t, homeShell, `[]`)
	if n := doc.Find("#latest-news-list .news-empty").Length(); n != 1 {
		t.Errorf("expected one empty-state element in latest, got %d", n)
	}
	if got := doc.Find("#latest-news-list .news-empty").Text(); got != "No news available." {
		t.Errorf("empty message = %q", got)
	}
}

func TestBuildMissingFeedRendersEmptyState(t *testing.T) {
	dir := t.TempDir()
	shellPath := filepath.Join(dir, "index.html")
	if err := os.WriteFile(shellPath, []byte(homeShell), 0o644); err != nil {
		t.Fatal(err)
	}

	labels := i18n.NewTable("en", nil)
	renderer, err := render.New(labels)
	if err != nil {
		t.Fatal(err)
	}
	client := feed.NewClient(config.Feed{Base: dir, PathTemplate: "data/news-%s.json"}, zap.NewNop())
	b := NewBuilder(client, renderer, labels, zap.NewNop())

	outPath := filepath.Join(dir, "out.html")
	p := config.Page{
		Mode:   "home",
		Shell:  shellPath,
		Output: outPath,
		Containers: []config.Container{
			{ID: "latest-news-list", Source: config.SourceLatest, Limit: 5},
		},
	}
	if err := b.Build(context.Background(), p); err != nil {
		t.Fatalf("build should tolerate a missing feed: %v", err)
	}

	out, _ := os.ReadFile(outPath)
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(string(out)))
	if n := doc.Find("#latest-news-list .news-empty").Length(); n != 1 {
		t.Errorf("expected empty state, got %d elements", n)
	}
}

func TestBuildMissingContainerTolerated(t *testing.T) {
	// Shell has no featured container; the build still succeeds and the
	// rest of the page renders.
	shellNoFeatured := strings.Replace(homeShell, `<section id="featured-news-list"></section>`, "", 1)
	doc := buildHome(t, shellNoFeatured, homeFeed)
	if n := doc.Find("#latest-news-list article.news-item").Length(); n != 2 {
		t.Errorf("latest list should still render, got %d items", n)
	}
}

func TestBuildPortugueseShell(t *testing.T) {
	ptShell := strings.Replace(homeShell, `lang="en"`, `lang="pt-BR"`, 1)
	dir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(dir, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	// Only the pt feed exists; the shell's lang attribute must route to it.
	if err := os.WriteFile(filepath.Join(dir, "data", "news-pt.json"), []byte(homeFeed), 0o644); err != nil {
		t.Fatal(err)
	}
	shellPath := filepath.Join(dir, "index.html")
	if err := os.WriteFile(shellPath, []byte(ptShell), 0o644); err != nil {
		t.Fatal(err)
	}

	labels := i18n.NewTable("en", nil)
	renderer, err := render.New(labels)
	if err != nil {
		t.Fatal(err)
	}
	client := feed.NewClient(config.Feed{Base: dir, PathTemplate: "data/news-%s.json"}, zap.NewNop())
	b := NewBuilder(client, renderer, labels, zap.NewNop())

	outPath := filepath.Join(dir, "out.html")
	p := config.Page{
		Mode:   "home",
		Shell:  shellPath,
		Output: outPath,
		Containers: []config.Container{
			{ID: "latest-news-list", Source: config.SourceLatest, Limit: 5},
			{ID: "featured-news-list", Source: config.SourceFeatured, Limit: 3},
		},
	}
	if err := b.Build(context.Background(), p); err != nil {
		t.Fatalf("build: %v", err)
	}

	out, _ := os.ReadFile(outPath)
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(string(out)))
	if got := doc.Find("#latest-news-list .news-category").First().Text(); got != "Atualizações de Produto" {
		t.Errorf("pt labels expected, got %q", got)
	}
	if got := doc.Find("#featured-news-list .news-badge-featured").Text(); got != "Destaque" {
		t.Errorf("pt featured badge expected, got %q", got)
	}
}

func TestDetect(t *testing.T) {
	pages := []config.Page{
		{Mode: "home", Containers: []config.Container{
			{ID: "latest-news-list", Source: config.SourceLatest, Limit: 5},
			{ID: "featured-news-list", Source: config.SourceFeatured, Limit: 3},
		}},
		{Mode: "industry", Containers: []config.Container{
			{ID: "industry-news-list", Source: config.SourceCategory, Category: "industry", Limit: 10},
		}},
	}

	p, ok := Detect([]byte(homeShell), pages)
	if !ok || p.Mode != "home" {
		t.Errorf("expected home detection, got %q (%v)", p.Mode, ok)
	}

	industryShell := `<html><body><div id="industry-news-list"></div></body></html>`
	p, ok = Detect([]byte(industryShell), pages)
	if !ok || p.Mode != "industry" {
		t.Errorf("expected industry detection, got %q (%v)", p.Mode, ok)
	}

	_, ok = Detect([]byte(`<html><body><div id="hero"></div></body></html>`), pages)
	if ok {
		t.Error("shell without containers should not match")
	}
}
