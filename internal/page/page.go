// Package page orchestrates one build: shell in, rendered page out. Which
// page to build is an explicit choice made by the caller; container-presence
// detection exists only for ad-hoc shells that are not in the config.
package page

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Synverta/news/internal/config"
	"github.com/Synverta/news/internal/feed"
	"github.com/Synverta/news/internal/i18n"
	"github.com/Synverta/news/internal/news"
	"github.com/Synverta/news/internal/render"
)

type Builder struct {
	feed     *feed.Client
	renderer *render.Renderer
	labels   *i18n.Table
	log      *zap.Logger
}

func NewBuilder(fc *feed.Client, r *render.Renderer, labels *i18n.Table, log *zap.Logger) *Builder {
	return &Builder{feed: fc, renderer: r, labels: labels, log: log}
}

// Subset derives the item view a container asks for. The input is expected
// to be date-sorted already; the result is always a fresh slice.
func Subset(items []news.Item, c config.Container) []news.Item {
	switch c.Source {
	case config.SourceFeatured:
		return news.FeaturedItems(items, c.Limit)
	case config.SourceCategory:
		return news.ByCategory(items, c.Category, c.Limit)
	default:
		return news.Latest(items, c.Limit)
	}
}

// Build renders one configured page: read shell, resolve language, fetch,
// sort, render each container, inject, write output.
func (b *Builder) Build(ctx context.Context, p config.Page) error {
	shell, err := os.ReadFile(p.Shell)
	if err != nil {
		return fmt.Errorf("reading shell %s: %w", p.Shell, err)
	}
	doc, err := render.ParseShell(shell)
	if err != nil {
		return err
	}

	lang := b.labels.Resolve(render.DocumentLanguage(doc))
	items := news.SortByDate(b.feed.Fetch(ctx, lang))

	fragments := make(map[string]string, len(p.Containers))
	for _, c := range p.Containers {
		html, err := b.renderer.List(Subset(items, c), lang, c.EmptyMessage)
		if err != nil {
			return err
		}
		fragments[c.ID] = html
	}
	render.Inject(doc, fragments)

	out, err := render.Serialize(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(p.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := os.WriteFile(p.Output, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", p.Output, err)
	}

	b.log.Info("page built",
		zap.String("mode", p.Mode),
		zap.String("output", p.Output),
		zap.String("lang", lang),
		zap.Int("items", len(items)))
	return nil
}

// Detect picks the configured page whose containers best match the shell.
// Returns false when no configured container id appears in the document.
func Detect(shell []byte, pages []config.Page) (config.Page, bool) {
	doc, err := render.ParseShell(shell)
	if err != nil {
		return config.Page{}, false
	}

	var best config.Page
	bestScore := 0
	for _, p := range pages {
		score := 0
		for _, c := range p.Containers {
			if render.HasContainer(doc, c.ID) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = p, score
		}
	}
	return best, bestScore > 0
}
