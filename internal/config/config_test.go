package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newsgen.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := loadDefaults()
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("default language = %q", cfg.DefaultLanguage)
	}
	if len(cfg.Languages) != 2 {
		t.Errorf("expected 2 languages, got %d", len(cfg.Languages))
	}
	if len(cfg.Pages) != 3 {
		t.Errorf("expected 3 pages, got %d", len(cfg.Pages))
	}
	if err := validate(cfg); err != nil {
		t.Errorf("embedded defaults do not validate: %v", err)
	}
	home, ok := cfg.FindPage("home")
	if !ok {
		t.Fatal("no home page in defaults")
	}
	if len(home.Containers) != 2 {
		t.Errorf("home should have 2 containers, got %d", len(home.Containers))
	}
}

func TestLoadValidFile(t *testing.T) {
	path := writeConfig(t, `
default_language: pt
languages: [pt, en]
feed:
  base: https://www.example.com
  single_path: data/news.json
pages:
  - mode: home
    shell: pages/index.html
    output: public/index.html
    containers:
      - id: latest-news-list
        source: latest
        limit: 5
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DefaultLanguage != "pt" {
		t.Errorf("default language = %q", cfg.DefaultLanguage)
	}
	if !cfg.Feed.Remote() {
		t.Error("https base should be remote")
	}
	if got := cfg.Feed.Path("en"); got != "data/news.json" {
		t.Errorf("single path = %q", got)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no languages", `
feed: {base: ".", single_path: data/news.json}
`},
		{"default not in languages", `
default_language: fr
languages: [en]
feed: {base: ".", single_path: data/news.json}
`},
		{"both feed paths", `
languages: [en]
feed: {base: ".", single_path: data/news.json, path_template: "data/news-%s.json"}
`},
		{"no feed path", `
languages: [en]
feed: {base: "."}
`},
		{"template without placeholder", `
languages: [en]
feed: {base: ".", path_template: data/news.json}
`},
		{"bad container source", `
languages: [en]
feed: {base: ".", single_path: data/news.json}
pages:
  - mode: home
    shell: a.html
    output: b.html
    containers: [{id: x, source: newest, limit: 5}]
`},
		{"category source without category", `
languages: [en]
feed: {base: ".", single_path: data/news.json}
pages:
  - mode: home
    shell: a.html
    output: b.html
    containers: [{id: x, source: category, limit: 5}]
`},
		{"unknown category", `
languages: [en]
feed: {base: ".", single_path: data/news.json}
categories: [{key: industry, labels: {en: Industry}}]
pages:
  - mode: home
    shell: a.html
    output: b.html
    containers: [{id: x, source: category, category: sports, limit: 5}]
`},
		{"zero limit", `
languages: [en]
feed: {base: ".", single_path: data/news.json}
pages:
  - mode: home
    shell: a.html
    output: b.html
    containers: [{id: x, source: latest, limit: 0}]
`},
		{"duplicate mode", `
languages: [en]
feed: {base: ".", single_path: data/news.json}
pages:
  - {mode: home, shell: a.html, output: b.html}
  - {mode: home, shell: c.html, output: d.html}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.yaml)
			if _, err := Load(path); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestFeedPathTemplate(t *testing.T) {
	f := Feed{Base: ".", PathTemplate: "data/news-%s.json"}
	if got := f.Path("pt"); got != "data/news-pt.json" {
		t.Errorf("Path(pt) = %q", got)
	}
	if f.Remote() {
		t.Error("local base should not be remote")
	}
}

func TestLabelOverrides(t *testing.T) {
	cfg := &Config{Categories: []Category{
		{Key: "industry", Labels: map[string]string{"en": "Industry News", "pt": "Notícias do Setor"}},
		{Key: "events", Labels: map[string]string{"en": "Events"}},
	}}
	overrides := cfg.LabelOverrides()
	if overrides["en"]["events"] != "Events" {
		t.Errorf("en overrides = %v", overrides["en"])
	}
	if overrides["pt"]["industry"] != "Notícias do Setor" {
		t.Errorf("pt overrides = %v", overrides["pt"])
	}
	if _, ok := overrides["pt"]["events"]; ok {
		t.Error("events has no pt label and should not appear")
	}
}
