package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Container source kinds.
const (
	SourceLatest   = "latest"
	SourceFeatured = "featured"
	SourceCategory = "category"
)

// Container names a region in a page shell and how to fill it.
type Container struct {
	ID           string `yaml:"id"`
	Source       string `yaml:"source"`
	Category     string `yaml:"category,omitempty"`
	Limit        int    `yaml:"limit"`
	EmptyMessage string `yaml:"empty_message,omitempty"`
}

// Page is one shell document to build.
type Page struct {
	Mode       string      `yaml:"mode"`
	Shell      string      `yaml:"shell"`
	Output     string      `yaml:"output"`
	Containers []Container `yaml:"containers"`
}

// Feed locates the news dataset. Either PathTemplate (one file per language,
// %s replaced by the language tag) or SinglePath is set, never both.
type Feed struct {
	Base         string `yaml:"base"`
	PathTemplate string `yaml:"path_template,omitempty"`
	SinglePath   string `yaml:"single_path,omitempty"`
}

// Category declares a feed category and its per-language display labels.
type Category struct {
	Key    string            `yaml:"key"`
	Labels map[string]string `yaml:"labels"`
}

type Config struct {
	DefaultLanguage string     `yaml:"default_language"`
	Languages       []string   `yaml:"languages"`
	Feed            Feed       `yaml:"feed"`
	Categories      []Category `yaml:"categories"`
	Pages           []Page     `yaml:"pages"`
}

// Remote reports whether the feed base is fetched over HTTP rather than read
// from the local tree.
func (f Feed) Remote() bool {
	u, err := url.Parse(f.Base)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https")
}

// Path returns the feed path for a language.
func (f Feed) Path(lang string) string {
	if f.SinglePath != "" {
		return f.SinglePath
	}
	return fmt.Sprintf(f.PathTemplate, lang)
}

// CategoryKeys returns the configured category keys in declaration order.
func (c *Config) CategoryKeys() []string {
	keys := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		keys = append(keys, cat.Key)
	}
	return keys
}

// LabelOverrides flattens the category declarations into the lang->key->label
// shape the i18n table consumes.
func (c *Config) LabelOverrides() map[string]map[string]string {
	out := make(map[string]map[string]string)
	for _, cat := range c.Categories {
		for lang, label := range cat.Labels {
			if out[lang] == nil {
				out[lang] = make(map[string]string)
			}
			out[lang][cat.Key] = label
		}
	}
	return out
}

// FindPage returns the page configured for a mode.
func (c *Config) FindPage(mode string) (Page, bool) {
	for _, p := range c.Pages {
		if p.Mode == mode {
			return p, true
		}
	}
	return Page{}, false
}

// DefaultConfigPath is the xdg fallback consulted when no project-local
// config exists.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "newsgen", "config.yaml")
}

const projectConfigName = "newsgen.yaml"

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the configuration. Resolution order: explicit path,
// ./newsgen.yaml, the xdg config path, then the embedded defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, candidate := range []string{projectConfigName, DefaultConfigPath()} {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}
	if path == "" {
		return loadDefaults()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return loadDefaults()
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if len(cfg.Languages) == 0 {
		return fmt.Errorf("at least one language is required")
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = cfg.Languages[0]
	}
	found := false
	for _, l := range cfg.Languages {
		if l == cfg.DefaultLanguage {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("default_language %q is not in languages", cfg.DefaultLanguage)
	}

	if cfg.Feed.PathTemplate != "" && cfg.Feed.SinglePath != "" {
		return fmt.Errorf("feed: path_template and single_path are mutually exclusive")
	}
	if cfg.Feed.PathTemplate == "" && cfg.Feed.SinglePath == "" {
		return fmt.Errorf("feed: one of path_template or single_path is required")
	}
	if cfg.Feed.PathTemplate != "" && !strings.Contains(cfg.Feed.PathTemplate, "%s") {
		return fmt.Errorf("feed: path_template must contain %%s for the language")
	}

	categories := make(map[string]bool, len(cfg.Categories))
	for _, cat := range cfg.Categories {
		if cat.Key == "" {
			return fmt.Errorf("category: key is required")
		}
		categories[cat.Key] = true
	}

	modes := make(map[string]bool, len(cfg.Pages))
	for _, p := range cfg.Pages {
		if p.Mode == "" {
			return fmt.Errorf("page: mode is required")
		}
		if modes[p.Mode] {
			return fmt.Errorf("page %q: duplicate mode", p.Mode)
		}
		modes[p.Mode] = true
		if p.Shell == "" || p.Output == "" {
			return fmt.Errorf("page %q: shell and output are required", p.Mode)
		}
		for _, c := range p.Containers {
			if c.ID == "" {
				return fmt.Errorf("page %q: container id is required", p.Mode)
			}
			switch c.Source {
			case SourceLatest, SourceFeatured:
			case SourceCategory:
				if c.Category == "" {
					return fmt.Errorf("page %q container %q: category is required for source %q", p.Mode, c.ID, SourceCategory)
				}
				if len(categories) > 0 && !categories[c.Category] {
					return fmt.Errorf("page %q container %q: unknown category %q", p.Mode, c.ID, c.Category)
				}
			default:
				return fmt.Errorf("page %q container %q: unknown source %q (valid: latest, featured, category)", p.Mode, c.ID, c.Source)
			}
			if c.Limit <= 0 {
				return fmt.Errorf("page %q container %q: limit must be positive", p.Mode, c.ID)
			}
		}
	}
	return nil
}
