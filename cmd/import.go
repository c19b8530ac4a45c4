package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Synverta/news/internal/config"
	"github.com/Synverta/news/internal/importer"
)

var (
	flagImportLang     string
	flagImportCategory string
	flagImportLimit    int
	flagImportDryRun   bool
)

var importCmd = &cobra.Command{
	Use:   "import <rss-url>",
	Short: "Import an RSS/Atom feed into the news dataset",
	Long: `Fetch an RSS or Atom feed and merge its entries into the JSON news file
for a language. Existing entries (matched by URL) are kept untouched so
hand-curated categories, translations, and featured flags survive.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.Feed.Remote() {
			return fmt.Errorf("import writes the local feed file; feed.base is a URL (%s)", cfg.Feed.Base)
		}

		lang := flagImportLang
		if lang == "" {
			lang = cfg.DefaultLanguage
		}
		path := cfg.Feed.Path(lang)

		imported, err := importer.FetchRSS(cmd.Context(), args[0], importer.Options{
			Category: flagImportCategory,
			Limit:    flagImportLimit,
		})
		if err != nil {
			return err
		}

		existing, err := importer.LoadFile(path)
		if err != nil {
			return err
		}

		merged := importer.Merge(existing, imported)
		added := len(merged) - len(existing)

		if flagImportDryRun {
			fmt.Printf("Would add %d item(s) to %s (now %d).\n", added, path, len(existing))
			return nil
		}

		if err := importer.WriteFile(path, merged); err != nil {
			return err
		}
		fmt.Printf("Added %d item(s) to %s (%d total). Review categories and featured flags before building.\n", added, path, len(merged))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&flagImportLang, "lang", "", "target language feed (default: the configured default language)")
	importCmd.Flags().StringVar(&flagImportCategory, "category", "", "force a category instead of keyword guessing")
	importCmd.Flags().IntVar(&flagImportLimit, "limit", 0, "import at most this many entries (0 = all)")
	importCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "report what would change without writing")
}
