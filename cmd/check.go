package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Synverta/news/internal/config"
	"github.com/Synverta/news/internal/feed"
)

var (
	checkOkStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"})
	checkWarnStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#F25D94", Dark: "#F25D94"})
	checkDimStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"})
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Fetch each feed and report its contents",
	Long:  "Fetch the feed for every configured language and report item counts per category, featured counts, unknown categories, and unparseable dates.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		known := make(map[string]bool)
		for _, key := range cfg.CategoryKeys() {
			known[key] = true
		}

		client := feed.NewClient(cfg.Feed, log)
		problems := 0

		for _, lang := range cfg.Languages {
			items := client.Fetch(cmd.Context(), lang)
			fmt.Printf("%s %s\n", checkOkStyle.Render("feed"), cfg.Feed.Path(lang))

			if len(items) == 0 {
				fmt.Println("  " + checkWarnStyle.Render("no items (missing feed or fetch failure)"))
				problems++
				continue
			}

			perCategory := make(map[string]int)
			featured := 0
			for _, it := range items {
				perCategory[it.Category]++
				if it.Featured {
					featured++
				}
				if it.PublishedAt().IsZero() {
					fmt.Printf("  %s %q has unparseable date %q\n", checkWarnStyle.Render("warn"), it.Title, it.Date)
					problems++
				}
			}

			fmt.Printf("  %d item(s), %d featured\n", len(items), featured)
			for _, key := range cfg.CategoryKeys() {
				fmt.Printf("  %s %d\n", checkDimStyle.Render(key), perCategory[key])
				delete(perCategory, key)
			}
			for cat, n := range perCategory {
				fmt.Printf("  %s unknown category %q (%d item(s), label will echo the key)\n", checkWarnStyle.Render("warn"), cat, n)
				problems++
			}

			if cfg.Feed.SinglePath != "" {
				// Single-file feeds serve every language; one pass is enough.
				break
			}
		}

		if problems > 0 {
			fmt.Printf("\n%s\n", checkWarnStyle.Render(fmt.Sprintf("%d problem(s) found", problems)))
		} else {
			fmt.Printf("\n%s\n", checkOkStyle.Render("All feeds look good."))
		}
		return nil
	},
}
