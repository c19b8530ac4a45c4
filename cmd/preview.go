package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Synverta/news/internal/config"
	"github.com/Synverta/news/internal/feed"
	"github.com/Synverta/news/internal/i18n"
	"github.com/Synverta/news/internal/tui"
)

var flagPreviewLang string

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Browse the feed in the terminal",
	Long:  "Open a two-pane terminal browser over the news feed: filter by category, switch language, open articles in the browser.",
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

		labels := i18n.NewTable(cfg.DefaultLanguage, cfg.LabelOverrides())
		client := feed.NewClient(cfg.Feed, log)

		lang := flagPreviewLang
		if lang == "" {
			lang = cfg.DefaultLanguage
		}

		return tui.Run(tui.RunOpts{
			Feed:       client,
			Labels:     labels,
			Languages:  cfg.Languages,
			Lang:       lang,
			Categories: cfg.CategoryKeys(),
		})
	},
}

func init() {
	previewCmd.Flags().StringVar(&flagPreviewLang, "lang", "", "start in this language")
}
