package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Synverta/news/internal/config"
	"github.com/Synverta/news/internal/feed"
	"github.com/Synverta/news/internal/i18n"
	"github.com/Synverta/news/internal/page"
	"github.com/Synverta/news/internal/render"
)

var (
	flagBuildPage   string
	flagBuildShell  string
	flagBuildOutput string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the configured news pages",
	Long: `Build every configured page, or a single one with --page.

An unconfigured shell can be built with --shell/--output; the page mode is
then picked by matching the shell's container ids against the config.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&flagBuildPage, "page", "", "build only the page with this mode")
	buildCmd.Flags().StringVar(&flagBuildShell, "shell", "", "build an ad-hoc shell file")
	buildCmd.Flags().StringVar(&flagBuildOutput, "output", "", "output path for --shell")
}

func runBuild(cmd *cobra.Command, args []string) error {
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
	renderer, err := render.New(labels)
	if err != nil {
		return err
	}
	client := feed.NewClient(cfg.Feed, log)
	builder := page.NewBuilder(client, renderer, labels, log)

	ctx := cmd.Context()

	if flagBuildShell != "" {
		shell, err := os.ReadFile(flagBuildShell)
		if err != nil {
			return fmt.Errorf("reading shell %s: %w", flagBuildShell, err)
		}
		p, ok := page.Detect(shell, cfg.Pages)
		if !ok {
			return fmt.Errorf("%s: no configured container ids found in shell", flagBuildShell)
		}
		p.Shell = flagBuildShell
		if flagBuildOutput != "" {
			p.Output = flagBuildOutput
		}
		return builder.Build(ctx, p)
	}

	if flagBuildPage != "" {
		p, ok := cfg.FindPage(flagBuildPage)
		if !ok {
			return fmt.Errorf("no page configured for mode %q", flagBuildPage)
		}
		return builder.Build(ctx, p)
	}

	for _, p := range cfg.Pages {
		if err := builder.Build(ctx, p); err != nil {
			return err
		}
	}
	fmt.Printf("Built %d page(s).\n", len(cfg.Pages))
	return nil
}
