// Package crawl implements the crawl command, a single FightMatrix crawl run.
package crawl

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdcommon "github.com/jonesrussell/fightcrawl/cmd/common"
	"github.com/jonesrussell/fightcrawl/internal/crawler"
	"github.com/jonesrussell/fightcrawl/internal/domain"
	"github.com/jonesrussell/fightcrawl/internal/metrics"
)

var errScrapeTypeRequired = errors.New(`required flag "scrape-type" not set`)

// Command returns the crawl command for use in the root command.
func Command() *cobra.Command {
	var (
		scrapeTypeFlag string
		sinks          []string
		outputDir      string
		scrapeType     domain.ScrapeType
	)

	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl FightMatrix rankings and fighter profiles",
		Long: `Crawl the FightMatrix historical ranking snapshots.

--scrape-type most_recent crawls the newest snapshot only; all crawls every
snapshot on the index page. Ranking and fighter records are written to the
configured sinks as they are extracted.`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// PreRunE runs before cobra's required-flag check.
			if !cmd.Flags().Changed("scrape-type") {
				return errScrapeTypeRequired
			}
			st, err := domain.ParseScrapeType(scrapeTypeFlag)
			if err != nil {
				return err
			}
			scrapeType = st
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("sink") {
				viper.Set("output.sinks", sinks)
			}
			if cmd.Flags().Changed("output-dir") {
				viper.Set("output.dir", outputDir)
			}

			deps, err := cmdcommon.NewCommandDeps(viper.GetViper())
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			defer func() { _ = deps.Logger.Sync() }()

			runID := uuid.NewString()
			m := metrics.NewMetrics()
			runErr := run(cmd.Context(), deps, runID, scrapeType, m)

			renderSummary(cmd.OutOrStdout(), runID, scrapeType, m.Snapshot(), runErr)
			return runErr
		},
	}

	cmd.Flags().StringVar(&scrapeTypeFlag, "scrape-type", "", "snapshots to crawl: most_recent or all")
	cmd.Flags().StringSliceVar(&sinks, "sink", nil, "sinks to write to (jsonl, postgres, elasticsearch, memory)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for the jsonl sink")
	_ = cmd.MarkFlagRequired("scrape-type")

	return cmd
}

func run(ctx context.Context, deps cmdcommon.CommandDeps, runID string, scrapeType domain.ScrapeType, m *metrics.Metrics) error {
	log := deps.Logger.WithRunID(runID)

	out, err := cmdcommon.CreateSink(ctx, deps.Config, log)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			log.Error("Failed to close sink", "error", closeErr)
		}
	}()

	c, err := crawler.New(crawler.Params{
		Config:  deps.Config.Crawler,
		Logger:  log,
		Sink:    out,
		Metrics: m,
	})
	if err != nil {
		return fmt.Errorf("failed to create crawler: %w", err)
	}

	return c.Start(ctx, scrapeType)
}
