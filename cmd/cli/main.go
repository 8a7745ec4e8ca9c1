package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"firmsight-go-analyzer/internal/classifier"
	"firmsight-go-analyzer/internal/config"
	"firmsight-go-analyzer/internal/models"
	"firmsight-go-analyzer/internal/scraper"
)

type analysis struct {
	Site           models.ScrapedSite    `json:"site" yaml:"site"`
	Summary        string                `json:"summary,omitempty" yaml:"summary,omitempty"`
	Classification models.FirmSizeResult `json:"classification" yaml:"classification"`
}

func main() {
	app := &cli.App{
		Name:  "firmsight",
		Usage: "extract structured signals from a firm website and classify its size",
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "scrape a site, build its content summary, and classify firm size",
				ArgsUsage: "<url>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Value: "yaml",
						Usage: "output format: yaml or json",
					},
					&cli.BoolFlag{
						Name:  "verbose",
						Usage: "enable debug logging",
					},
				},
				Action: runAnalyze,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal("command failed", "error", err)
	}
}

func runAnalyze(c *cli.Context) error {
	rawURL := c.Args().First()
	if rawURL == "" {
		return cli.Exit("missing url argument", 2)
	}
	cfg := config.DefaultConfig()
	if err := config.ApplyEnv(cfg); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}
	if c.Bool("verbose") {
		cfg.Verbose = true
	}
	if cfg.Verbose {
		log.SetLevel(log.DebugLevel)
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.Info("analyzing site", "url", rawURL)
	s := scraper.New(cfg)
	site := s.Scrape(context.Background(), rawURL)
	for _, e := range site.Errors {
		log.Warn("fetch degraded", "error", e)
	}

	summary, ok := scraper.BuildSummary(site, cfg.SummaryLimit)
	if !ok {
		log.Warn("no usable content, downstream analysis will be inference-based")
	}
	result := classifier.Classify(site)
	log.Info("classification complete", "tier", result.Tier, "outlier", result.IsOutlier)

	out := analysis{Site: site, Summary: summary, Classification: result}
	switch c.String("format") {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		data, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("marshal output: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		return cli.Exit("unknown format: "+c.String("format"), 2)
	}
}
