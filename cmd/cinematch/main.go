// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/poiesic/cinematch"
	"github.com/poiesic/cinematch/catalogue"
	"github.com/poiesic/cinematch/config"
	"github.com/poiesic/cinematch/core"
	"github.com/poiesic/cinematch/intent"
	"github.com/poiesic/cinematch/metrics"
	"github.com/poiesic/cinematch/recommend"
	"github.com/poiesic/cinematch/server"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "cinematch",
		Usage: "Semantic movie recommendations from free-text queries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve recommendations over HTTP",
				Action: serveCommand,
				Flags: append(catalogueFlags(),
					&cli.IntFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Usage:   "HTTP listen port",
					},
					&cli.BoolFlag{
						Name:  "no-metrics",
						Usage: "Do not expose /metrics",
					},
				),
			},
			{
				Name:      "recommend",
				Usage:     "Print recommendations for a query",
				ArgsUsage: "<query...>",
				Action:    recommendCommand,
				Flags: append(catalogueFlags(),
					&cli.IntFlag{
						Name:    "top-n",
						Aliases: []string{"n"},
						Usage:   "Number of results, capped at recommend.max_top_n",
					},
					&cli.BoolFlag{
						Name:  "explain",
						Usage: "Print routing and boost decisions to stderr",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Print results as JSON",
					},
				),
			},
			{
				Name:      "classify",
				Usage:     "Print the intent a query routes to without embedding anything",
				ArgsUsage: "<query...>",
				Action:    classifyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "catalogue",
						Usage: "Path to the catalogue CSV or JSON file",
					},
				},
			},
		},
	}
}

// catalogueFlags are shared by every command that embeds the catalogue.
func catalogueFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "catalogue",
			Usage: "Path to the catalogue CSV or JSON file",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "Directory for the embedding cache (in memory when empty)",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "Disable the embedding cache",
		},
		&cli.IntFlag{
			Name:  "max-retries",
			Usage: "Attempts at the startup catalogue embedding",
		},
	}
}

// loadConfig reads the layered configuration and applies command flags.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("catalogue") {
		cfg.Catalogue.Path = c.String("catalogue")
	}
	if c.IsSet("embedding-host") {
		cfg.Embedding.Host = c.String("embedding-host")
	}
	if c.IsSet("embedding-model") {
		cfg.Embedding.Model = c.String("embedding-model")
	}
	if c.IsSet("cache-dir") {
		cfg.Cache.Enabled = true
		cfg.Cache.Path = c.String("cache-dir")
	}
	if c.Bool("no-cache") {
		cfg.Cache.Enabled = false
	}
	if c.IsSet("max-retries") {
		cfg.Catalogue.RetryAttempts = c.Int("max-retries")
	}
	if c.IsSet("port") {
		cfg.Server.Port = c.Int("port")
	}
	if c.IsSet("top-n") {
		topN := c.Int("top-n")
		if topN > cfg.Recommend.MaxTopN {
			slog.Warn("top-n capped", "requested", topN, "max", cfg.Recommend.MaxTopN)
			topN = cfg.Recommend.MaxTopN
		}
		cfg.Recommend.TopN = topN
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// The config file may choose a level when the flag was left alone.
	if !c.IsSet("log-level") {
		if err := applyLogLevel(cfg.Logging.Level); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// openRecommender embeds the configured catalogue.
func openRecommender(ctx context.Context, cfg *config.Config, progress io.Writer, extra ...cinematch.Option) (*cinematch.Recommender, error) {
	opts := []cinematch.Option{
		cinematch.WithAIConfig(cfg.AIConfig()),
		cinematch.WithRetry(cfg.Catalogue.RetryAttempts, cfg.Catalogue.RetryDelay),
		cinematch.WithEngineOptions(
			recommend.WithOverfetch(cfg.Recommend.Overfetch),
			recommend.WithTitleCutoff(cfg.Recommend.TitleCutoff),
			recommend.WithLikeCutoff(cfg.Recommend.LikeCutoff),
		),
	}
	if cfg.Cache.Enabled {
		opts = append(opts, cinematch.WithCache(cfg.Cache.Path, cfg.Cache.TTL))
	} else {
		opts = append(opts, cinematch.WithoutCache())
	}
	if progress != nil {
		opts = append(opts, cinematch.WithProgress(progress))
	}
	opts = append(opts, extra...)

	return cinematch.Open(ctx, cfg.Catalogue.Path, opts...)
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		m         *metrics.Metrics
		extraOpts []cinematch.Option
	)
	if !c.Bool("no-metrics") {
		m = metrics.New(nil)
		extraOpts = append(extraOpts, cinematch.WithBreakerObserver(m.ObserveBreaker))
	}

	fmt.Fprintf(os.Stderr, "Catalogue: %s\n", cfg.Catalogue.Path)
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", cfg.Embedding.Host)
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", cfg.Embedding.Model)

	start := time.Now()
	rec, err := openRecommender(ctx, cfg, os.Stderr, extraOpts...)
	if err != nil {
		return fmt.Errorf("failed to load catalogue: %w", err)
	}
	defer rec.Close()

	serverOpts := []server.Option{
		server.WithConfig(cfg.Server),
		server.WithCatalogueInfo(rec.Model(), rec.Index().Len()),
		server.WithTopN(cfg.Recommend.TopN, cfg.Recommend.MaxTopN),
	}
	if m != nil {
		m.SetCatalogue(rec.Index().Len(), time.Since(start))
		serverOpts = append(serverOpts, server.WithMetrics(m))
	}

	srv, err := server.New(rec.Engine(), serverOpts...)
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx)
}

func recommendCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a query is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	rec, err := openRecommender(c.Context, cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to load catalogue: %w", err)
	}
	defer rec.Close()

	var monitor recommend.Monitor
	if c.Bool("explain") {
		monitor = newExplainMonitor(c.App.ErrWriter, rec.Index())
	}

	results, err := rec.Engine().RecommendWithMonitor(c.Context, query, cfg.Recommend.TopN, monitor)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}
	printResults(c.App.Writer, results)
	return nil
}

func classifyCommand(c *cli.Context) error {
	query := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("a query is required")
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	dataset, err := catalogue.LoadFile(cfg.Catalogue.Path)
	if err != nil {
		return err
	}

	titles := make([]string, len(dataset.Entries))
	for i := range dataset.Entries {
		titles[i] = strings.ToLower(strings.TrimSpace(dataset.Entries[i].Title))
	}
	router := intent.NewRouter(titles,
		intent.WithTitleCutoff(cfg.Recommend.TitleCutoff),
		intent.WithLikeCutoff(cfg.Recommend.LikeCutoff),
	)

	in := router.Classify(query)
	fmt.Fprintln(c.App.Writer, in.String())
	if in.Reference >= 0 {
		fmt.Fprintf(c.App.Writer, "reference: %s\n", dataset.Entries[in.Reference].Title)
	}
	if in.Like >= 0 {
		fmt.Fprintf(c.App.Writer, "like: %s\n", dataset.Entries[in.Like].Title)
	}
	return nil
}

func printResults(w io.Writer, results []core.Result) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}
	for i, r := range results {
		line := fmt.Sprintf("%2d. %s", i+1, r.Title)
		if r.Year != "" {
			line += fmt.Sprintf(" (%s)", r.Year)
		}
		if r.Director != "" {
			line += ", dir. " + r.Director
		}
		if r.Score != nil {
			line += fmt.Sprintf("  [%.3f]", *r.Score)
		}
		fmt.Fprintln(w, line)
	}
}

func setupLogger(c *cli.Context) error {
	return applyLogLevel(c.String("log-level"))
}

func applyLogLevel(levelStr string) error {
	// Get log level and normalize to lowercase
	levelStr = strings.ToLower(levelStr)

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
